package notify

import (
	"sync"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// Kind distinguishes success toasts from error toasts
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Notification is one user-visible message
type Notification struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

// Notifier receives user-visible outcome messages. Every caught failure
// in the gateway ends up here rather than crashing a view.
type Notifier interface {
	Success(message string)
	Error(message string)
}

// NewLogNotifier returns a Notifier that writes notifications to the log
func NewLogNotifier(l logger.Logger) Notifier {
	return &logNotifier{logger: l}
}

type logNotifier struct {
	logger logger.Logger
}

func (n *logNotifier) Success(message string) {
	n.logger.Info("Notification", "kind", KindSuccess, "message", message)
}

func (n *logNotifier) Error(message string) {
	n.logger.Warn("Notification", "kind", KindError, "message", message)
}

// Recorder keeps recent notifications in memory so the gateway surface
// and tests can read them back.
type Recorder struct {
	mu       sync.Mutex
	next     Notifier
	entries  []Notification
	capacity int
}

// NewRecorder wraps next with an in-memory ring of the most recent
// notifications
func NewRecorder(next Notifier, capacity int) *Recorder {
	if capacity <= 0 {
		capacity = 50
	}

	return &Recorder{
		next:     next,
		capacity: capacity,
	}
}

func (r *Recorder) Success(message string) {
	r.record(Notification{Kind: KindSuccess, Message: message})
	r.next.Success(message)
}

func (r *Recorder) Error(message string) {
	r.record(Notification{Kind: KindError, Message: message})
	r.next.Error(message)
}

// Recent returns the recorded notifications, oldest first
func (r *Recorder) Recent() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Notification, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *Recorder) record(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, n)

	if len(r.entries) > r.capacity {
		r.entries = r.entries[len(r.entries)-r.capacity:]
	}
}
