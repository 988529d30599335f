package workflow

import (
	"sync"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
)

// StepStatus is the visible state of one approval stage
type StepStatus string

const (
	StepPending    StepStatus = "pending"
	StepProcessing StepStatus = "processing"
	StepCompleted  StepStatus = "completed"
	StepError      StepStatus = "error"
)

// Step is the stage-indexed progress entry the UI renders. Purely
// presentational; the runner owns all mutation.
type Step struct {
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
	Error  string     `json:"error,omitempty"`
}

// RunState summarizes a whole approval attempt
type RunState string

const (
	RunProcessing RunState = "processing"
	RunCompleted  RunState = "completed"
	RunFailed     RunState = "failed"
)

// Run tracks a single approval attempt. It exists only for the duration
// of the attempt and is replaced wholesale on the next one.
type Run struct {
	ID      string
	OrderID string

	mu      sync.Mutex
	steps   []Step
	state   RunState
	invoice *models.Invoice
	order   *models.Order
}

func newRun(id, orderID string, labels []string) *Run {
	steps := make([]Step, len(labels))

	for i, label := range labels {
		steps[i] = Step{Label: label, Status: StepPending}
	}

	return &Run{
		ID:      id,
		OrderID: orderID,
		steps:   steps,
		state:   RunProcessing,
	}
}

// Snapshot returns a copy of the current step list and run state
func (r *Run) Snapshot() ([]Step, RunState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	steps := make([]Step, len(r.steps))
	copy(steps, r.steps)
	return steps, r.state
}

// Invoice returns the invoice created by the run, nil until the
// invoice stage completed
func (r *Run) Invoice() *models.Invoice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.invoice
}

// Order returns the refreshed order captured by the finalize stage
func (r *Run) Order() *models.Order {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.order
}

func (r *Run) markProcessing(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[i].Status = StepProcessing
}

func (r *Run) markCompleted(i int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[i].Status = StepCompleted
}

func (r *Run) markError(i int, message string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps[i].Status = StepError
	r.steps[i].Error = message
	r.state = RunFailed
}

func (r *Run) markDone() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.state = RunCompleted
}

func (r *Run) setInvoice(inv *models.Invoice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.invoice = inv
}

func (r *Run) setOrder(o *models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = o
}
