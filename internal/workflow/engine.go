package workflow

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/models"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/internal/notify"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/apperrors"
	"github.com/JohananOppongAmoateng/speg-admin-gateway/pkg/logger"
)

// Precondition failures. None of these reach the backend.
var (
	ErrDeclined          = errors.New("confirmation declined")
	ErrAlreadyProcessing = errors.New("an approval is already processing for this order")
	ErrNotPending        = errors.New("order is not pending")
	ErrNoInvoice         = errors.New("invoice must be created first")
	ErrAlreadyPaid       = errors.New("payment has already been made")
	ErrPickupCompleted   = errors.New("collection has already been completed")
)

// Backend is the slice of the backend API the workflow drives
type Backend interface {
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus) error
	UpdateOrderLines(ctx context.Context, id string, lines []models.OrderLine) error
	UpdateOrderPayment(ctx context.Context, id string, status models.PaymentStatus) error
	UpdateOrderPickup(ctx context.Context, id string, pickup models.PickupStatus) error
	CreateInvoice(ctx context.Context, req *models.CreateInvoiceRequest) (*models.Invoice, error)
	UpdateInvoiceStatus(ctx context.Context, id string, status models.PaymentStatus) error
	IssueStock(ctx context.Context, productID string, issue *models.IssueRequest) (*models.Product, error)
	UpdateIssuePickup(ctx context.Context, orderID string, pickup models.PickupStatus) error
}

// Confirmer gates every destructive or irreversible transition, giving
// the user a last chance to cancel before any server mutation begins
type Confirmer interface {
	Confirm(prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool {
	return f(prompt)
}

// stage is one named unit of the approval sequence. Stages run strictly
// in order; the first failure stops the sequence.
type stage struct {
	label string
	run   func(ctx context.Context, r *Run, order *models.Order) error
}

// Engine drives order transitions against the backend and keeps the
// progress of in-flight approval runs
type Engine struct {
	backend  Backend
	notifier notify.Notifier
	logger   logger.Logger

	mu     sync.Mutex
	runs   map[string]*Run
	active map[string]string // order id -> run id while a run is processing
}

// NewEngine creates a workflow engine
func NewEngine(backend Backend, notifier notify.Notifier, l logger.Logger) *Engine {
	return &Engine{
		backend:  backend,
		notifier: notifier,
		logger:   logger.Named(l, "workflow"),
		runs:     make(map[string]*Run),
		active:   make(map[string]string),
	}
}

func (e *Engine) clearActive(orderID string) {
	e.mu.Lock()
	delete(e.active, orderID)
	e.mu.Unlock()
}

// GetRun looks up an approval run by id
func (e *Engine) GetRun(runID string) (*Run, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r, ok := e.runs[runID]
	return r, ok
}

// Approve starts the four-stage approval sequence for a pending order
// and returns the run tracking its progress. The sequence itself runs on
// its own goroutine with a background context: once started it cannot be
// cancelled, the user waits for success or reads the failed stage.
func (e *Engine) Approve(order *models.Order, confirmer Confirmer) (*Run, error) {
	if order == nil || order.ID == "" {
		return nil, errors.New("order information is missing")
	}

	if order.OrderStatus != models.OrderStatusPending {
		return nil, ErrNotPending
	}

	if !confirmer.Confirm("Are you sure you want to approve this order and create an invoice?") {
		return nil, ErrDeclined
	}

	e.mu.Lock()

	if _, busy := e.active[order.ID]; busy {
		e.mu.Unlock()
		return nil, ErrAlreadyProcessing
	}

	run := newRun(models.GenerateID("apr"), order.ID, []string{
		"Updating Order Status",
		"Creating Invoice",
		"Sending Email Notification",
		"Finalizing Process",
	})
	e.runs[run.ID] = run
	e.active[order.ID] = run.ID
	e.mu.Unlock()

	go e.execute(run, order)

	return run, nil
}

// execute walks the stages in order, advancing exactly one step at a
// time. On failure the executing stage keeps the server message, earlier
// stages stay completed, and nothing later runs.
func (e *Engine) execute(run *Run, order *models.Order) {
	ctx := context.Background()

	stages := []stage{
		{
			label: "Updating Order Status",
			run: func(ctx context.Context, r *Run, o *models.Order) error {
				return e.backend.UpdateOrderStatus(ctx, o.ID, models.OrderStatusApproved)
			},
		},
		{
			label: "Creating Invoice",
			run: func(ctx context.Context, r *Run, o *models.Order) error {
				inv, err := e.backend.CreateInvoice(ctx, &models.CreateInvoiceRequest{
					OrderID:     o.ID,
					FarmerID:    o.Farmer.ID,
					TotalAmount: o.TotalCost,
					Email:       o.Farmer.Email,
					FarmerName:  o.Farmer.FullName(),
				})

				if err != nil {
					return err
				}

				r.setInvoice(inv)
				return nil
			},
		},
		{
			// The backend sends the farmer email as part of invoice
			// creation; the stage exists so progress matches the fixed
			// four-stage sequence.
			label: "Sending Email Notification",
			run: func(ctx context.Context, r *Run, o *models.Order) error {
				return nil
			},
		},
		{
			label: "Finalizing Process",
			run: func(ctx context.Context, r *Run, o *models.Order) error {
				refreshed, err := e.backend.GetOrder(ctx, o.ID)

				if err != nil {
					return err
				}

				r.setOrder(refreshed)
				return nil
			},
		},
	}

	for i, s := range stages {
		run.markProcessing(i)

		if err := s.run(ctx, run, order); err != nil {
			message := apperrors.UserMessage(err)

			// Free the order before the run turns visible as failed, so
			// a caller who observed the failure can immediately retry
			e.clearActive(order.ID)
			run.markError(i, message)

			e.logger.Error("Approval stage failed",
				"runID", run.ID,
				"orderID", order.ID,
				"stage", s.label,
				"error", err)
			e.notifier.Error(message)
			return
		}

		run.markCompleted(i)
	}

	e.clearActive(order.ID)
	run.markDone()
	e.logger.Info("Order approved", "runID", run.ID, "orderID", order.ID)
	e.notifier.Success("Order processed successfully")
}

// Reject patches a pending order to Rejected. The backend deletes the
// order as a consequence; on success the caller navigates back to the
// order list.
func (e *Engine) Reject(ctx context.Context, order *models.Order, confirmer Confirmer) error {
	if order == nil || order.ID == "" {
		return errors.New("order information is missing")
	}

	if order.OrderStatus != models.OrderStatusPending {
		return ErrNotPending
	}

	if !confirmer.Confirm("Are you sure you want to reject this order and delete entirely?") {
		return ErrDeclined
	}

	if err := e.backend.UpdateOrderStatus(ctx, order.ID, models.OrderStatusRejected); err != nil {
		e.logger.Error("Failed to reject order", "orderID", order.ID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	e.notifier.Success("Order rejected and deleted")
	return nil
}

// SaveLines persists quantity edits made before approval
func (e *Engine) SaveLines(ctx context.Context, orderID string, lines []models.OrderLine) error {
	if err := e.backend.UpdateOrderLines(ctx, orderID, lines); err != nil {
		e.logger.Error("Failed to save order lines", "orderID", orderID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	e.notifier.Success("Order updated")
	return nil
}

// UpdatePaymentStatus moves an order's payment status forward and issues
// the inventory for its lines. The invoice must exist and payment must
// not already be Paid. Issue calls go out one line at a time; a failing
// line fails the whole operation but lines already issued stay issued.
func (e *Engine) UpdatePaymentStatus(ctx context.Context, order *models.Order, newStatus models.PaymentStatus, confirmer Confirmer) error {
	if order == nil || order.ID == "" {
		return errors.New("order information is missing")
	}

	if !confirmer.Confirm(fmt.Sprintf("Are you sure you want to change payment status to %s?", newStatus)) {
		return ErrDeclined
	}

	if !order.HasInvoice() {
		e.notifier.Error("Invoice must be created before updating payment")
		return ErrNoInvoice
	}

	if order.PaymentStatus == models.PaymentStatusPaid {
		return ErrAlreadyPaid
	}

	if err := e.backend.UpdateOrderPayment(ctx, order.ID, newStatus); err != nil {
		e.logger.Error("Failed to update payment status", "orderID", order.ID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	order.PaymentStatus = newStatus
	e.notifier.Success(fmt.Sprintf("Payment status updated to %s", newStatus))

	if err := e.backend.UpdateInvoiceStatus(ctx, order.InvoiceID, newStatus); err != nil {
		e.logger.Error("Failed to update invoice status", "invoiceID", order.InvoiceID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	e.notifier.Success(fmt.Sprintf("Invoice payment status updated to %s", newStatus))

	if err := e.issueOrderLines(ctx, order); err != nil {
		e.notifier.Error("Failed to update inventory")
		return err
	}

	e.notifier.Success("Inventory updated successfully")
	return nil
}

// issueOrderLines posts one Issue transaction per order line, strictly
// in sequence. Lines issued before a failure are not rolled back; the
// backend offers no compensation for them.
func (e *Engine) issueOrderLines(ctx context.Context, order *models.Order) error {
	issuer := order.Farmer.FullName()

	for _, line := range order.Products {
		issue := &models.IssueRequest{
			ReceivedFromIssuedTo: issuer,
			QtyIssued:            line.Quantity,
			InvoicedAmount:       line.Cost,
			OrderID:              order.ID,
		}

		if _, err := e.backend.IssueStock(ctx, line.ProductID, issue); err != nil {
			e.logger.Error("Failed to issue stock for order line",
				"orderID", order.ID,
				"productID", line.ProductID,
				"error", err)
			return err
		}
	}

	return nil
}

// UpdatePickupStatus moves an order's collection state forward with two
// sequential patches, transaction level first
func (e *Engine) UpdatePickupStatus(ctx context.Context, order *models.Order, newStatus models.PickupStatus, confirmer Confirmer) error {
	if order == nil || order.ID == "" {
		return errors.New("order information is missing")
	}

	if !confirmer.Confirm(fmt.Sprintf("Are you sure you want to change pickup for this order to %s?", newStatus)) {
		return ErrDeclined
	}

	if !order.HasInvoice() {
		e.notifier.Error("Invoice must be created before updating collection")
		return ErrNoInvoice
	}

	if order.AwaitingPickup == models.PickupCompleted {
		return ErrPickupCompleted
	}

	if err := e.backend.UpdateIssuePickup(ctx, order.ID, newStatus); err != nil {
		e.logger.Error("Failed to update transaction pickup flag", "orderID", order.ID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	if err := e.backend.UpdateOrderPickup(ctx, order.ID, newStatus); err != nil {
		e.logger.Error("Failed to update order pickup flag", "orderID", order.ID, "error", err)
		e.notifier.Error(apperrors.UserMessage(err))
		return err
	}

	order.AwaitingPickup = newStatus
	e.notifier.Success(fmt.Sprintf("Pickup status updated to %s", newStatus))
	return nil
}
