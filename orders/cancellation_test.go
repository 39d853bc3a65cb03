package orders

import (
	"testing"
	"time"

	"rongchapa/models"
)

func pendingOrder() *models.Order {
	return &models.Order{
		OrderID: "otest00000001",
		Status:  models.StatusPending,
		CancelRequest: models.CancelRequest{
			Status: models.CancelNone,
		},
	}
}

func TestApplyCancelRequest(t *testing.T) {
	now := time.Now()

	o := pendingOrder()
	if err := ApplyCancelRequest(o, "  wrong size ordered  ", now); err != nil {
		t.Fatalf("request on pending order failed: %v", err)
	}
	if o.CancelRequest.Status != models.CancelPending {
		t.Fatalf("cancel status = %q, want pending", o.CancelRequest.Status)
	}
	if o.CancelRequest.Reason != "wrong size ordered" {
		t.Fatalf("reason not trimmed: %q", o.CancelRequest.Reason)
	}
	if o.CancelRequest.RequestedAt == nil || !o.CancelRequest.RequestedAt.Equal(now) {
		t.Fatal("requestedAt not recorded")
	}
	// order status itself is untouched until staff approve
	if o.Status != models.StatusPending {
		t.Fatalf("order status changed to %q", o.Status)
	}
}

func TestApplyCancelRequestGuards(t *testing.T) {
	now := time.Now()

	o := pendingOrder()
	o.Status = models.StatusCompleted
	if err := ApplyCancelRequest(o, "too late", now); err != ErrOrderNotCancellable {
		t.Fatalf("completed order: got %v, want ErrOrderNotCancellable", err)
	}

	o = pendingOrder()
	o.Status = models.StatusCancelled
	if err := ApplyCancelRequest(o, "already gone", now); err != ErrOrderNotCancellable {
		t.Fatalf("cancelled order: got %v, want ErrOrderNotCancellable", err)
	}

	o = pendingOrder()
	o.CancelRequest.Status = models.CancelPending
	if err := ApplyCancelRequest(o, "again", now); err != ErrCancelAlreadyPending {
		t.Fatalf("duplicate request: got %v, want ErrCancelAlreadyPending", err)
	}
}

func TestApplyCancelRequestAfterDecline(t *testing.T) {
	// a declined request does not block a fresh one
	o := pendingOrder()
	o.CancelRequest.Status = models.CancelDeclined
	if err := ApplyCancelRequest(o, "second attempt", time.Now()); err != nil {
		t.Fatalf("re-request after decline failed: %v", err)
	}
	if o.CancelRequest.Status != models.CancelPending {
		t.Fatalf("cancel status = %q, want pending", o.CancelRequest.Status)
	}
}

func TestResolveCancelRequestApprove(t *testing.T) {
	now := time.Now()
	o := pendingOrder()
	o.Status = models.StatusProcessing
	o.CancelRequest.Status = models.CancelPending

	if err := ResolveCancelRequest(o, "approve", " refund issued ", "uadmin00001", now); err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if o.CancelRequest.Status != models.CancelApproved {
		t.Fatalf("cancel status = %q, want approved", o.CancelRequest.Status)
	}
	if o.Status != models.StatusCancelled {
		t.Fatalf("order status = %q, want cancelled", o.Status)
	}
	if o.CancelRequest.ResolvedBy != "uadmin00001" {
		t.Fatalf("resolvedBy = %q", o.CancelRequest.ResolvedBy)
	}
	if o.CancelRequest.AdminNote != "refund issued" {
		t.Fatalf("admin note not trimmed: %q", o.CancelRequest.AdminNote)
	}
	if o.CancelRequest.ResolvedAt == nil {
		t.Fatal("resolvedAt not recorded")
	}
}

func TestResolveCancelRequestDecline(t *testing.T) {
	o := pendingOrder()
	o.Status = models.StatusProcessing
	o.CancelRequest.Status = models.CancelPending

	if err := ResolveCancelRequest(o, "decline", "already shipped", "uadmin00001", time.Now()); err != nil {
		t.Fatalf("decline failed: %v", err)
	}
	if o.CancelRequest.Status != models.CancelDeclined {
		t.Fatalf("cancel status = %q, want declined", o.CancelRequest.Status)
	}
	// decline keeps the order moving
	if o.Status != models.StatusProcessing {
		t.Fatalf("order status = %q, want processing", o.Status)
	}
}

func TestResolveCancelRequestGuards(t *testing.T) {
	o := pendingOrder()
	o.CancelRequest.Status = models.CancelPending
	if err := ResolveCancelRequest(o, "reject", "", "u1", time.Now()); err != ErrBadCancelAction {
		t.Fatalf("bad action: got %v, want ErrBadCancelAction", err)
	}

	for _, status := range []models.CancelStatus{models.CancelNone, models.CancelApproved, models.CancelDeclined} {
		o := pendingOrder()
		o.CancelRequest.Status = status
		if err := ResolveCancelRequest(o, "approve", "", "u1", time.Now()); err != ErrCancelNotPending {
			t.Fatalf("resolve on %q: got %v, want ErrCancelNotPending", status, err)
		}
	}
}
