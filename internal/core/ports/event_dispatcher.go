package ports

import "context"

// Names of the fire-and-forget integration events dispatched after a
// transition's unit of work has committed.
const (
	// EventExternalDealAdd asks the external CRM to register a deal for a
	// confirmed order.
	EventExternalDealAdd = "external.deal.add"

	// EventExternalOrderSync pushes a confirmed order to the external
	// warehouse system.
	EventExternalOrderSync = "external.order.sync"

	// EventExternalDeliveryPaid notifies the external system that an
	// order's deliveries are covered by payment.
	EventExternalDeliveryPaid = "external.delivery.paid"
)

// EventDispatcher publishes integration events to external collaborators.
// Dispatch is fire-and-forget: handlers call it only after the relevant
// state mutation has committed, and treat failures as log-worthy, never as
// reasons to fail the already-committed operation.
type EventDispatcher interface {
	Dispatch(ctx context.Context, event string, payload any) error
}
