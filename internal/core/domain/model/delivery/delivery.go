package delivery

import (
	"errors"
	"fmt"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
)

// Delivery represents a shipment fulfilling part or all of an order.
// Its status lifecycle is mostly driven by the parent order's transitions:
// marking the order paid marks its deliveries paid, canceling the order
// cancels them, deleting the order deletes them.
type Delivery struct {
	id      kernel.UUID
	orderID kernel.UUID
	status  Status

	isConstructed bool
}

// NewDelivery creates a delivery for an order in Planned status.
func NewDelivery(id kernel.UUID, orderID kernel.UUID) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		status:        Planned,
		isConstructed: true,
	}, nil
}

// RestoreDelivery reconstructs a delivery from persistence.
func RestoreDelivery(id kernel.UUID, orderID kernel.UUID, status Status) (*Delivery, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	return &Delivery{
		id:            id,
		orderID:       orderID,
		status:        status,
		isConstructed: true,
	}, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil || !d.isConstructed {
		return ErrDeliveryIsNotConstructed
	}
	return nil
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// OrderID returns the identifier of the order the delivery fulfills.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// Status returns the current status of the delivery.
func (d *Delivery) Status() Status {
	return d.status
}

// MarkPaid marks the delivery as covered by a paid order.
// Canceled and deleted deliveries cannot become paid.
func (d *Delivery) MarkPaid() error {
	if d.status == Canceled || d.status == Deleted {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s delivery cannot be marked paid", d.status),
		)
	}

	d.status = Paid
	return nil
}

// MarkCanceled cancels the delivery.
func (d *Delivery) MarkCanceled() {
	d.status = Canceled
}

// MarkDeleted marks the delivery as deleted together with its order.
func (d *Delivery) MarkDeleted() {
	d.status = Deleted
}
