package delivery

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery.
//
// Deliveries are created in Planned status, move through Shipped to Fact
// (received by the client), and can be marked Paid once the parent order is
// paid. Canceled and Deleted are terminal states driven by the parent order's
// transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Planned is the initial status of a generated delivery.
	Planned

	// Shipped indicates the delivery has left the warehouse.
	Shipped

	// Fact indicates the delivery was received by the client.
	Fact

	// Paid indicates the delivery is covered by a paid order.
	Paid

	// Canceled indicates the delivery was canceled together with its order.
	Canceled

	// Deleted indicates the parent order was deleted while still editable.
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "UNKNOWN",
		Planned:  "PLANNED",
		Shipped:  "SHIPPED",
		Fact:     "FACT",
		Paid:     "PAID",
		Canceled: "CANCELED",
		Deleted:  "DELETED",
	}
}

// Validate checks if the Status value is valid.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// StatusFromString parses a status from its wire name.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// BlocksOrderCancel reports whether a delivery in this status prevents its
// order from being canceled. Goods that are already shipped or received
// cannot be silently returned to stock.
func (s Status) BlocksOrderCancel() bool {
	return s == Fact || s == Shipped
}
