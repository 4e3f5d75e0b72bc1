package order

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct business workflow.
//
// State transitions:
//
//	Draft ──> Reserved ──> Draft          (reservation and release)
//	Draft | Reserved ──> Confirmed ──> Paid
//	Paid | Confirmed | InProgress ──> Canceled
//	Draft | Reserved ──> Deleted
//
// The allowed edges, their guards and their side effects are declared in the
// transition table (see transitions.go); Status itself only classifies
// states.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Draft is the initial status when a client creates an order.
	Draft

	// Reserved indicates stock is held for the order until the
	// dereservation timer expires or the order is confirmed.
	Reserved

	// Confirmed indicates the client committed to the order.
	Confirmed

	// Paid indicates the order's invoice has been settled.
	Paid

	// InProgress indicates the order is being delivered.
	InProgress

	// Canceled is a terminal state reached from paid or in-delivery orders.
	Canceled

	// Deleted is a terminal state reached from still-editable orders.
	Deleted
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "UNKNOWN",
		Draft:      "DRAFT",
		Reserved:   "RESERVED",
		Confirmed:  "CONFIRMED",
		Paid:       "PAID",
		InProgress: "IN_PROGRESS",
		Canceled:   "CANCELED",
		Deleted:    "DELETED",
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
// This method implements the fmt.Stringer interface and is safe
// to call on any Status value, including invalid ones.
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

// IsEditable reports whether order items may still be added or changed.
// Only draft and reserved orders are editable.
func (s Status) IsEditable() bool {
	return s == Draft || s == Reserved
}

// IsStockReserved reports whether stock is firmly held for the order.
func (s Status) IsStockReserved() bool {
	return s == Confirmed || s == InProgress || s == Paid
}

// ItemStatus represents the acceptance state of a single order item.
type ItemStatus int

const (
	// ItemUnknown represents an invalid or undefined item status.
	ItemUnknown ItemStatus = iota

	// ItemNew is the initial status of an item added to a draft order.
	ItemNew

	// ItemAccept indicates the supplier accepted the item.
	ItemAccept

	// ItemReject indicates the supplier rejected the item.
	ItemReject

	// ItemReserve indicates stock is held for the item while the parent
	// order is reserved.
	ItemReserve
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown: "UNKNOWN",
		ItemNew:     "NEW",
		ItemAccept:  "ACCEPT",
		ItemReject:  "REJECT",
		ItemReserve: "RESERVE",
	}
}

// Validate checks if the ItemStatus value is valid.
func (s ItemStatus) Validate() error {
	if s == ItemUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status is invalid",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	if _, ok := getItemStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"item status is invalid",
			fmt.Errorf("%d is not a valid item status", s),
		)
	}
	return nil
}

// String returns the wire name of the item status.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// ItemStatusFromString parses an item status from its wire name.
func ItemStatusFromString(s string) (ItemStatus, error) {
	for status, str := range getItemStatusStrings() {
		if str == s && status != ItemUnknown {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause(
		"item status is invalid",
		fmt.Errorf("%q is not a valid item status", s),
	)
}
