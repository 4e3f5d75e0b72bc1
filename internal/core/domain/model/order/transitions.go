package order

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrTransitionNotAllowed classifies every rejected status transition:
// either the requested edge does not exist in the transition table, or its
// guard failed. The order is left untouched in both cases.
var ErrTransitionNotAllowed = errors.New("transition not allowed")

// ErrOrderIsNotCancelable is the guard failure for the Cancel event: an
// order with a shipped or received delivery cannot be canceled.
var ErrOrderIsNotCancelable = errors.New("order is not cancelable")

// Event names a transition of the order state machine.
type Event int

const (
	// EventReserve holds stock for a draft order.
	EventReserve Event = iota + 1

	// EventUnreserve releases a reservation back to draft.
	EventUnreserve

	// EventConfirm commits the order.
	EventConfirm

	// EventMarkPaid settles the order's invoice.
	EventMarkPaid

	// EventCancel cancels a committed order.
	EventCancel

	// EventDelete deletes a still-editable order.
	EventDelete
)

func getEventStrings() map[Event]string {
	return map[Event]string{
		EventReserve:   "reserve",
		EventUnreserve: "unreserve",
		EventConfirm:   "confirm",
		EventMarkPaid:  "mark_paid",
		EventCancel:    "cancel",
		EventDelete:    "delete",
	}
}

// String returns the event name.
func (e Event) String() string {
	if s, ok := getEventStrings()[e]; ok {
		return s
	}
	return "unknown"
}

// TransitionError reports a rejected transition attempt. It unwraps to
// ErrTransitionNotAllowed and, for guard failures, to the guard's cause, so
// callers can classify it with errors.Is either way.
type TransitionError struct {
	From  Status
	Event Event
	Cause error
}

func (e *TransitionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s from %s (cause: %s)", ErrTransitionNotAllowed, e.Event, e.From, e.Cause)
	}
	return fmt.Sprintf("%s: %s from %s", ErrTransitionNotAllowed, e.Event, e.From)
}

func (e *TransitionError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrTransitionNotAllowed, e.Cause}
	}
	return []error{ErrTransitionNotAllowed}
}

// transition is one edge of the state machine: the statuses it may start
// from, the status it ends in, an optional guard validated before any
// mutation, and an optional side effect executed before the status flips.
type transition struct {
	from   []Status
	to     Status
	guard  func(o *Order) error
	effect func(o *Order, now time.Time)
}

// transitionTable declares every allowed edge of the order state machine.
// An event missing from the table, or attempted from a status not listed in
// its from-set, is rejected with a TransitionError.
func transitionTable() map[Event]transition {
	return map[Event]transition{
		EventReserve: {
			from:   []Status{Draft},
			to:     Reserved,
			effect: (*Order).reserve,
		},
		EventUnreserve: {
			from:   []Status{Reserved},
			to:     Draft,
			effect: (*Order).unreserve,
		},
		EventConfirm: {
			from:   []Status{Draft, Reserved},
			to:     Confirmed,
			effect: (*Order).confirm,
		},
		EventMarkPaid: {
			from: []Status{Confirmed},
			to:   Paid,
		},
		EventCancel: {
			from:  []Status{Paid, Confirmed, InProgress},
			to:    Canceled,
			guard: (*Order).ensureCancelable,
		},
		EventDelete: {
			from: []Status{Draft, Reserved},
			to:   Deleted,
		},
	}
}

// Apply runs the named transition: the edge is looked up in the transition
// table, its guard is validated, its side effect is executed, and the status
// flips together with the status-change timestamp. A rejected transition
// performs no mutation at all.
func (o *Order) Apply(event Event, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}

	tr, ok := transitionTable()[event]
	if !ok {
		return &TransitionError{From: o.status, Event: event}
	}
	if !slices.Contains(tr.from, o.status) {
		return &TransitionError{From: o.status, Event: event}
	}
	if tr.guard != nil {
		if err := tr.guard(o); err != nil {
			return &TransitionError{From: o.status, Event: event, Cause: err}
		}
	}

	if tr.effect != nil {
		tr.effect(o, now)
	}

	o.status = tr.to
	o.statusUpdatedAt = &now
	o.touch("status")
	return nil
}

// reserve holds stock for the order: zero-amount items are dropped, the
// dereservation timer starts, and every remaining item flips to Reserve.
func (o *Order) reserve(now time.Time) {
	o.dropZeroAmountItems()
	t := NextDereservationTime(now)
	o.dereservationAt = &t
	o.touch("dereservation_at")
	for _, item := range o.items {
		item.markReserved()
	}
}

// unreserve releases the reservation: the timer is cleared and every item
// returns to New.
func (o *Order) unreserve(_ time.Time) {
	o.dereservationAt = nil
	o.touch("dereservation_at")
	for _, item := range o.items {
		item.markNew()
	}
}

// confirm commits the order: zero-amount items are dropped and the derived
// monetary fields of every remaining item are recomputed for persistence.
func (o *Order) confirm(_ time.Time) {
	o.dropZeroAmountItems()
	for _, item := range o.items {
		item.recomputeAllDerived()
	}
}

// ensureCancelable is the Cancel guard: no delivery of the order may already
// be shipped or received.
func (o *Order) ensureCancelable() error {
	for _, s := range o.deliveryStatuses {
		if s.BlocksOrderCancel() {
			return ErrOrderIsNotCancelable
		}
	}
	return nil
}
