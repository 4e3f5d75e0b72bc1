package commands

import (
	"errors"
	"time"

	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrReleaseExpiredReservationsCommandIsNotConstructed = errors.New(
	"ReleaseExpiredReservationsCommand must be created via NewReleaseExpiredReservationsCommand constructor",
)

// ReleaseExpiredReservationsCommand moves every reserved order whose
// dereservation time has passed back to draft, releasing its held stock.
type ReleaseExpiredReservationsCommand struct {
	now time.Time

	guard guard.ConstructorGuard
}

// NewReleaseExpiredReservationsCommand creates a command to release expired
// reservations against the given point in time.
func NewReleaseExpiredReservationsCommand(now time.Time) (ReleaseExpiredReservationsCommand, error) {
	if now.IsZero() {
		return ReleaseExpiredReservationsCommand{}, errs.NewValueIsRequiredError("now")
	}

	return ReleaseExpiredReservationsCommand{
		now:   now,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseExpiredReservationsCommand) Validate() error {
	return c.guard.Validate(ErrReleaseExpiredReservationsCommandIsNotConstructed)
}

// Now returns the point in time reservations are compared against.
func (c ReleaseExpiredReservationsCommand) Now() time.Time {
	return c.now
}
