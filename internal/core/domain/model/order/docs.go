// Package order provides domain entities and business logic for order
// management in the food-supply ordering platform. It implements the Order
// aggregate root with lifecycle management and guarded state transitions.
//
// The package includes:
//   - Order: The aggregate root that manages order identity, items, and lifecycle
//   - OrderItem: A line item deriving its monetary fields from price, vat and amount
//   - Status / ItemStatus: value objects classifying lifecycle states
//   - The transition table: a declarative state machine mapping (status, event)
//     to guard, side effect, and next status
//
// Key business rules:
//   - Status only changes through a transition declared in the table
//   - Reserving starts a dereservation timer and flips items to Reserve
//   - Zero-amount items do not survive the Reserve and Confirm transitions
//   - Derived monetary fields are recomputed only from changed source fields
//   - An order with a shipped or received delivery cannot be canceled
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
