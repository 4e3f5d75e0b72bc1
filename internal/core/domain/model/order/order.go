package order

import (
	"errors"
	"sort"
	"time"

	"ordering/internal/core/domain/model/delivery"
	"ordering/internal/core/domain/model/kernel"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factory methods. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrOrganizationTitleIsRequired is returned when an order is created without
	// the owning organization's title.
	ErrOrganizationTitleIsRequired = errors.New("organization title is required")

	// ErrOrderIsNotEditable is returned when items are added or changed while
	// the order is not in an editable status.
	ErrOrderIsNotEditable = errors.New("order is not editable")
)

// DereservationTTL is how long reserved stock is held before it is released
// back to the warehouse if the order is not confirmed.
const DereservationTTL = time.Hour

// NextDereservationTime returns the moment a reservation made now would
// auto-expire.
func NextDereservationTime(now time.Time) time.Time {
	return now.Add(DereservationTTL)
}

// Order is the aggregate root of the ordering domain. A client creates an
// order in Draft status, fills it with items referencing priced offers, and
// moves it through the status lifecycle via named transitions.
//
// Order follows these invariants:
//   - Status only changes through a transition declared in the transition table
//   - Each transition validates its guard before any mutation and performs
//     one coherent state update across the order and its items
//   - dereservation time is set on entering Reserved, cleared on leaving it,
//     and refreshed whenever items change while reserved
//   - Items with a zero amount do not survive the Reserved and Confirmed
//     transitions
//
// Side effects on deliveries and financial transactions are coordinated by
// the command handlers inside the same unit of work; the aggregate carries a
// read snapshot of its delivery statuses so the cancel guard can be evaluated
// without leaving the domain.
type Order struct {
	id                kernel.UUID
	organizationID    kernel.UUID
	organizationTitle string
	managerID         *kernel.UUID

	title   string
	comment string

	status          Status
	statusUpdatedAt *time.Time
	dereservationAt *time.Time
	createdAt       time.Time

	items          []*OrderItem
	removedItemIDs []kernel.UUID

	deliveryStatuses []delivery.Status

	changed map[string]struct{}

	isConstructed bool
}

// NewOrder creates a new order in Draft status for an organization.
// The manager reference is optional.
func NewOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	organizationTitle string,
	managerID *kernel.UUID,
) (*Order, error) {
	if err := errors.Join(id.Validate(), organizationID.Validate()); err != nil {
		return nil, err
	}
	if organizationTitle == "" {
		return nil, ErrOrganizationTitleIsRequired
	}
	if managerID != nil {
		if err := managerID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                id,
		organizationID:    organizationID,
		organizationTitle: organizationTitle,
		managerID:         managerID,
		status:            Draft,
		createdAt:         time.Now(),
		changed:           make(map[string]struct{}),
		isConstructed:     true,
	}, nil
}

// RestoreOrder reconstructs an order aggregate from persistence, including
// its items and the read snapshot of its delivery statuses.
func RestoreOrder(
	id kernel.UUID,
	organizationID kernel.UUID,
	organizationTitle string,
	managerID *kernel.UUID,
	title string,
	comment string,
	status Status,
	statusUpdatedAt *time.Time,
	dereservationAt *time.Time,
	createdAt time.Time,
	items []*OrderItem,
	deliveryStatuses []delivery.Status,
) (*Order, error) {
	if err := errors.Join(id.Validate(), organizationID.Validate(), status.Validate()); err != nil {
		return nil, err
	}
	if organizationTitle == "" {
		return nil, ErrOrganizationTitleIsRequired
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:                id,
		organizationID:    organizationID,
		organizationTitle: organizationTitle,
		managerID:         managerID,
		title:             title,
		comment:           comment,
		status:            status,
		statusUpdatedAt:   statusUpdatedAt,
		dereservationAt:   dereservationAt,
		createdAt:         createdAt,
		items:             items,
		deliveryStatuses:  deliveryStatuses,
		changed:           make(map[string]struct{}),
		isConstructed:     true,
	}, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrganizationID returns the owning organization's identifier.
func (o *Order) OrganizationID() kernel.UUID {
	return o.organizationID
}

// OrganizationTitle returns the owning organization's display title.
func (o *Order) OrganizationTitle() string {
	return o.organizationTitle
}

// ManagerID returns the assigned manager's identifier, or nil when the order
// has no manager.
func (o *Order) ManagerID() *kernel.UUID {
	return o.managerID
}

// Title returns the optional order title.
func (o *Order) Title() string {
	return o.title
}

// Comment returns the optional order comment.
func (o *Order) Comment() string {
	return o.comment
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// StatusUpdatedAt returns the time of the last status change.
func (o *Order) StatusUpdatedAt() *time.Time {
	return o.statusUpdatedAt
}

// DereservationAt returns the time the active reservation auto-expires, or
// nil when the order is not reserved.
func (o *Order) DereservationAt() *time.Time {
	return o.dereservationAt
}

// CreatedAt returns the order's creation time.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Items returns the order's line items.
func (o *Order) Items() []*OrderItem {
	return o.items
}

// ItemByID returns the item with the given identifier, or nil.
func (o *Order) ItemByID(id kernel.UUID) *OrderItem {
	for _, item := range o.items {
		if item.ID().IsEqual(id) {
			return item
		}
	}
	return nil
}

// RemovedItemIDs returns the identifiers of items removed by transition side
// effects since the aggregate was loaded. Repositories delete these rows as
// part of the same unit of work.
func (o *Order) RemovedItemIDs() []kernel.UUID {
	return o.removedItemIDs
}

// DeliveryStatuses returns the read snapshot of the order's delivery
// statuses taken when the aggregate was loaded.
func (o *Order) DeliveryStatuses() []delivery.Status {
	return o.deliveryStatuses
}

// ChangedFields returns the sorted set of persisted order fields touched
// since load. Repositories persist exactly these columns, implicitly adding
// the status-change timestamp whenever status is among them.
func (o *Order) ChangedFields() []string {
	fields := make([]string, 0, len(o.changed))
	for f := range o.changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// ChangeTitle updates the optional order title.
func (o *Order) ChangeTitle(title string) {
	o.title = title
	o.touch("title")
}

// ChangeComment updates the optional order comment.
func (o *Order) ChangeComment(comment string) {
	o.comment = comment
	o.touch("comment")
}

// AssignManager assigns the order to a staff manager.
func (o *Order) AssignManager(managerID kernel.UUID) error {
	if err := managerID.Validate(); err != nil {
		return err
	}
	o.managerID = &managerID
	o.touch("manager_id")
	return nil
}

// PutItem attaches a new item to the order or registers changes to an
// existing one, applying the reservation save hook:
//
//   - the order must be in an editable status
//   - while the order is reserved, a new item is forced into Reserve status
//     and an active dereservation timer is refreshed
//   - derived monetary fields are recomputed only from actually changed
//     source fields
func (o *Order) PutItem(item *OrderItem, now time.Time) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if !o.status.IsEditable() {
		return ErrOrderIsNotEditable
	}

	if o.status == Reserved {
		if item.IsNew() {
			item.markReserved()
		}
		if o.dereservationAt != nil {
			t := NextDereservationTime(now)
			o.dereservationAt = &t
			o.touch("dereservation_at")
		}
	}

	item.recomputeChangedDerived()

	if o.ItemByID(item.ID()) == nil {
		o.items = append(o.items, item)
	}
	return nil
}

// dropZeroAmountItems removes items whose amount is zero, recording their
// identifiers for deletion by the repository.
func (o *Order) dropZeroAmountItems() {
	kept := o.items[:0]
	for _, item := range o.items {
		if item.Amount().IsZero() {
			if !item.IsNew() {
				o.removedItemIDs = append(o.removedItemIDs, item.ID())
			}
			continue
		}
		kept = append(kept, item)
	}
	o.items = kept
}

func (o *Order) touch(field string) {
	if o.changed == nil {
		o.changed = make(map[string]struct{})
	}
	o.changed[field] = struct{}{}
}
