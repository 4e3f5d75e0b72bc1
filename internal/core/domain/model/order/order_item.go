package order

import (
	"errors"
	"fmt"
	"sort"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Declared decimal scales of the monetary and quantity fields.
const (
	amountScale = 3
	priceScale  = 2
	vatScale    = 2
	sumScale    = 2
	vatSumScale = 4
)

// Persisted field names reported by ChangedFields.
const (
	FieldAmount    = "amount"
	FieldPrice     = "price"
	FieldVAT       = "vat"
	FieldSum       = "sum"
	FieldVATSum    = "vat_sum"
	FieldStatus    = "status"
	FieldItemOrder = "order_id"
)

var (
	// ErrOrderItemIsNotConstructed is returned when an OrderItem instance was
	// not created through NewOrderItem or RestoreOrderItem.
	ErrOrderItemIsNotConstructed = errors.New("OrderItem must be created via NewOrderItem constructor")
)

// OrderItem is a line item within an order. It references a priced offer and
// derives its monetary fields (sum, vat sum) from price, vat and amount.
//
// The item keeps a snapshot of price and vat as they were loaded from
// persistence. Derived fields are recomputed at save time only when their
// source fields actually changed against that snapshot, so concurrently held
// derived values are never overwritten needlessly.
type OrderItem struct {
	id        kernel.UUID
	orderID   kernel.UUID
	offerID   kernel.UUID
	packageID *kernel.UUID

	amount decimal.Decimal
	price  decimal.Decimal
	vat    decimal.Decimal
	sum    decimal.Decimal
	vatSum decimal.Decimal

	status ItemStatus

	// loadedPrice and loadedVAT snapshot the values read from persistence.
	loadedPrice decimal.Decimal
	loadedVAT   decimal.Decimal

	isNew   bool
	changed map[string]struct{}

	isConstructed bool
}

// NewOrderItem creates a new line item for an order. Amount, price and vat
// are rounded to their declared scales; sum and vat sum are derived.
func NewOrderItem(
	id kernel.UUID,
	orderID kernel.UUID,
	offerID kernel.UUID,
	packageID *kernel.UUID,
	amount decimal.Decimal,
	price decimal.Decimal,
	vat decimal.Decimal,
) (*OrderItem, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		offerID.Validate(),
		validateNonNegative("amount", amount),
		validateNonNegative("price", price),
		validateNonNegative("vat", vat),
	); err != nil {
		return nil, err
	}
	if packageID != nil {
		if err := packageID.Validate(); err != nil {
			return nil, err
		}
	}

	item := &OrderItem{
		id:            id,
		orderID:       orderID,
		offerID:       offerID,
		packageID:     packageID,
		amount:        amount.Round(amountScale),
		price:         price.Round(priceScale),
		vat:           vat.Round(vatScale),
		status:        ItemNew,
		isNew:         true,
		changed:       make(map[string]struct{}),
		isConstructed: true,
	}
	item.sum = deriveSum(item.price, item.amount)
	item.vatSum = deriveVATSum(item.sum, item.vat)
	return item, nil
}

// RestoreOrderItem reconstructs a line item from persistence. The restored
// price and vat become the dirty-tracking snapshot.
func RestoreOrderItem(
	id kernel.UUID,
	orderID kernel.UUID,
	offerID kernel.UUID,
	packageID *kernel.UUID,
	amount decimal.Decimal,
	price decimal.Decimal,
	vat decimal.Decimal,
	sum decimal.Decimal,
	vatSum decimal.Decimal,
	status ItemStatus,
) (*OrderItem, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		offerID.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &OrderItem{
		id:            id,
		orderID:       orderID,
		offerID:       offerID,
		packageID:     packageID,
		amount:        amount,
		price:         price,
		vat:           vat,
		sum:           sum,
		vatSum:        vatSum,
		status:        status,
		loadedPrice:   price,
		loadedVAT:     vat,
		changed:       make(map[string]struct{}),
		isConstructed: true,
	}, nil
}

// Validate ensures the OrderItem instance was properly constructed.
func (i *OrderItem) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrOrderItemIsNotConstructed
	}
	return nil
}

// ID returns the item's unique identifier.
func (i *OrderItem) ID() kernel.UUID {
	return i.id
}

// OrderID returns the identifier of the owning order.
func (i *OrderItem) OrderID() kernel.UUID {
	return i.orderID
}

// OfferID returns the identifier of the referenced offer.
func (i *OrderItem) OfferID() kernel.UUID {
	return i.offerID
}

// PackageID returns the optional product package reference.
func (i *OrderItem) PackageID() *kernel.UUID {
	return i.packageID
}

// Amount returns the ordered quantity.
func (i *OrderItem) Amount() decimal.Decimal {
	return i.amount
}

// Price returns the unit price.
func (i *OrderItem) Price() decimal.Decimal {
	return i.price
}

// VAT returns the VAT rate in percent.
func (i *OrderItem) VAT() decimal.Decimal {
	return i.vat
}

// Sum returns the derived line total.
func (i *OrderItem) Sum() decimal.Decimal {
	return i.sum
}

// VATSum returns the derived VAT portion of the line total.
func (i *OrderItem) VATSum() decimal.Decimal {
	return i.vatSum
}

// Status returns the current acceptance status of the item.
func (i *OrderItem) Status() ItemStatus {
	return i.status
}

// IsNew reports whether the item has not been persisted yet.
func (i *OrderItem) IsNew() bool {
	return i.isNew
}

// ChangeAmount sets a new quantity for the item.
func (i *OrderItem) ChangeAmount(amount decimal.Decimal) error {
	if err := validateNonNegative("amount", amount); err != nil {
		return err
	}
	i.amount = amount.Round(amountScale)
	i.touch(FieldAmount)
	return nil
}

// ChangePrice sets a new unit price. The derived sum is recomputed on the
// next save through the owning order.
func (i *OrderItem) ChangePrice(price decimal.Decimal) error {
	if err := validateNonNegative("price", price); err != nil {
		return err
	}
	i.price = price.Round(priceScale)
	i.touch(FieldPrice)
	return nil
}

// ChangeVAT sets a new VAT rate. The derived vat sum is recomputed on the
// next save through the owning order, but only together with a price change.
func (i *OrderItem) ChangeVAT(vat decimal.Decimal) error {
	if err := validateNonNegative("vat", vat); err != nil {
		return err
	}
	i.vat = vat.Round(vatScale)
	i.touch(FieldVAT)
	return nil
}

// IsPriceChanged reports whether price differs from the loaded snapshot.
func (i *OrderItem) IsPriceChanged() bool {
	return !i.price.Equal(i.loadedPrice)
}

// IsVATChanged reports whether vat differs from the loaded snapshot.
func (i *OrderItem) IsVATChanged() bool {
	return !i.vat.Equal(i.loadedVAT)
}

// ChangedFields returns the sorted set of persisted fields touched since the
// item was loaded. Repositories persist exactly these columns.
func (i *OrderItem) ChangedFields() []string {
	fields := make([]string, 0, len(i.changed))
	for f := range i.changed {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// recomputeChangedDerived recomputes sum when price changed since load, and
// vat sum when vat changed as well. Untouched derived fields keep their
// stored values.
func (i *OrderItem) recomputeChangedDerived() {
	if !i.IsPriceChanged() {
		return
	}

	i.sum = deriveSum(i.price, i.amount)
	i.touch(FieldSum)

	if i.IsVATChanged() {
		i.vatSum = deriveVATSum(i.sum, i.vat)
		i.touch(FieldVATSum)
	}
}

// recomputeAllDerived recomputes both derived fields unconditionally.
// Used by the confirmation transition, which repersists every item.
func (i *OrderItem) recomputeAllDerived() {
	i.sum = deriveSum(i.price, i.amount)
	i.vatSum = deriveVATSum(i.sum, i.vat)
	i.touch(FieldSum)
	i.touch(FieldVATSum)
}

func (i *OrderItem) markReserved() {
	i.status = ItemReserve
	i.touch(FieldStatus)
}

func (i *OrderItem) markNew() {
	i.status = ItemNew
	i.touch(FieldStatus)
}

func (i *OrderItem) touch(field string) {
	if i.changed == nil {
		i.changed = make(map[string]struct{})
	}
	i.changed[field] = struct{}{}
}

// deriveSum computes the line total from unit price and quantity.
func deriveSum(price, amount decimal.Decimal) decimal.Decimal {
	return price.Mul(amount).Round(sumScale)
}

// deriveVATSum extracts the VAT portion of a VAT-inclusive line total.
func deriveVATSum(sum, vat decimal.Decimal) decimal.Decimal {
	if vat.IsZero() {
		return decimal.Zero.Round(vatSumScale)
	}
	return sum.Div(decimal.NewFromInt(100).Add(vat)).Mul(vat).Round(vatSumScale)
}

func validateNonNegative(name string, value decimal.Decimal) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%s is negative", value))
	}
	return nil
}
