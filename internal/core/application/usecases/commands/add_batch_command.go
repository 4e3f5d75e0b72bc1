package commands

import (
	"errors"
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
	"ordering/internal/pkg/guard"
)

var ErrAddBatchCommandIsNotConstructed = errors.New(
	"AddBatchCommand must be created via NewAddBatchCommand constructor",
)

// gtdCodeRegexp matches a customs declaration number:
// customs post / registration date / serial number.
var gtdCodeRegexp = regexp.MustCompile(`^\d{8}/\d{6}/\d{7}$`)

var addBatchValidator = func() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("gtd_code", func(fl validator.FieldLevel) bool {
		return gtdCodeRegexp.MatchString(fl.Field().String())
	})
	return v
}()

type addBatchParams struct {
	GTDCode *string `validate:"omitempty,gtd_code"`
}

// AddBatchCommand registers a physical lot of product at a storage.
// The GTD code is validated for shape here; whether it must be present at all
// depends on the product and is checked by the handler.
type AddBatchCommand struct {
	productID      kernel.UUID
	organizationID kernel.UUID
	storageID      kernel.UUID

	amount        decimal.Decimal
	estimatePrice decimal.Decimal

	productCreatedAt *time.Time
	productExpiredAt *time.Time

	gtdCode *string

	guard guard.ConstructorGuard
}

// NewAddBatchCommand creates a command to register a batch.
func NewAddBatchCommand(
	productID kernel.UUID,
	organizationID kernel.UUID,
	storageID kernel.UUID,
	amount decimal.Decimal,
	estimatePrice decimal.Decimal,
	productCreatedAt *time.Time,
	productExpiredAt *time.Time,
	gtdCode *string,
) (AddBatchCommand, error) {
	if err := errors.Join(
		productID.Validate(),
		organizationID.Validate(),
		storageID.Validate(),
	); err != nil {
		return AddBatchCommand{}, err
	}
	if !amount.IsPositive() {
		return AddBatchCommand{}, errs.NewValueIsInvalidError("amount")
	}
	if estimatePrice.IsNegative() {
		return AddBatchCommand{}, errs.NewValueIsInvalidError("estimate_price")
	}
	if err := addBatchValidator.Struct(addBatchParams{GTDCode: gtdCode}); err != nil {
		return AddBatchCommand{}, errs.NewValueIsInvalidErrorWithCause("gtd_code", err)
	}

	return AddBatchCommand{
		productID:        productID,
		organizationID:   organizationID,
		storageID:        storageID,
		amount:           amount,
		estimatePrice:    estimatePrice,
		productCreatedAt: productCreatedAt,
		productExpiredAt: productExpiredAt,
		gtdCode:          gtdCode,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AddBatchCommand) Validate() error {
	return c.guard.Validate(ErrAddBatchCommandIsNotConstructed)
}

// ProductID returns the identifier of the batched product.
func (c AddBatchCommand) ProductID() kernel.UUID {
	return c.productID
}

// OrganizationID returns the identifier of the owning organization.
func (c AddBatchCommand) OrganizationID() kernel.UUID {
	return c.organizationID
}

// StorageID returns the identifier of the receiving storage.
func (c AddBatchCommand) StorageID() kernel.UUID {
	return c.storageID
}

// Amount returns the batched quantity.
func (c AddBatchCommand) Amount() decimal.Decimal {
	return c.amount
}

// EstimatePrice returns the estimated unit price of the batch.
func (c AddBatchCommand) EstimatePrice() decimal.Decimal {
	return c.estimatePrice
}

// ProductCreatedAt returns the production date, if known.
func (c AddBatchCommand) ProductCreatedAt() *time.Time {
	return c.productCreatedAt
}

// ProductExpiredAt returns the product expiry date, if known.
func (c AddBatchCommand) ProductExpiredAt() *time.Time {
	return c.productExpiredAt
}

// GTDCode returns the customs declaration code, or nil for domestic product.
func (c AddBatchCommand) GTDCode() *string {
	return c.gtdCode
}
