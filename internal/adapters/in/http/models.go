package http

import (
	"time"

	"github.com/shopspring/decimal"
)

// Error is the JSON error body returned by every failed request.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest is the body of POST /api/v1/orders.
type CreateOrderRequest struct {
	OrganizationID    string  `json:"organization_id"`
	OrganizationTitle string  `json:"organization_title"`
	ManagerID         *string `json:"manager_id,omitempty"`
}

// UpdateOrderRequest is the body of PATCH /api/v1/orders/:order_id.
// Absent fields are left untouched.
type UpdateOrderRequest struct {
	Title     *string `json:"title,omitempty"`
	Comment   *string `json:"comment,omitempty"`
	ManagerID *string `json:"manager_id,omitempty"`
}

// UpsertOrderItemRequest is the body of PUT /api/v1/orders/:order_id/items.
// A nil item_id adds a new item; absent price and vat default from the offer
// and its product.
type UpsertOrderItemRequest struct {
	ItemID    *string          `json:"item_id,omitempty"`
	OfferID   string           `json:"offer_id"`
	PackageID *string          `json:"package_id,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	VAT       *decimal.Decimal `json:"vat,omitempty"`
}

// AddBatchRequest is the body of POST /api/v1/batches.
type AddBatchRequest struct {
	ProductID        string          `json:"product_id"`
	OrganizationID   string          `json:"organization_id"`
	StorageID        string          `json:"storage_id"`
	Amount           decimal.Decimal `json:"amount"`
	EstimatePrice    decimal.Decimal `json:"estimate_price"`
	ProductCreatedAt *time.Time      `json:"product_created_at,omitempty"`
	ProductExpiredAt *time.Time      `json:"product_expired_at,omitempty"`
	GTDCode          *string         `json:"gtd_code,omitempty"`
}

// OrderResponse is the JSON shape of a single order.
type OrderResponse struct {
	ID                string              `json:"id"`
	OrganizationID    string              `json:"organization_id"`
	OrganizationTitle string              `json:"organization_title"`
	Title             string              `json:"title"`
	Comment           string              `json:"comment"`
	Status            string              `json:"status"`
	StatusUpdatedAt   *time.Time          `json:"status_updated_at,omitempty"`
	DereservationAt   *time.Time          `json:"dereservation_at,omitempty"`
	CreatedAt         time.Time           `json:"created_at"`
	Total             decimal.Decimal     `json:"total"`
	Items             []OrderItemResponse `json:"items"`
}

// OrderItemResponse is the JSON shape of a single order line.
type OrderItemResponse struct {
	ID      string          `json:"id"`
	OfferID string          `json:"offer_id"`
	Amount  decimal.Decimal `json:"amount"`
	Price   decimal.Decimal `json:"price"`
	VAT     decimal.Decimal `json:"vat"`
	Sum     decimal.Decimal `json:"sum"`
	VATSum  decimal.Decimal `json:"vat_sum"`
	Status  string          `json:"status"`
}

// CreateOrderResponse is returned by POST /api/v1/orders.
type CreateOrderResponse struct {
	ID string `json:"id"`
}
