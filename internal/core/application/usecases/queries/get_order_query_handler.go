package queries

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"
)

// GetOrderQueryHandler reads a single order straight from the database,
// bypassing the domain model. The order total is annotated in SQL from the
// stored line sums.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

// NewGetOrderQueryHandler creates a handler for single order reads.
func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle executes the query. Returns errs.ErrObjectNotFound when no order
// with the given identifier exists.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	var resp GetOrderQueryResponse

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.organization_id,
			o.organization_title,
			o.title,
			o.comment,
			o.status,
			o.status_updated_at,
			o.dereservation_at,
			o.created_at,
			COALESCE((SELECT SUM(i.sum) FROM order_items i WHERE i.order_id = o.id), 0) AS total
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().String()).Row()

	var (
		id              uuid.UUID
		organizationID  uuid.UUID
		statusUpdatedAt sql.NullTime
		dereservationAt sql.NullTime
		createdAt       time.Time
		total           decimal.Decimal
	)
	err := row.Scan(
		&id,
		&organizationID,
		&resp.OrganizationTitle,
		&resp.Title,
		&resp.Comment,
		&resp.Status,
		&statusUpdatedAt,
		&dereservationAt,
		&createdAt,
		&total,
	)
	if err == sql.ErrNoRows {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.OrganizationID, err = kernel.UUIDFromBytes(organizationID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if statusUpdatedAt.Valid {
		resp.StatusUpdatedAt = &statusUpdatedAt.Time
	}
	if dereservationAt.Valid {
		resp.DereservationAt = &dereservationAt.Time
	}
	resp.CreatedAt = createdAt
	resp.Total = total

	items, err := h.loadItems(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Items = items

	return resp, nil
}

func (h GetOrderQueryHandler) loadItems(ctx context.Context, orderID kernel.UUID) ([]GetOrderQueryItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			offer_id,
			amount,
			price,
			vat,
			sum,
			vat_sum,
			status
		FROM order_items
		WHERE order_id = ?
		ORDER BY id
	`, orderID.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]GetOrderQueryItem, 0)
	for rows.Next() {
		var (
			item    GetOrderQueryItem
			id      uuid.UUID
			offerID uuid.UUID
		)
		err = rows.Scan(
			&id,
			&offerID,
			&item.Amount,
			&item.Price,
			&item.VAT,
			&item.Sum,
			&item.VATSum,
			&item.Status,
		)
		if err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if item.OfferID, err = kernel.UUIDFromBytes(offerID[:]); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
