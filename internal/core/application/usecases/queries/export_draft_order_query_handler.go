package queries

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"
)

// ExportDraftOrderQueryHandler loads the order header and its items joined
// with offer and product data, then hands them to the spreadsheet exporter.
type ExportDraftOrderQueryHandler struct {
	db       *gorm.DB
	exporter ports.OrderExporter
}

// NewExportDraftOrderQueryHandler creates a handler for order exports.
func NewExportDraftOrderQueryHandler(db *gorm.DB, exporter ports.OrderExporter) ExportDraftOrderQueryHandler {
	return ExportDraftOrderQueryHandler{db: db, exporter: exporter}
}

// Handle executes the export. Returns errs.ErrObjectNotFound when no order
// with the given identifier exists.
func (h ExportDraftOrderQueryHandler) Handle(
	ctx context.Context,
	query ExportDraftOrderQuery,
) (ExportDraftOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ExportDraftOrderQueryResponse{}, err
	}

	var header ports.ExportOrder
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.created_at,
			o.organization_title
		FROM orders o
		WHERE o.id = ?
	`, query.OrderID().String()).Row()

	var createdAt time.Time
	err := row.Scan(&header.ID, &createdAt, &header.OrganizationTitle)
	if err == sql.ErrNoRows {
		return ExportDraftOrderQueryResponse{}, errs.NewObjectNotFoundError("order_id", query.OrderID().String())
	}
	if err != nil {
		return ExportDraftOrderQueryResponse{}, err
	}
	header.CreatedAt = createdAt

	items, err := h.loadItems(ctx, query)
	if err != nil {
		return ExportDraftOrderQueryResponse{}, err
	}

	content, err := h.exporter.ExportDraftOrder(header, items)
	if err != nil {
		return ExportDraftOrderQueryResponse{}, err
	}

	return ExportDraftOrderQueryResponse{
		FileName: fmt.Sprintf("order_%s.xlsx", query.OrderID()),
		Content:  content,
	}, nil
}

func (h ExportDraftOrderQueryHandler) loadItems(
	ctx context.Context,
	query ExportDraftOrderQuery,
) ([]ports.ExportItem, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.code,
			p.title,
			p.vat,
			i.amount,
			f.price_for_transport_package,
			f.expired_at
		FROM order_items i
		JOIN offers f ON f.id = i.offer_id
		JOIN products p ON p.id = f.product_id
		WHERE i.order_id = ?
		ORDER BY i.id
	`, query.OrderID().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ports.ExportItem, 0)
	for rows.Next() {
		var item ports.ExportItem
		err = rows.Scan(
			&item.ProductCode,
			&item.ProductTitle,
			&item.ProductVAT,
			&item.Amount,
			&item.TransportPackagePrice,
			&item.OfferExpiredAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
