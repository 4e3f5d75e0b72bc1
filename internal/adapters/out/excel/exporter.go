// Package excel renders orders into xlsx documents. The layout mirrors the
// supplier's printed order form: a header block, a bordered item table that
// flows across print pages of a fixed size, and a totals block with a closing
// disclaimer.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"ordering/internal/core/ports"
)

const (
	// pageSize is the number of sheet rows that fit on one printed page.
	pageSize = 44

	// endingRowPadding is the gap between the item table and the disclaimer.
	endingRowPadding = 6

	// tableRow is the first row of the item table.
	tableRow = 14
)

const (
	orderDateText     = "Заказ №%s от %s"
	orderSupplierText = `Поставщик: ООО "Фудекс" ИНН 9703021089`
	orderClientText   = "Покупатель: %s"
	totalWoVATTitle   = "Итого:"
	totalVATTitle     = "В том числе НДС:"
	totalTitle        = "Всего к оплате:"
	totalText         = "%s руб."

	orderEndText = "Данное предложение актуально на момент выгрузки. " +
		"Резервирование товара происходит в момент заказа и действует до оплаты счета."
)

// Exporter implements ports.OrderExporter on top of excelize. The output is
// deterministic: exporting the same order twice yields byte-identical files.
type Exporter struct {
	baseURL string
}

// NewExporter creates an exporter. baseURL is the dashboard address embedded
// as a hyperlink in the order header.
func NewExporter(baseURL string) *Exporter {
	return &Exporter{baseURL: baseURL}
}

// ExportDraftOrder renders the order and its items into an xlsx document.
func (e *Exporter) ExportDraftOrder(o ports.ExportOrder, items []ports.ExportItem) ([]byte, error) {
	f := excelize.NewFile()
	w := newSheetWriter(f)

	if err := w.writeCell(1, 7, fmt.Sprintf(orderDateText, o.ID, o.CreatedAt.Format("02.01.2006 15:04")), left, 11, false); err != nil {
		return nil, err
	}
	if err := w.writeCell(1, 9, orderSupplierText, left, 11, false); err != nil {
		return nil, err
	}
	hyperlink := fmt.Sprintf("%s/dashboard/orders/%s/creation", e.baseURL, o.ID)
	if err := w.writeHyperlink(4, 9, hyperlink, 10); err != nil {
		return nil, err
	}
	if err := w.writeCell(1, 10, fmt.Sprintf(orderClientText, o.OrganizationTitle), left, 11, false); err != nil {
		return nil, err
	}

	w.nextPrintArea(1)

	row := tableRow
	orderTotal := decimal.Zero
	orderTotalVAT := decimal.Zero
	hundred := decimal.NewFromInt(100)
	for i, item := range items {
		lineTotal := item.TransportPackagePrice.Mul(item.Amount)
		// The per-line VAT rounds the divided base before multiplying by the
		// rate; the documented totals depend on this exact order.
		lineVAT := lineTotal.Div(hundred.Add(item.ProductVAT)).Round(2).Mul(item.ProductVAT)
		orderTotal = orderTotal.Add(lineTotal)
		orderTotalVAT = orderTotalVAT.Add(lineVAT)

		if err := w.writeCell(1, row, i+1, center, 9, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(2, row, item.ProductCode, center, 9, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(3, row, item.ProductTitle, left, 10, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(4, row, item.Amount.InexactFloat64(), center, 9, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(5, row, item.TransportPackagePrice.InexactFloat64(), center, 9, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(6, row, lineTotal.InexactFloat64(), center, 9, true); err != nil {
			return nil, err
		}
		if err := w.writeCell(7, row, item.OfferExpiredAt.Format("02.01.2006"), center, 9, true); err != nil {
			return nil, err
		}

		row++
		if row%pageSize == 0 {
			w.nextPrintArea(row + 1)
			row += 2
		}
	}

	afterItems := row
	orderSum := orderTotal.Round(3)
	orderVAT := orderTotalVAT.Round(3)

	totals := []struct {
		title string
		value decimal.Decimal
	}{
		{totalWoVATTitle, orderSum},
		{totalVATTitle, orderVAT},
		{totalTitle, orderSum},
	}
	for i, t := range totals {
		totalRow := afterItems + 1 + i
		if err := w.mergeCells(totalRow, 4, 5); err != nil {
			return nil, err
		}
		if err := w.mergeCells(totalRow, 6, 7); err != nil {
			return nil, err
		}
		if err := w.writeCell(4, totalRow, t.title, right, 10, false); err != nil {
			return nil, err
		}
		if err := w.writeCell(6, totalRow, fmt.Sprintf(totalText, t.value.StringFixed(2)), left, 10, false); err != nil {
			return nil, err
		}
	}

	lastRow := afterItems + endingRowPadding
	if err := w.writeCell(2, lastRow, orderEndText, left, 10, false); err != nil {
		return nil, err
	}

	currentPage := (lastRow + pageSize - 1) / pageSize
	if currentPage > w.pageNum {
		w.nextPrintArea(afterItems + 2)
	}

	if err := w.applyPrintAreas(); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	if err = f.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
