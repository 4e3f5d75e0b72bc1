package excel

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type alignment string

const (
	left   alignment = "left"
	center alignment = "center"
	right  alignment = "right"
)

type styleKey struct {
	align    alignment
	fontSize float64
	bordered bool
}

// sheetWriter wraps an excelize file with cell styling, cached styles and
// print area bookkeeping for a single sheet.
type sheetWriter struct {
	f       *excelize.File
	sheet   string
	pageNum int
	areas   []string
	styles  map[styleKey]int
}

func newSheetWriter(f *excelize.File) *sheetWriter {
	return &sheetWriter{
		f:      f,
		sheet:  f.GetSheetName(0),
		styles: make(map[styleKey]int),
	}
}

func (w *sheetWriter) writeCell(col, row int, value any, align alignment, fontSize float64, bordered bool) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	if err = w.f.SetCellValue(w.sheet, cell, value); err != nil {
		return err
	}

	styleID, err := w.style(align, fontSize, bordered)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cell, cell, styleID)
}

func (w *sheetWriter) writeHyperlink(col, row int, url string, fontSize float64) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}

	if err = w.f.SetCellHyperLink(w.sheet, cell, url, "External"); err != nil {
		return err
	}
	if err = w.f.SetCellValue(w.sheet, cell, url); err != nil {
		return err
	}

	styleID, err := w.style(left, fontSize, false)
	if err != nil {
		return err
	}
	return w.f.SetCellStyle(w.sheet, cell, cell, styleID)
}

func (w *sheetWriter) mergeCells(row, startCol, endCol int) error {
	start, err := excelize.CoordinatesToCellName(startCol, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(endCol, row)
	if err != nil {
		return err
	}
	return w.f.MergeCell(w.sheet, start, end)
}

// nextPrintArea opens a new print page of pageSize rows starting at fromRow.
func (w *sheetWriter) nextPrintArea(fromRow int) {
	toRow := fromRow + pageSize - 1
	w.areas = append(w.areas, fmt.Sprintf("%s!$A$%d:$G$%d", w.sheet, fromRow, toRow))
	w.pageNum++
}

// applyPrintAreas registers the collected print pages as the sheet's print
// area defined name.
func (w *sheetWriter) applyPrintAreas() error {
	if len(w.areas) == 0 {
		return nil
	}

	return w.f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: strings.Join(w.areas, ","),
		Scope:    w.sheet,
	})
}

func (w *sheetWriter) style(align alignment, fontSize float64, bordered bool) (int, error) {
	key := styleKey{align: align, fontSize: fontSize, bordered: bordered}
	if id, ok := w.styles[key]; ok {
		return id, nil
	}

	style := &excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: string(align),
			Vertical:   "center",
			WrapText:   true,
		},
		Font: &excelize.Font{Size: fontSize},
	}
	if bordered {
		style.Border = []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		}
	}

	id, err := w.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	w.styles[key] = id
	return id, nil
}
