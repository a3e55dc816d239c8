package csvexport

import (
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding exported history rows.
const SheetName = "History"

// WriteXLSX writes the header and rows as a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return err
	}

	header := make([]interface{}, len(columns))
	for i, c := range columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := rowValues(&rows[i])
		record := make([]interface{}, len(values))
		for j, v := range values {
			record[j] = v
		}
		if err := f.SetSheetRow(SheetName, cell, &record); err != nil {
			return err
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}
