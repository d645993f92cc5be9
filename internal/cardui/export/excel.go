package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/vigneshcj001/Business-Card-Scanner/internal/cardui/grid"
)

// Spreadsheet MIME type offered on download responses.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const sheetName = "Sheet1"

// Fixed document timestamps so identical tables produce identical bytes.
const fixedDocTime = "2006-01-02T15:04:05Z"

// ExcelBytes renders a display table as a single worksheet: header row of
// column names, one row per record. The table never carries the _id column,
// so exports never leak identifiers.
func ExcelBytes(t *grid.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetDocProps(&excelize.DocProperties{
		Created:  fixedDocTime,
		Modified: fixedDocTime,
	}); err != nil {
		return nil, fmt.Errorf("failed to set workbook properties: %w", err)
	}

	for j, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(j+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStr(sheetName, cell, col); err != nil {
			return nil, err
		}
	}

	for i, row := range t.Rows {
		for j, col := range t.Columns {
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellStr(sheetName, cell, row[col]); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
