// Package export writes the roster to formats meant for people rather
// than for reloading, such as an .xlsx spreadsheet.
package export

import (
	"fmt"
	"log/slog"

	"github.com/aanand-mishra/roster/internal/types"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet WriteXLSX fills.
const SheetName = "Students"

var header = []any{"ID", "First name", "Last name", "Age", "Group"}

// WriteXLSX writes students to a new workbook at path, replacing any
// existing file. Row 1 holds the column titles; each following row holds
// one student in the given order.
func WriteXLSX(path string, students []types.Student) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("closing workbook", slog.String("error", err.Error()))
		}
	}()

	// A new workbook starts with one sheet called "Sheet1".
	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("export.WriteXLSX: rename sheet: %w", err)
	}

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("export.WriteXLSX: header: %w", err)
	}

	for i, st := range students {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export.WriteXLSX: cell name: %w", err)
		}

		row := []any{st.ID, st.FirstName, st.LastName, st.Age, st.Group}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("export.WriteXLSX: row %d: %w", i+2, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("export.WriteXLSX: save: %w", err)
	}

	return nil
}
