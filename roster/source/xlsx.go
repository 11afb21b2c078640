package source

import (
	"fmt"
	"io"

	"github.com/Pjt727/odautofill/roster"
	"github.com/xuri/excelize/v2"
)

// FromXLSX reads the first sheet of the workbook
func FromXLSX(r io.Reader) ([]roster.StudentRecord, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("could not open xlsx roster: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("could not read xlsx roster sheet: %w", err)
	}
	return fromRows(rows), nil
}
