package source

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/Pjt727/odautofill/roster"
)

func FromCSV(r io.Reader) ([]roster.StudentRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not parse csv roster: %w", err)
	}
	return fromRows(rows), nil
}
