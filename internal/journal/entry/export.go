// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package entry

import (
	"encoding/csv"
	"io"
	"strconv"
)

// ExportFilename is the attachment name of a CSV export.
const ExportFilename = "eachday-export.csv"

// exportHeader is the first CSV record.
var exportHeader = []string{"Date", "Rating", "Notes"}

// WriteCSV writes entries as CSV with a header row and CRLF line endings.
// Missing ratings and notes are written as empty cells.
func WriteCSV(writer io.Writer, entries []Entry) error {
	out := csv.NewWriter(writer)
	out.UseCRLF = true

	if err := out.Write(exportHeader); err != nil {
		return err
	}

	for _, entry := range entries {
		var rating, notes string
		if entry.Rating != nil {
			rating = strconv.Itoa(*entry.Rating)
		}
		if entry.Notes != nil {
			notes = *entry.Notes
		}

		if err := out.Write([]string{entry.Date.String(), rating, notes}); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}
