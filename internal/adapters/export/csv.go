// Package export encodes reports as JSON and CSV files and reads backups.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/bossygit/vibes-arc-sub000/internal/core/domain"
)

var ErrUnknownTable = errors.New("unknown report table")

// WriteTable writes a header line followed by one record per row. Columns come
// from the row type, so an empty table still carries its header.
func WriteTable[R domain.Row](w io.Writer, rows []R) error {
	var zero R
	writer := csv.NewWriter(w)

	if err := writer.Write(zero.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range rows {
		if err := writer.Write(row.Values()); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteReportTable writes one of the engagement report tables by name.
func WriteReportTable(w io.Writer, report *domain.EngagementReport, table string) error {
	switch table {
	case domain.TableDaily:
		return WriteTable(w, report.Tables.Daily)
	case domain.TableHabits:
		return WriteTable(w, report.Tables.Habits)
	case domain.TableIdentities:
		return WriteTable(w, report.Tables.Identities)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}
}

func Tables() []string {
	return []string{domain.TableDaily, domain.TableHabits, domain.TableIdentities}
}
