package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/pkg/formatting"
)

var (
	staffColumns    = []string{"email", "name", "position", "department", "approval_role"}
	documentColumns = []string{"doc_id", "title", "type", "status", "owner_email", "expiry_date", "review_date"}
)

// CSV reads the roster and documents from comma-separated files with a
// header row. Column order is free; extra columns are ignored.
type CSV struct {
	StaffPath     string
	DocumentsPath string
	Logger        *slog.Logger
}

func (c *CSV) Staff(ctx context.Context) ([]staff.Record, error) {
	rows, err := readCSV(c.StaffPath, staffColumns)
	if err != nil {
		return nil, err
	}

	records := make([]staff.Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, staff.Record{
			Email:        row["email"],
			Name:         row["name"],
			Position:     row["position"],
			Department:   row["department"],
			ApprovalRole: row["approval_role"],
		})
	}
	return records, nil
}

// Documents parses dates as YYYY-MM-DD. Unparseable dates are coerced to
// the zero time and logged.
func (c *CSV) Documents(ctx context.Context) ([]documents.Document, error) {
	rows, err := readCSV(c.DocumentsPath, documentColumns)
	if err != nil {
		return nil, err
	}

	docs := make([]documents.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, documents.Document{
			DocID:      row["doc_id"],
			Title:      row["title"],
			Type:       documents.ParseType(row["type"]),
			Status:     documents.Status(row["status"]),
			OwnerEmail: row["owner_email"],
			ExpiryDate: c.date(ctx, row["doc_id"], "expiry_date", row["expiry_date"]),
			ReviewDate: c.date(ctx, row["doc_id"], "review_date", row["review_date"]),
		})
	}
	return docs, nil
}

func (c *CSV) date(ctx context.Context, id, column, value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := formatting.ParseDate(value)
	if err != nil {
		if c.Logger != nil {
			c.Logger.WarnContext(ctx, "unparseable date coerced to empty",
				"doc_id", id,
				"column", column,
				"value", value,
			)
		}
		return time.Time{}
	}
	return t
}

func readCSV(path string, required []string) ([]map[string]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return parseCSV(f, required)
}

func parseCSV(r io.Reader, required []string) ([]map[string]string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		columns[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	rows := make([]map[string]string, 0)
	for line := 2; ; line++ {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		row := make(map[string]string, len(required))
		for _, name := range required {
			if i := columns[name]; i < len(rec) {
				row[name] = strings.TrimSpace(rec[i])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}
