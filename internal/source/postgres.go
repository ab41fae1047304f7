package source

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/staff"
	"github.com/JaimeStill/docket/pkg/query"
	"github.com/JaimeStill/docket/pkg/repository"
)

var staffProjection = query.
	NewProjectionMap("public", "staff", "s").
	Project("email", "Email").
	Project("name", "Name").
	Project("position", "Position").
	Project("department", "Department").
	Project("approval_role", "ApprovalRole").
	Project("seq", "Seq")

var documentsProjection = query.
	NewProjectionMap("public", "documents", "d").
	Project("doc_id", "DocID").
	Project("title", "Title").
	Project("type", "Type").
	Project("status", "Status").
	Project("owner_email", "OwnerEmail").
	Project("expiry_date", "ExpiryDate").
	Project("review_date", "ReviewDate").
	Project("seq", "Seq")

// loadOrder preserves the source file order the tables were seeded from.
var loadOrder = query.SortField{Field: "Seq"}

// Postgres reads the roster and documents from the tables created by
// cmd/migrate. It never writes; registry mutations stay in memory. When
// Statuses is set only documents with those statuses are loaded.
type Postgres struct {
	DB       repository.Querier
	Statuses []string
}

func (p *Postgres) Staff(ctx context.Context) ([]staff.Record, error) {
	qb := query.NewBuilder(staffProjection, loadOrder)
	if err := p.ensureRows(ctx, qb, "staff"); err != nil {
		return nil, err
	}

	q, args := qb.Build()
	records, err := repository.QueryMany(ctx, p.DB, q, args, scanStaff)
	if err != nil {
		return nil, fmt.Errorf("query staff: %w", err)
	}
	return records, nil
}

func (p *Postgres) Documents(ctx context.Context) ([]documents.Document, error) {
	statuses := make([]any, len(p.Statuses))
	for i, s := range p.Statuses {
		statuses[i] = s
	}

	qb := query.NewBuilder(documentsProjection, loadOrder).WhereIn("Status", statuses)
	if err := p.ensureRows(ctx, qb, "documents"); err != nil {
		return nil, err
	}

	q, args := qb.Build()
	docs, err := repository.QueryMany(ctx, p.DB, q, args, scanDocument)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	return docs, nil
}

// ensureRows fails with ErrEmptyTable when qb matches no rows, so an
// unseeded database surfaces as a load error rather than an empty run.
func (p *Postgres) ensureRows(ctx context.Context, qb *query.Builder, table string) error {
	q, args := qb.BuildCount()
	n, err := repository.QueryOne(ctx, p.DB, q, args, scanCount)
	if err != nil {
		return fmt.Errorf("count %s: %w", table, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrEmptyTable, table)
	}
	return nil
}

func scanCount(s repository.Scanner) (int, error) {
	var n int
	err := s.Scan(&n)
	return n, err
}

func scanStaff(s repository.Scanner) (staff.Record, error) {
	var (
		r    staff.Record
		role sql.NullString
		seq  int
	)
	err := s.Scan(&r.Email, &r.Name, &r.Position, &r.Department, &role, &seq)
	r.ApprovalRole = role.String
	return r, err
}

func scanDocument(s repository.Scanner) (documents.Document, error) {
	var (
		d          documents.Document
		docType    string
		status     string
		expiry     sql.NullTime
		reviewDate sql.NullTime
		seq        int
	)
	err := s.Scan(&d.DocID, &d.Title, &docType, &status, &d.OwnerEmail, &expiry, &reviewDate, &seq)
	d.Type = documents.ParseType(docType)
	d.Status = documents.Status(status)
	if expiry.Valid {
		d.ExpiryDate = expiry.Time.UTC()
	}
	if reviewDate.Valid {
		d.ReviewDate = reviewDate.Time.UTC()
	}
	return d, err
}
