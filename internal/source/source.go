// Package source loads the run inputs: the staff roster, the document
// registry records, the credentialing application, and the policy rules.
package source

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/docket/internal/credentialing"
	"github.com/JaimeStill/docket/internal/documents"
	"github.com/JaimeStill/docket/internal/staff"
)

// Tabular provides the roster and document records.
type Tabular interface {
	Staff(ctx context.Context) ([]staff.Record, error)
	Documents(ctx context.Context) ([]documents.Document, error)
}

// Data is the complete set of run inputs.
type Data struct {
	Staff     []staff.Record
	Documents []documents.Document
	Applicant credentialing.Applicant
	Policy    credentialing.Policy
}

// Load reads all four inputs concurrently. The first failure cancels the
// remaining loads and is returned.
func Load(ctx context.Context, tab Tabular, applicantPath, policyPath string) (*Data, error) {
	var data Data
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, err := tab.Staff(ctx)
		if err != nil {
			return fmt.Errorf("load staff: %w", err)
		}
		data.Staff = records
		return nil
	})

	g.Go(func() error {
		docs, err := tab.Documents(ctx)
		if err != nil {
			return fmt.Errorf("load documents: %w", err)
		}
		data.Documents = docs
		return nil
	})

	g.Go(func() error {
		applicant, err := ReadApplicant(applicantPath)
		if err != nil {
			return fmt.Errorf("load application: %w", err)
		}
		data.Applicant = applicant
		return nil
	})

	g.Go(func() error {
		policy, err := ReadPolicy(policyPath)
		if err != nil {
			return fmt.Errorf("load policy: %w", err)
		}
		data.Policy = policy
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &data, nil
}
