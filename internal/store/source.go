// Package store reads issue documents from the external issue store.
// The store is owned by other clients; this service only ever lists the
// collection and never writes back.
package store

import (
	"context"

	"github.com/civicradar/issueradar/internal/issue"
)

// Source lists every document in the issues collection. The read is
// idempotent, so callers that need resilience can wrap it in a retry
// policy without coordination.
type Source interface {
	ListIssues(ctx context.Context) ([]issue.Document, error)
}
