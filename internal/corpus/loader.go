// Package corpus maintains the in-memory set of open issues eligible
// for duplicate matching: loading them from the issue store, embedding
// them, and swapping complete snapshots under concurrent readers.
package corpus

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	chromem "github.com/philippgille/chromem-go"

	"github.com/civicradar/issueradar/internal/embeddings"
	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/normalize"
	"github.com/civicradar/issueradar/internal/store"
)

const collectionName = "issues"

// ProgressFunc receives classification progress during a load.
type ProgressFunc func(done, total int)

// Loader builds corpus snapshots from the external issue store.
type Loader struct {
	source   store.Source
	embedder embeddings.Embedder
	progress ProgressFunc
}

// NewLoader creates a Loader reading from source and embedding with
// embedder.
func NewLoader(source store.Source, embedder embeddings.Embedder) *Loader {
	return &Loader{source: source, embedder: embedder}
}

// OnProgress registers a callback invoked as documents are classified.
func (l *Loader) OnProgress(fn ProgressFunc) {
	l.progress = fn
}

// Load reads every document from the store, classifies each as accepted
// or rejected, embeds all accepted combined texts in one batched
// embedder call, and returns the resulting snapshot together with the
// classification report. An empty snapshot is a valid outcome.
func (l *Loader) Load(ctx context.Context) (*Snapshot, *Report, error) {
	report := &Report{
		CycleID:   uuid.New().String(),
		StartedAt: time.Now().UTC(),
		Model:     l.embedder.Name(),
	}

	docs, err := l.source.ListIssues(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing issues: %w", err)
	}

	var records []issue.Record
	for i, doc := range docs {
		rec, rejection := classify(doc)
		if rejection != nil {
			report.Rejections = append(report.Rejections, *rejection)
		} else {
			records = append(records, rec)
		}
		if l.progress != nil {
			l.progress(i+1, len(docs))
		}
	}

	texts := make([]string, len(records))
	for i, rec := range records {
		texts[i] = normalize.CombinedText(rec.Title, rec.Description)
	}

	// One batched call for the whole corpus; per-record calls would pay
	// the model-invocation overhead once per issue.
	vectors, err := l.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, nil, fmt.Errorf("embedding corpus: %w", err)
	}
	if len(vectors) != len(records) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d records", len(vectors), len(records))
	}

	snap, err := buildSnapshot(ctx, records, vectors, l.embedder)
	if err != nil {
		return nil, nil, err
	}

	report.Accepted = len(records)
	report.FinishedAt = time.Now().UTC()
	return snap, report, nil
}

// classify applies the load-time filters in the same order the issue
// store's authoring flow produces them: resolved status first, then
// required fields, then the address pincode.
func classify(doc issue.Document) (issue.Record, *Rejection) {
	if strings.EqualFold(doc.Status, "resolved") {
		return issue.Record{}, &Rejection{IssueID: doc.ID, Reason: ReasonResolved}
	}

	if missing := missingFields(doc); len(missing) > 0 {
		return issue.Record{}, &Rejection{
			IssueID: doc.ID,
			Reason:  ReasonMissingFields,
			Detail:  strings.Join(missing, ","),
		}
	}

	pincode, ok := normalize.ExtractPincode(doc.Address)
	if !ok {
		return issue.Record{}, &Rejection{
			IssueID: doc.ID,
			Reason:  ReasonNoPincode,
			Detail:  doc.Address,
		}
	}

	return issue.Record{
		ID:              doc.ID,
		Title:           doc.Title,
		Description:     doc.Description,
		Category:        doc.Category,
		Address:         doc.Address,
		Pincode:         pincode,
		Status:          doc.Status,
		Upvotes:         doc.Upvotes,
		Media:           doc.Media,
		DateOfComplaint: doc.DateOfComplaint,
	}, nil
}

func missingFields(doc issue.Document) []string {
	var missing []string
	if doc.Title == "" {
		missing = append(missing, "issueTitle")
	}
	if len(doc.Description) == 0 {
		missing = append(missing, "description")
	}
	if doc.Category == "" {
		missing = append(missing, "category")
	}
	if doc.Address == "" {
		missing = append(missing, "address")
	}
	return missing
}

func buildSnapshot(ctx context.Context, records []issue.Record, vectors [][]float32, embedder embeddings.Embedder) (*Snapshot, error) {
	db := chromem.NewDB()
	col, err := db.CreateCollection(collectionName, nil, embeddings.ChromemFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("creating corpus index: %w", err)
	}

	if len(records) > 0 {
		docs := make([]chromem.Document, len(records))
		for i, rec := range records {
			docs[i] = chromem.Document{
				ID:        rec.ID,
				Content:   normalize.CombinedText(rec.Title, rec.Description),
				Embedding: vectors[i],
				Metadata: map[string]string{
					"category": rec.Category,
					"pincode":  rec.Pincode,
					"pos":      strconv.Itoa(i),
				},
			}
		}
		if err := col.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("indexing corpus: %w", err)
		}
	}

	return &Snapshot{
		Records:    records,
		Vectors:    vectors,
		Model:      embedder.Name(),
		LoadedAt:   time.Now().UTC(),
		collection: col,
	}, nil
}
