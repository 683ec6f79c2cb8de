package loadlog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/civicradar/issueradar/internal/corpus"
	"github.com/civicradar/issueradar/internal/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("opening database: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func sampleReport(id string, started time.Time) *corpus.Report {
	return &corpus.Report{
		CycleID:    id,
		StartedAt:  started,
		FinishedAt: started.Add(2 * time.Second),
		Model:      "stub",
		Accepted:   3,
		Rejections: []corpus.Rejection{
			{IssueID: "a", Reason: corpus.ReasonResolved},
			{IssueID: "b", Reason: corpus.ReasonMissingFields, Detail: "issueTitle,address"},
			{IssueID: "c", Reason: corpus.ReasonNoPincode, Detail: "Main Street"},
		},
	}
}

func TestRecordAndGetCycle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := sampleReport("cycle-1", time.Now().UTC().Truncate(time.Second))
	if err := store.Record(ctx, report); err != nil {
		t.Fatalf("record: %v", err)
	}

	cycle, err := store.GetCycle(ctx, "cycle-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if cycle.Accepted != 3 || cycle.Rejected != 3 || cycle.Model != "stub" {
		t.Errorf("cycle = %+v", cycle)
	}

	rejections, err := store.Rejections(ctx, "cycle-1")
	if err != nil {
		t.Fatalf("rejections: %v", err)
	}
	if len(rejections) != 3 {
		t.Fatalf("got %d rejections, want 3", len(rejections))
	}
	if rejections[0].IssueID != "a" || rejections[0].Reason != corpus.ReasonResolved {
		t.Errorf("rejection 0 = %+v", rejections[0])
	}
	if rejections[1].Detail != "issueTitle,address" {
		t.Errorf("rejection 1 detail = %q", rejections[1].Detail)
	}
}

func TestRecordEmptyReport(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := &corpus.Report{
		CycleID:    "empty",
		StartedAt:  time.Now().UTC(),
		FinishedAt: time.Now().UTC(),
		Model:      "stub",
	}
	if err := store.Record(ctx, report); err != nil {
		t.Fatalf("record: %v", err)
	}

	rejections, err := store.Rejections(ctx, "empty")
	if err != nil {
		t.Fatalf("rejections: %v", err)
	}
	if len(rejections) != 0 {
		t.Errorf("rejections = %v, want none", rejections)
	}
}

func TestRecordDuplicateCycleFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	report := sampleReport("dup", time.Now().UTC())
	if err := store.Record(ctx, report); err != nil {
		t.Fatalf("first record: %v", err)
	}
	if err := store.Record(ctx, report); err == nil {
		t.Error("recording the same cycle id twice should fail")
	}
}

func TestListCyclesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Second)
	for i, id := range []string{"old", "mid", "new"} {
		report := sampleReport(id, base.Add(time.Duration(i)*time.Minute))
		if err := store.Record(ctx, report); err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	cycles, err := store.ListCycles(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(cycles) != 3 {
		t.Fatalf("got %d cycles", len(cycles))
	}
	if cycles[0].ID != "new" || cycles[2].ID != "old" {
		t.Errorf("order = %s, %s, %s", cycles[0].ID, cycles[1].ID, cycles[2].ID)
	}

	limited, err := store.ListCycles(ctx, 2)
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("got %d cycles with limit 2", len(limited))
	}
}

func TestRoutes(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Record(ctx, sampleReport("cycle-1", time.Now().UTC())); err != nil {
		t.Fatalf("record: %v", err)
	}

	router := chi.NewRouter()
	RegisterRoutes(router, store)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		return rec
	}

	rec := get("/api/loads/")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var cycles []Cycle
	if err := json.Unmarshal(rec.Body.Bytes(), &cycles); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(cycles) != 1 || cycles[0].ID != "cycle-1" {
		t.Errorf("cycles = %+v", cycles)
	}

	rec = get("/api/loads/cycle-1")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = get("/api/loads/cycle-1/rejections")
	if rec.Code != http.StatusOK {
		t.Fatalf("rejections status = %d", rec.Code)
	}
	var resp struct {
		CycleID    string             `json:"cycleId"`
		Rejections []corpus.Rejection `json:"rejections"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode rejections: %v", err)
	}
	if resp.CycleID != "cycle-1" || len(resp.Rejections) != 3 {
		t.Errorf("resp = %+v", resp)
	}

	rec = get("/api/loads/nope")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown cycle status = %d, want 404", rec.Code)
	}
	rec = get("/api/loads/nope/rejections")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown cycle rejections status = %d, want 404", rec.Code)
	}
}
