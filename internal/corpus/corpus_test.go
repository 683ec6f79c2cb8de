package corpus

import (
	"context"
	"hash/fnv"
	"strings"
	"testing"

	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/store"
)

// stubEmbedder hashes words into a small count vector so that texts
// sharing words get a higher cosine similarity, deterministically and
// without a model.
type stubEmbedder struct{ dim int }

func (e stubEmbedder) Name() string    { return "stub" }
func (e stubEmbedder) Dimensions() int { return e.dim }

func (e stubEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec := make([]float32, e.dim)
		for _, w := range strings.Fields(strings.ToLower(t)) {
			h := fnv.New32a()
			h.Write([]byte(w))
			vec[int(h.Sum32())%e.dim]++
		}
		out[i] = vec
	}
	return out, nil
}

func newStub() stubEmbedder { return stubEmbedder{dim: 16} }

func doc(id, title, desc, category, address string) issue.Document {
	return issue.Document{
		ID:          id,
		Title:       title,
		Description: issue.Description{{Text: desc}},
		Category:    category,
		Address:     address,
		Status:      "Pending",
	}
}

func TestLoadClassification(t *testing.T) {
	resolved := doc("r1", "Fixed pothole", "done", "roads", "MG Road 560001")
	resolved.Status = "RESOLVED"

	noTitle := doc("m1", "", "water leak", "water", "Sector 9, 110011")
	noPin := doc("p1", "Open drain", "drain overflowing", "sanitation", "Main Street")
	good := doc("g1", "Streetlight out", "lane is dark", "electricity", "Lane 4, 560037")

	docs := []issue.Document{resolved, noTitle, noPin, good}
	loader := NewLoader(store.NewStaticSourceFromDocs(docs), newStub())

	snap, report, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if snap.Len() != 1 {
		t.Fatalf("snapshot has %d records, want 1", snap.Len())
	}
	if snap.Records[0].ID != "g1" {
		t.Errorf("accepted record = %q, want g1", snap.Records[0].ID)
	}
	if snap.Records[0].Pincode != "560037" {
		t.Errorf("pincode = %q, want 560037", snap.Records[0].Pincode)
	}
	if snap.Dimensions() != 16 {
		t.Errorf("dimensions = %d, want 16", snap.Dimensions())
	}

	if report.Accepted != 1 {
		t.Errorf("report.Accepted = %d, want 1", report.Accepted)
	}
	if report.Rejected() != 3 {
		t.Errorf("report.Rejected() = %d, want 3", report.Rejected())
	}

	byReason := report.CountByReason()
	if byReason[ReasonResolved] != 1 || byReason[ReasonMissingFields] != 1 || byReason[ReasonNoPincode] != 1 {
		t.Errorf("counts by reason = %v", byReason)
	}
}

func TestLoadResolvedWinsOverMissingFields(t *testing.T) {
	// A resolved issue with missing fields still counts as resolved;
	// the status filter runs first.
	d := issue.Document{ID: "x", Status: "Resolved"}
	loader := NewLoader(store.NewStaticSourceFromDocs([]issue.Document{d}), newStub())

	_, report, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(report.Rejections) != 1 || report.Rejections[0].Reason != ReasonResolved {
		t.Fatalf("rejections = %+v, want single resolved rejection", report.Rejections)
	}
}

func TestLoadMissingFieldsDetail(t *testing.T) {
	d := issue.Document{ID: "x", Status: "Pending", Category: "roads"}
	loader := NewLoader(store.NewStaticSourceFromDocs([]issue.Document{d}), newStub())

	_, report, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(report.Rejections) != 1 {
		t.Fatalf("rejections = %+v", report.Rejections)
	}
	rej := report.Rejections[0]
	if rej.Reason != ReasonMissingFields {
		t.Errorf("reason = %q", rej.Reason)
	}
	if rej.Detail != "issueTitle,description,address" {
		t.Errorf("detail = %q", rej.Detail)
	}
}

func TestLoadEmptyCorpus(t *testing.T) {
	loader := NewLoader(store.NewStaticSourceFromDocs(nil), newStub())

	snap, report, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if snap.Len() != 0 {
		t.Errorf("snapshot has %d records, want 0", snap.Len())
	}
	if report.Accepted != 0 || report.Rejected() != 0 {
		t.Errorf("report = %+v, want empty", report)
	}
	if snap.Dimensions() != 0 {
		t.Errorf("dimensions = %d, want 0 for empty corpus", snap.Dimensions())
	}

	// Searching an empty snapshot is valid and returns nothing.
	hits, err := snap.Search(context.Background(), make([]float32, 16), 5, "roads", "560001")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 0 {
		t.Errorf("hits = %v, want none", hits)
	}
}

func TestLoadProgress(t *testing.T) {
	docs := []issue.Document{
		doc("a", "t", "d", "roads", "560001"),
		doc("b", "t", "d", "roads", "560001"),
		doc("c", "t", "d", "roads", "560001"),
	}
	loader := NewLoader(store.NewStaticSourceFromDocs(docs), newStub())

	var calls []int
	loader.OnProgress(func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, done)
	})

	if _, _, err := loader.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(calls) != 3 || calls[2] != 3 {
		t.Errorf("progress calls = %v", calls)
	}
}

func TestSnapshotCandidates(t *testing.T) {
	docs := []issue.Document{
		doc("a", "Pothole", "big pothole", "roads", "MG Road 560001"),
		doc("b", "Pothole again", "another one", "roads", "Brigade Road 560002"),
		doc("c", "Water leak", "leaking pipe", "water", "MG Road 560001"),
		doc("d", "Pothole near park", "deep pothole", "roads", "Park Road 560001"),
	}
	loader := NewLoader(store.NewStaticSourceFromDocs(docs), newStub())
	snap, _, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := snap.Candidates("roads", "560001")
	if len(got) != 2 || got[0] != 0 || got[1] != 3 {
		t.Errorf("candidates = %v, want [0 3]", got)
	}
	if c := snap.Candidates("roads", "999999"); len(c) != 0 {
		t.Errorf("candidates for unknown pincode = %v, want none", c)
	}
}

func TestSnapshotSearchFiltersAndRanks(t *testing.T) {
	docs := []issue.Document{
		doc("a", "Pothole on main road", "huge pothole near the signal", "roads", "560001"),
		doc("b", "Garbage pile", "garbage not collected", "roads", "560001"),
		doc("c", "Pothole on main road", "huge pothole near the signal", "roads", "560002"),
	}
	stub := newStub()
	loader := NewLoader(store.NewStaticSourceFromDocs(docs), stub)
	snap, _, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	vecs, err := stub.Embed(context.Background(), []string{"Pothole on main road huge pothole near the signal"})
	if err != nil {
		t.Fatalf("embed: %v", err)
	}

	hits, err := snap.Search(context.Background(), vecs[0], 2, "roads", "560001")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2", len(hits))
	}
	// The identical-text record in a different pincode must not appear.
	for _, h := range hits {
		if snap.Records[h.Index].Pincode != "560001" {
			t.Errorf("hit %d is from pincode %s", h.Index, snap.Records[h.Index].Pincode)
		}
	}
	if hits[0].Index != 0 {
		t.Errorf("best hit index = %d, want 0 (identical text)", hits[0].Index)
	}
	if hits[0].Similarity < hits[1].Similarity {
		t.Errorf("hits not sorted: %v", hits)
	}
}

func TestManagerReloadSwapsSnapshot(t *testing.T) {
	src := store.NewStaticSourceFromDocs([]issue.Document{
		doc("a", "Pothole", "pothole", "roads", "560001"),
	})
	mgr := NewManager(NewLoader(src, newStub()))

	if mgr.Current() != nil {
		t.Fatal("snapshot should be nil before first reload")
	}
	if mgr.LastReport() != nil {
		t.Fatal("report should be nil before first reload")
	}

	report, err := mgr.Reload(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if report.Accepted != 1 {
		t.Errorf("accepted = %d, want 1", report.Accepted)
	}

	first := mgr.Current()
	if first == nil || first.Len() != 1 {
		t.Fatalf("snapshot = %+v, want 1 record", first)
	}

	if _, err := mgr.Reload(context.Background()); err != nil {
		t.Fatalf("second reload: %v", err)
	}
	if mgr.Current() == first {
		t.Error("reload should swap in a fresh snapshot")
	}
}

func TestManagerReloadCallback(t *testing.T) {
	src := store.NewStaticSourceFromDocs([]issue.Document{
		doc("a", "Pothole", "pothole", "roads", "560001"),
	})
	mgr := NewManager(NewLoader(src, newStub()))

	var recorded []string
	mgr.OnReload(func(ctx context.Context, report *Report) {
		recorded = append(recorded, report.CycleID)
	})

	for i := 0; i < 3; i++ {
		if _, err := mgr.Reload(context.Background()); err != nil {
			t.Fatalf("reload %d: %v", i, err)
		}
	}

	if len(recorded) != 3 {
		t.Fatalf("callback ran %d times for 3 reloads", len(recorded))
	}
	if recorded[0] == recorded[1] {
		t.Error("cycle ids should differ per reload")
	}
}
