package issue

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDescriptionUnmarshalBareString(t *testing.T) {
	var d Description
	if err := json.Unmarshal([]byte(`"water leaking on the street"`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(d) != 1 || d[0].Text != "water leaking on the street" {
		t.Errorf("got %+v, want one entry with the bare text", d)
	}
	if d[0].Date != nil {
		t.Errorf("bare string entry should have nil date, got %v", *d[0].Date)
	}
}

func TestDescriptionUnmarshalMixedList(t *testing.T) {
	raw := `[
		{"text": "pothole", "date": null},
		"legacy update",
		{"text": "got worse", "date": "2024-01-01"}
	]`

	var d Description
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(d) != 3 {
		t.Fatalf("got %d entries, want 3", len(d))
	}
	if d[0].Text != "pothole" || d[0].Date != nil {
		t.Errorf("entry 0 = %+v, want text 'pothole' with nil date", d[0])
	}
	if d[1].Text != "legacy update" || d[1].Date != nil {
		t.Errorf("entry 1 = %+v, want upgraded legacy string", d[1])
	}
	if d[2].Text != "got worse" || d[2].Date == nil || *d[2].Date != "2024-01-01" {
		t.Errorf("entry 2 = %+v, want dated entry", d[2])
	}
}

func TestDescriptionUnmarshalMalformed(t *testing.T) {
	// Unrecognized shapes degrade to empty rather than erroring.
	for _, raw := range []string{`42`, `true`, `{"nested": "object"}`, `null`} {
		var d Description
		if err := json.Unmarshal([]byte(raw), &d); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if len(d) != 0 {
			t.Errorf("unmarshal %s = %+v, want empty description", raw, d)
		}
	}
}

func TestDescriptionUnmarshalSkipsBadEntries(t *testing.T) {
	var d Description
	if err := json.Unmarshal([]byte(`["ok", 42, {"text": "also ok"}]`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(d) != 2 {
		t.Fatalf("got %d entries, want 2 (number skipped)", len(d))
	}
}

func TestDocumentFromMap(t *testing.T) {
	filed := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	data := map[string]any{
		"issueTitle":      "Street light broken",
		"description":     []any{"dark at night", map[string]any{"text": "still dark", "date": "2024-03-12"}},
		"category":        "electricity",
		"address":         "Lane 4, 560037",
		"status":          "Pending",
		"upvotes":         int64(7),
		"media":           []any{"photo1.jpg", "photo2.jpg"},
		"dateOfComplaint": filed,
	}

	doc := DocumentFromMap("abc123", data)

	if doc.ID != "abc123" {
		t.Errorf("ID = %q", doc.ID)
	}
	if doc.Title != "Street light broken" {
		t.Errorf("Title = %q", doc.Title)
	}
	if len(doc.Description) != 2 || doc.Description[0].Text != "dark at night" {
		t.Errorf("Description = %+v", doc.Description)
	}
	if doc.Upvotes != 7 {
		t.Errorf("Upvotes = %d, want 7", doc.Upvotes)
	}
	if len(doc.Media) != 2 {
		t.Errorf("Media = %v", doc.Media)
	}
	if doc.DateOfComplaint != filed.Format(time.RFC3339) {
		t.Errorf("DateOfComplaint = %q", doc.DateOfComplaint)
	}
}

func TestDocumentFromMapMissingFields(t *testing.T) {
	doc := DocumentFromMap("empty", map[string]any{})
	if doc.Title != "" || doc.Category != "" || doc.Address != "" || len(doc.Description) != 0 {
		t.Errorf("missing fields should coerce to zero values, got %+v", doc)
	}
}

func TestDocumentFromMapFloatUpvotes(t *testing.T) {
	// JSON-sourced numbers arrive as float64.
	doc := DocumentFromMap("x", map[string]any{"upvotes": float64(3)})
	if doc.Upvotes != 3 {
		t.Errorf("Upvotes = %d, want 3", doc.Upvotes)
	}
}
