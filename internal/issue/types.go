package issue

import (
	"encoding/json"
	"fmt"
	"time"
)

// DescriptionEntry is one append-only update to an issue's description.
// Date is nil for legacy entries that were stored as bare strings.
type DescriptionEntry struct {
	Text string  `json:"text"`
	Date *string `json:"date"`
}

// Description is the canonical list-of-entries form of an issue
// description. The stored field is legacy-shaped: it may be a bare
// string, a list of strings, a list of {text,date} objects, or a mix.
// Decoding resolves all of those into entries; anything unrecognized is
// dropped so a malformed description degrades to empty rather than
// failing the document.
type Description []DescriptionEntry

func (d *Description) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*d = DescriptionFromRaw(raw)
	return nil
}

// DescriptionFromRaw normalizes a decoded description value (from JSON or
// a Firestore document) into the canonical entry list.
func DescriptionFromRaw(raw any) Description {
	switch v := raw.(type) {
	case string:
		return Description{{Text: v}}
	case []any:
		entries := make(Description, 0, len(v))
		for _, item := range v {
			switch e := item.(type) {
			case string:
				entries = append(entries, DescriptionEntry{Text: e})
			case map[string]any:
				entries = append(entries, DescriptionEntry{
					Text: stringValue(e["text"]),
					Date: dateValue(e["date"]),
				})
			}
		}
		return entries
	default:
		return nil
	}
}

// Document is one raw issue document as read from the external store,
// before load-time classification.
type Document struct {
	ID              string      `json:"issueId"`
	Title           string      `json:"issueTitle"`
	Description     Description `json:"description"`
	Category        string      `json:"category"`
	Address         string      `json:"address"`
	Status          string      `json:"status"`
	Upvotes         int64       `json:"upvotes"`
	Media           []string    `json:"media"`
	DateOfComplaint string      `json:"dateOfComplaint"`
}

// DocumentFromMap builds a Document from a Firestore document's field map.
// Field values are coerced leniently; classification of incomplete
// documents happens later, at load time.
func DocumentFromMap(id string, data map[string]any) Document {
	return Document{
		ID:              id,
		Title:           stringValue(data["issueTitle"]),
		Description:     DescriptionFromRaw(data["description"]),
		Category:        stringValue(data["category"]),
		Address:         stringValue(data["address"]),
		Status:          stringValue(data["status"]),
		Upvotes:         intValue(data["upvotes"]),
		Media:           stringSlice(data["media"]),
		DateOfComplaint: stringValue(data["dateOfComplaint"]),
	}
}

// Record is one corpus-resident issue. Records are built by the loader
// and immutable afterwards; a reload replaces them wholesale.
type Record struct {
	ID              string
	Title           string
	Description     Description
	Category        string
	Address         string
	Pincode         string
	Status          string
	Upvotes         int64
	Media           []string
	DateOfComplaint string
}

// Query is one duplicate-detection request. It is never persisted.
type Query struct {
	Title       string      `json:"issueTitle"`
	Description Description `json:"description"`
	Category    string      `json:"category"`
	Address     string      `json:"address"`
}

// Match is one ranked result of a duplicate search.
type Match struct {
	IssueID         string      `json:"issueId"`
	Title           string      `json:"title"`
	Description     Description `json:"description"`
	Category        string      `json:"category"`
	Address         string      `json:"address"`
	Upvotes         int64       `json:"upvotes"`
	Media           []string    `json:"media"`
	SimilarityScore float64     `json:"similarity_score"`
	DateOfComplaint string      `json:"dateOfComplaint,omitempty"`
	Status          string      `json:"status"`
}

func stringValue(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case time.Time:
		return s.Format(time.RFC3339)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func dateValue(v any) *string {
	if v == nil {
		return nil
	}
	s := stringValue(v)
	if s == "" {
		return nil
	}
	return &s
}

func intValue(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
