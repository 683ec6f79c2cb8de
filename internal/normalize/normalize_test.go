package normalize

import (
	"testing"

	"github.com/civicradar/issueradar/internal/issue"
)

func TestExtractPincode(t *testing.T) {
	tests := []struct {
		name    string
		address string
		want    string
		ok      bool
	}{
		{"plain code at end", "12 MG Road, City, 560001", "560001", true},
		{"code in the middle", "Ward 7, 110045, Near Metro", "110045", true},
		{"seven digit run", "Flat 45600012, City", "", false},
		{"five digit run", "Door 56001, City", "", false},
		{"no digits", "No numbers here", "", false},
		{"empty address", "", "", false},
		{"first of two codes wins", "From 500001 to 500049", "500001", true},
		{"digits glued to letters", "sector560001block", "", false},
		{"code after short number", "Plot 4, 600042 Chennai", "600042", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPincode(tt.address)
			if ok != tt.ok {
				t.Fatalf("ExtractPincode(%q) ok = %v, want %v", tt.address, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("ExtractPincode(%q) = %q, want %q", tt.address, got, tt.want)
			}
		})
	}
}

func TestFlattenDescription(t *testing.T) {
	date := "2024-01-01"
	desc := issue.Description{
		{Text: "pothole"},
		{Text: "got worse", Date: &date},
	}

	if got := FlattenDescription(desc); got != "pothole got worse" {
		t.Errorf("FlattenDescription = %q, want %q", got, "pothole got worse")
	}
}

func TestFlattenDescriptionEmpty(t *testing.T) {
	if got := FlattenDescription(nil); got != "" {
		t.Errorf("FlattenDescription(nil) = %q, want empty", got)
	}
	if got := FlattenDescription(issue.Description{}); got != "" {
		t.Errorf("FlattenDescription(empty) = %q, want empty", got)
	}
}

func TestCombinedText(t *testing.T) {
	desc := issue.Description{{Text: "overflowing for days"}}
	want := "Garbage overflow overflowing for days"
	if got := CombinedText("Garbage overflow", desc); got != want {
		t.Errorf("CombinedText = %q, want %q", got, want)
	}
}
