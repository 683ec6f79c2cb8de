// Package normalize prepares free-form issue text for matching: it pulls
// the geographic key out of an address and flattens description entries
// into a single blob for embedding.
package normalize

import (
	"regexp"
	"strings"

	"github.com/civicradar/issueradar/internal/issue"
)

// pincodeRE matches a run of exactly 6 digits on word boundaries, so a
// 7+ digit run (phone numbers, door numbers glued to codes) never
// yields a partial match.
var pincodeRE = regexp.MustCompile(`\b\d{6}\b`)

// ExtractPincode returns the first 6-digit postal code found in a
// free-form address, or false when the address contains none.
func ExtractPincode(address string) (string, bool) {
	code := pincodeRE.FindString(address)
	return code, code != ""
}

// FlattenDescription joins the entry texts with single spaces, in entry
// order. Dates are ignored. A nil or empty description flattens to "".
func FlattenDescription(desc issue.Description) string {
	if len(desc) == 0 {
		return ""
	}
	texts := make([]string, len(desc))
	for i, entry := range desc {
		texts[i] = entry.Text
	}
	return strings.Join(texts, " ")
}

// CombinedText is the text that gets embedded for an issue: the title
// followed by the flattened description.
func CombinedText(title string, desc issue.Description) string {
	return title + " " + FlattenDescription(desc)
}
