// Package crisis screens free-text user input for crisis-risk phrases.
//
// Matching is case-folded substring containment against a fixed phrase list,
// so it over-detects. A match only adds crisis resources to the response.
package crisis

import "strings"

// Keywords is the fixed phrase list screened against every inbound message.
var Keywords = []string{
	"suicide", "kill myself", "end my life", "want to die", "better off dead",
	"suicidal", "self harm", "hurt myself", "cut myself", "overdose",
	"not worth living", "no point in living", "can't go on", "give up",
	"hopeless", "worthless", "burden", "ending it all",
}

// Result reports the outcome of screening one message.
type Result struct {
	IsCrisis        bool
	MatchedKeywords []string
}

// Screen scans a message and collects every matching phrase, in list order.
func Screen(message string) Result {
	normalized := strings.ToLower(message)

	var matched []string
	for _, keyword := range Keywords {
		if strings.Contains(normalized, keyword) {
			matched = append(matched, keyword)
		}
	}

	return Result{IsCrisis: len(matched) > 0, MatchedKeywords: matched}
}
