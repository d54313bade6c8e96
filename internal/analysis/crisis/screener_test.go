package crisis

import (
	"reflect"
	"testing"
)

func TestScreenDetectsCrisisPhrases(t *testing.T) {
	result := Screen("I want to end my life")
	if !result.IsCrisis {
		t.Fatal("expected crisis detection")
	}

	if !reflect.DeepEqual(result.MatchedKeywords, []string{"end my life"}) {
		t.Fatalf("expected 'end my life' as the only match, got %v", result.MatchedKeywords)
	}
}

func TestScreenCaseInsensitive(t *testing.T) {
	result := Screen("Sometimes I feel WORTHLESS and Hopeless.")
	if !result.IsCrisis {
		t.Fatal("expected crisis detection for mixed-case input")
	}
	if !reflect.DeepEqual(result.MatchedKeywords, []string{"hopeless", "worthless"}) {
		t.Fatalf("expected matches in keyword-list order, got %v", result.MatchedKeywords)
	}
}

func TestScreenBenignMessage(t *testing.T) {
	result := Screen("I had a great day")
	if result.IsCrisis {
		t.Fatalf("unexpected crisis detection: %v", result.MatchedKeywords)
	}
	if len(result.MatchedKeywords) != 0 {
		t.Fatalf("expected empty match list, got %v", result.MatchedKeywords)
	}
}

func TestScreenEmptyMessage(t *testing.T) {
	if result := Screen(""); result.IsCrisis {
		t.Fatalf("empty message flagged as crisis: %v", result.MatchedKeywords)
	}
}

func TestScreenSubstringFalsePositive(t *testing.T) {
	// Known limitation of substring matching: casual "give up" phrasing
	// matches. The screener favors over-detection.
	result := Screen("I'll never give up chocolate")
	if !result.IsCrisis {
		t.Fatal("substring matching is expected to flag 'give up'")
	}
}

func TestScreenCollectsMultipleMatches(t *testing.T) {
	result := Screen("i'm suicidal and i can't go on, life is not worth living")
	if len(result.MatchedKeywords) < 3 {
		t.Fatalf("expected at least 3 matches, got %v", result.MatchedKeywords)
	}
}
