package soundscapes

import (
	"testing"
	"time"
)

func newTestLibrary(reference time.Time) *Library {
	lib := NewLibrary()
	lib.now = func() time.Time { return reference }
	lib.shuffle = func([]Soundscape) {}
	return lib
}

func TestRecommendDirectCategoryMatch(t *testing.T) {
	lib := newTestLibrary(time.Now())

	rec := lib.Recommend("Anxious", true)
	if rec.Mood != "anxious" {
		t.Fatalf("mood = %q, want normalized anxious", rec.Mood)
	}
	if rec.TotalFound != 2 || len(rec.Recommendations) != 2 {
		t.Fatalf("got %d/%d tracks, want both anxious tracks", len(rec.Recommendations), rec.TotalFound)
	}
	for _, track := range rec.Recommendations {
		if track.ID != "calm_ocean" && track.ID != "forest_rain" {
			t.Fatalf("unexpected track %q for anxious mood", track.ID)
		}
	}
	if !rec.Personalized || rec.Message != "Personalized recommendations based on your mood" {
		t.Fatalf("unexpected personalization: %+v", rec)
	}
}

func TestRecommendMatchesMoodTags(t *testing.T) {
	lib := newTestLibrary(time.Now())

	// "worried" is not a category but appears in forest_rain's mood tags.
	rec := lib.Recommend("worried", false)
	if rec.TotalFound != 1 || rec.Recommendations[0].ID != "forest_rain" {
		t.Fatalf("recommendations = %+v, want forest_rain only", rec.Recommendations)
	}
	if rec.Personalized || rec.Message != "General recommendations for your mood" {
		t.Fatalf("unexpected personalization: %+v", rec)
	}
}

func TestRecommendFallsBackToCalmingDefaults(t *testing.T) {
	lib := newTestLibrary(time.Now())

	rec := lib.Recommend("triumphant", false)
	if rec.TotalFound != 2 {
		t.Fatalf("totalFound = %d, want peaceful plus one calming track", rec.TotalFound)
	}
	ids := map[string]bool{}
	for _, track := range rec.Recommendations {
		ids[track.ID] = true
	}
	if !ids["zen_garden"] || !ids["calm_ocean"] {
		t.Fatalf("fallback tracks = %v, want zen_garden and calm_ocean", ids)
	}
}

func TestRecommendCapsAtThree(t *testing.T) {
	lib := newTestLibrary(time.Now())

	// The free-text mood overlaps the anxious and stressed tags, which
	// together cover four tracks.
	rec := lib.Recommend("anxious and stressed", false)
	if rec.TotalFound != 4 {
		t.Fatalf("totalFound = %d, want 4", rec.TotalFound)
	}
	if len(rec.Recommendations) != 3 {
		t.Fatalf("recommendations = %d, want capped at 3", len(rec.Recommendations))
	}
}

func TestAllListsWholeLibrary(t *testing.T) {
	lib := newTestLibrary(time.Now())

	catalog := lib.All("", "")
	if catalog.TotalCount != 8 {
		t.Fatalf("totalCount = %d, want 8 tracks", catalog.TotalCount)
	}
	if len(catalog.Categories) != 5 || catalog.Categories[0] != "anxious" {
		t.Fatalf("categories = %v", catalog.Categories)
	}
}

func TestAllFilters(t *testing.T) {
	lib := newTestLibrary(time.Now())

	byCategory := lib.All("sad", "")
	if byCategory.TotalCount != 2 {
		t.Fatalf("sad category count = %d, want 2", byCategory.TotalCount)
	}

	byTag := lib.All("", "nature")
	if byTag.TotalCount != 4 {
		t.Fatalf("nature tag count = %d, want 4", byTag.TotalCount)
	}

	both := lib.All("sad", "piano")
	if both.TotalCount != 1 || both.Soundscapes[0].ID != "gentle_piano" {
		t.Fatalf("sad+piano = %+v, want gentle_piano", both.Soundscapes)
	}
}

func TestLogPlayback(t *testing.T) {
	reference := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)
	lib := newTestLibrary(reference)

	logEntry := lib.LogPlayback("user-1", "calm_ocean", "anxious", 540, true)
	if logEntry.UserID != "user-1" || logEntry.SoundscapeID != "calm_ocean" || !logEntry.Completed {
		t.Fatalf("unexpected log: %+v", logEntry)
	}
	if !logEntry.Timestamp.Equal(reference) {
		t.Fatalf("timestamp = %v, want %v", logEntry.Timestamp, reference)
	}
}

func TestUserHistoryPlaceholder(t *testing.T) {
	lib := newTestLibrary(time.Now())

	history := lib.UserHistory("user-1")
	if len(history.RecentlyPlayed) != 0 || len(history.Favorites) != 0 {
		t.Fatalf("unexpected history: %+v", history)
	}
	if len(history.PreferredMoods) != 2 {
		t.Fatalf("preferredMoods = %v", history.PreferredMoods)
	}
}
