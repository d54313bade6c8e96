// Package soundscapes serves the curated ambient-audio library. Tracks are
// grouped by the mood they are meant to ease; recommendations match the
// caller's mood against those groups.
package soundscapes

import (
	"math/rand"
	"strings"
	"time"
)

// maxRecommendations caps one recommendation response.
const maxRecommendations = 3

// Soundscape is one track in the library.
type Soundscape struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Duration    int      `json:"duration"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	MoodMatch   []string `json:"mood_match"`
}

// categories fixes the group order so listings stay stable across requests.
var categories = []string{"anxious", "sad", "stressed", "energetic", "peaceful"}

// library maps a mood category to its tracks.

var library = map[string][]Soundscape{
	"anxious": {
		{
			ID:          "calm_ocean",
			Title:       "Calm Ocean Waves",
			Description: "Gentle ocean sounds to reduce anxiety and promote relaxation",
			Duration:    600,
			URL:         "https://www.soundjay.com/misc/sounds-1015.mp3",
			Tags:        []string{"nature", "water", "calming"},
			MoodMatch:   []string{"anxious", "stressed", "overwhelmed"},
		},
		{
			ID:          "forest_rain",
			Title:       "Peaceful Forest Rain",
			Description: "Soft rainfall in a tranquil forest setting",
			Duration:    480,
			URL:         "https://www.soundjay.com/nature/sounds-1014.mp3",
			Tags:        []string{"nature", "rain", "peaceful"},
			MoodMatch:   []string{"anxious", "restless", "worried"},
		},
	},
	"sad": {
		{
			ID:          "warm_fireplace",
			Title:       "Cozy Fireplace",
			Description: "Comforting crackling fire sounds for emotional warmth",
			Duration:    720,
			URL:         "https://www.soundjay.com/misc/sounds-1016.mp3",
			Tags:        []string{"cozy", "warmth", "comfort"},
			MoodMatch:   []string{"sad", "lonely", "melancholy"},
		},
		{
			ID:          "gentle_piano",
			Title:       "Gentle Piano Melodies",
			Description: "Soft, uplifting piano music to ease sadness",
			Duration:    420,
			URL:         "https://www.soundjay.com/music/sounds-1017.mp3",
			Tags:        []string{"music", "piano", "uplifting"},
			MoodMatch:   []string{"sad", "down", "blue"},
		},
	},
	"stressed": {
		{
			ID:          "mountain_breeze",
			Title:       "Mountain Breeze",
			Description: "Calming mountain wind sounds for stress relief",
			Duration:    540,
			URL:         "https://www.soundjay.com/nature/sounds-1018.mp3",
			Tags:        []string{"nature", "wind", "mountains"},
			MoodMatch:   []string{"stressed", "pressured", "tense"},
		},
		{
			ID:          "meditation_bells",
			Title:       "Tibetan Singing Bowls",
			Description: "Resonant bell sounds for deep relaxation and stress relief",
			Duration:    600,
			URL:         "https://www.soundjay.com/misc/sounds-1019.mp3",
			Tags:        []string{"meditation", "spiritual", "healing"},
			MoodMatch:   []string{"stressed", "anxious", "overwhelmed"},
		},
	},
	"energetic": {
		{
			ID:          "morning_birds",
			Title:       "Dawn Chorus",
			Description: "Energizing morning bird songs to boost mood",
			Duration:    360,
			URL:         "https://www.soundjay.com/nature/sounds-1020.mp3",
			Tags:        []string{"nature", "birds", "morning"},
			MoodMatch:   []string{"low_energy", "tired", "sluggish"},
		},
	},
	"peaceful": {
		{
			ID:          "zen_garden",
			Title:       "Zen Garden",
			Description: "Peaceful sounds of a Japanese zen garden",
			Duration:    480,
			URL:         "https://www.soundjay.com/misc/sounds-1021.mp3",
			Tags:        []string{"zen", "peaceful", "meditation"},
			MoodMatch:   []string{"peaceful", "content", "balanced"},
		},
	},
}

// Recommendation is the mood-matched response payload.
type Recommendation struct {
	Mood            string       `json:"mood"`
	Recommendations []Soundscape `json:"recommendations"`
	TotalFound      int          `json:"totalFound"`
	Personalized    bool         `json:"personalized"`
	Message         string       `json:"message"`
}

// Catalog is the full-library response payload.
type Catalog struct {
	Soundscapes []Soundscape `json:"soundscapes"`
	Categories  []string     `json:"categories"`
	TotalCount  int          `json:"totalCount"`
}

// PlayLog echoes a reported playback for the client.
type PlayLog struct {
	UserID       string    `json:"userId"`
	SoundscapeID string    `json:"soundscapeId"`
	Duration     int       `json:"duration"`
	Mood         string    `json:"mood"`
	Completed    bool      `json:"completed"`
	Timestamp    time.Time `json:"timestamp"`
}

// History is the listening-history payload. Playback tracking is not
// persisted yet, so the lists stay empty.
type History struct {
	RecentlyPlayed  []PlayLog `json:"recentlyPlayed"`
	Favorites       []string  `json:"favorites"`
	TotalListenTime int       `json:"totalListenTime"`
	PreferredMoods  []string  `json:"preferredMoods"`
	Message         string    `json:"message"`
}

// Library answers soundscape queries over the static track table.
type Library struct {
	now     func() time.Time
	shuffle func([]Soundscape)
}

func NewLibrary() *Library {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Library{
		now: time.Now,
		shuffle: func(tracks []Soundscape) {
			rng.Shuffle(len(tracks), func(i, j int) {
				tracks[i], tracks[j] = tracks[j], tracks[i]
			})
		},
	}
}

// Recommend matches a mood against the library. A direct category hit wins;
// otherwise tracks whose mood_match tags overlap the input are collected, and
// with no overlap at all the calming defaults are returned.
func (l *Library) Recommend(mood string, personalized bool) Recommendation {
	normalized := strings.ToLower(strings.TrimSpace(mood))

	var matched []Soundscape
	if tracks, ok := library[normalized]; ok {
		matched = append(matched, tracks...)
	} else {
		for _, track := range l.flat() {
			for _, tag := range track.MoodMatch {
				if strings.Contains(tag, normalized) || strings.Contains(normalized, tag) {
					matched = append(matched, track)
					break
				}
			}
		}
	}
	if len(matched) == 0 {
		matched = append(matched, library["peaceful"]...)
		matched = append(matched, library["anxious"][0])
	}

	total := len(matched)
	picked := make([]Soundscape, len(matched))
	copy(picked, matched)
	l.shuffle(picked)
	if len(picked) > maxRecommendations {
		picked = picked[:maxRecommendations]
	}

	message := "General recommendations for your mood"
	if personalized {
		message = "Personalized recommendations based on your mood"
	}
	return Recommendation{
		Mood:            normalized,
		Recommendations: picked,
		TotalFound:      total,
		Personalized:    personalized,
		Message:         message,
	}
}

// All lists the library, optionally narrowed to one category or to tracks
// carrying a tag.
func (l *Library) All(category, tag string) Catalog {
	tracks := l.flat()
	if _, ok := library[category]; ok {
		tracks = append([]Soundscape(nil), library[category]...)
	}

	if tag != "" {
		filtered := tracks[:0]
		for _, track := range tracks {
			if containsString(track.Tags, tag) || containsString(track.MoodMatch, tag) {
				filtered = append(filtered, track)
			}
		}
		tracks = filtered
	}

	return Catalog{
		Soundscapes: tracks,
		Categories:  categories,
		TotalCount:  len(tracks),
	}
}

// LogPlayback acknowledges a reported playback. Usage is not stored yet; the
// echo lets clients confirm what was reported.
func (l *Library) LogPlayback(userID, soundscapeID, mood string, duration int, completed bool) PlayLog {
	return PlayLog{
		UserID:       userID,
		SoundscapeID: soundscapeID,
		Duration:     duration,
		Mood:         mood,
		Completed:    completed,
		Timestamp:    l.now().UTC(),
	}
}

// UserHistory returns the listening history placeholder.
func (l *Library) UserHistory(userID string) History {
	return History{
		RecentlyPlayed: []PlayLog{},
		Favorites:      []string{},
		PreferredMoods: []string{"anxious", "peaceful"},
		Message:        "Soundscape history tracking coming soon",
	}
}

// flat returns every track in stable category order.
func (l *Library) flat() []Soundscape {
	var tracks []Soundscape
	for _, category := range categories {
		tracks = append(tracks, library[category]...)
	}
	return tracks
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
