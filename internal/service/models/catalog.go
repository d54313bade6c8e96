// Package models serves the catalog of conversation models offered to
// clients. The catalog itself is static; the assembled listing is held in an
// explicit expiring cache rather than module-level state.
package models

import (
	"errors"
	"sync"
	"time"
)

// ErrNotFound is returned for an unknown model ID.
var ErrNotFound = errors.New("model not found")

const (
	// Provider labels every listing and detail response.
	Provider = "Google Cloud Vertex AI"

	// DefaultModel is recommended to clients that do not choose one.
	DefaultModel = "gemini-1.5-flash"

	CategoryStandard = "standard"
	CategoryPremium  = "premium"
	CategoryAll      = "all"

	defaultLimit = 20
	cacheTTL     = 5 * time.Minute
)

// Model describes one conversation model in the catalog.
type Model struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Strengths     []string `json:"strengths"`
	SuitableFor   []string `json:"suitableFor"`
	ContextLength int      `json:"contextLength"`
	Capabilities  []string `json:"capabilities"`
	Pricing       string   `json:"pricing"`
}

// Detail augments a catalog entry with the safety and therapeutic feature
// lists shown on the model page.
type Detail struct {
	Model
	Provider             string   `json:"provider"`
	SafetyFeatures       []string `json:"safetyFeatures"`
	MentalHealthFeatures []string `json:"mentalHealthFeatures"`
}

// Listing is the cached catalog response.
type Listing struct {
	Models    []Model   `json:"models"`
	Total     int       `json:"total"`
	Provider  string    `json:"provider"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var catalog = []Model{
	{
		ID:            "gemini-1.5-flash",
		Name:          "Gemini 1.5 Flash",
		Category:      CategoryStandard,
		Description:   "Fast and efficient model optimized for conversational AI with excellent safety features",
		Strengths:     []string{"Fast responses", "Safety-focused", "Good empathy", "Crisis awareness", "CBT knowledge"},
		SuitableFor:   []string{"General support", "Daily check-ins", "Coping strategies", "Crisis support"},
		ContextLength: 1000000,
		Capabilities:  []string{"text", "multimodal"},
		Pricing:       "Pay-per-use",
	},
	{
		ID:            "gemini-1.5-pro",
		Name:          "Gemini 1.5 Pro",
		Category:      CategoryPremium,
		Description:   "Most capable model for complex therapeutic conversations and nuanced emotional support",
		Strengths:     []string{"Advanced reasoning", "Deep empathy", "Complex problem solving", "Detailed responses", "Crisis intervention"},
		SuitableFor:   []string{"Complex therapy discussions", "Crisis intervention", "Detailed emotional support", "Advanced CBT techniques"},
		ContextLength: 2000000,
		Capabilities:  []string{"text", "multimodal", "advanced_reasoning"},
		Pricing:       "Pay-per-use",
	},
	{
		ID:            "gemini-1.0-pro",
		Name:          "Gemini 1.0 Pro",
		Category:      CategoryStandard,
		Description:   "Reliable model for general mental health conversations with good safety features",
		Strengths:     []string{"Reliable", "Good safety", "Balanced responses", "CBT techniques"},
		SuitableFor:   []string{"General wellness", "Mood tracking", "Journaling support", "Basic therapy techniques"},
		ContextLength: 30720,
		Capabilities:  []string{"text"},
		Pricing:       "Pay-per-use",
	},
}

var safetyFeatures = []string{
	"Built-in safety filters",
	"Crisis detection",
	"Harmful content blocking",
	"Privacy protection",
}

var mentalHealthFeatures = []string{
	"CBT-trained responses",
	"Empathetic communication",
	"Crisis intervention awareness",
	"Therapeutic technique integration",
}

// cache holds one assembled full listing with its expiry instant. State is
// owned by the Catalog that created it, never package-level.
type cache struct {
	mu        sync.Mutex
	value     *Listing
	expiresAt time.Time
}

func (c *cache) get(now time.Time) (*Listing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.value == nil || !now.Before(c.expiresAt) {
		return nil, false
	}
	return c.value, true
}

func (c *cache) put(value *Listing, expiresAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.expiresAt = expiresAt
}

// Catalog answers model listing and detail queries.
type Catalog struct {
	now   func() time.Time
	ttl   time.Duration
	cache cache
}

func NewCatalog() *Catalog {
	return &Catalog{now: time.Now, ttl: cacheTTL}
}

// List returns up to limit models, optionally filtered by category. A zero
// limit falls back to the default page size; category "" or "all" means no
// filter. The unfiltered listing is cached until its TTL lapses.
func (c *Catalog) List(category string, limit int) Listing {
	full := c.fullListing()
	if limit <= 0 {
		limit = defaultLimit
	}

	filtered := full.Models
	if category != "" && category != CategoryAll {
		filtered = nil
		for _, m := range full.Models {
			if m.Category == category {
				filtered = append(filtered, m)
			}
		}
	}

	total := len(filtered)
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return Listing{
		Models:    filtered,
		Total:     total,
		Provider:  Provider,
		UpdatedAt: full.UpdatedAt,
	}
}

// Get returns the detail page for one model.
func (c *Catalog) Get(id string) (Detail, error) {
	for _, m := range catalog {
		if m.ID == id {
			return Detail{
				Model:                m,
				Provider:             Provider,
				SafetyFeatures:       safetyFeatures,
				MentalHealthFeatures: mentalHealthFeatures,
			}, nil
		}
	}
	return Detail{}, ErrNotFound
}

func (c *Catalog) fullListing() *Listing {
	now := c.now()
	if listing, ok := c.cache.get(now); ok {
		return listing
	}

	models := make([]Model, len(catalog))
	copy(models, catalog)
	listing := &Listing{
		Models:    models,
		Total:     len(models),
		Provider:  Provider,
		UpdatedAt: now.UTC(),
	}
	c.cache.put(listing, now.Add(c.ttl))
	return listing
}
