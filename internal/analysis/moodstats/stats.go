// Package moodstats derives aggregate statistics from mood entries.
//
// Everything here is computed on demand from an already-fetched window of
// entries. Degenerate inputs (empty windows, zero variance, too few paired
// observations) produce "not computable" results, never NaN or an error.
package moodstats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/mindhaven/backend/internal/model/mood"
)

// minPairedSamples is the smallest sample size a correlation is reported for.
const minPairedSamples = 3

// TagCount is one row of a frequency table.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// Correlations holds Pearson coefficients between mood score and tracked
// factors. A nil coefficient means "not computable" for that pairing.
type Correlations struct {
	MoodVsSleep  *float64 `json:"moodVsSleep"`
	MoodVsEnergy *float64 `json:"moodVsEnergy"`
	MoodVsStress *float64 `json:"moodVsStress"`
}

// Snapshot is the derived aggregate over one queried window.
type Snapshot struct {
	TotalEntries int           `json:"totalEntries"`
	AverageMood  float64       `json:"averageMood"`
	HighestMood  int           `json:"highestMood"`
	LowestMood   int           `json:"lowestMood"`
	Variability  float64       `json:"moodVariability"`
	Emotions     []TagCount    `json:"emotions"`
	Activities   []TagCount    `json:"activities"`
	Correlations *Correlations `json:"correlations"`
}

// Summarize computes the full snapshot for a window of entries.
func Summarize(entries []mood.Entry) Snapshot {
	snapshot := Snapshot{TotalEntries: len(entries)}
	if len(entries) == 0 {
		return snapshot
	}

	scores := make([]float64, 0, len(entries))
	for _, entry := range entries {
		scores = append(scores, float64(entry.MoodScore))
	}

	mean, _ := stats.Mean(scores)
	highest, _ := stats.Max(scores)
	lowest, _ := stats.Min(scores)

	snapshot.AverageMood = round2(mean)
	snapshot.HighestMood = int(highest)
	snapshot.LowestMood = int(lowest)
	snapshot.Variability = variability(scores)
	snapshot.Emotions = topTags(entries, func(e mood.Entry) []string { return e.Emotions })
	snapshot.Activities = topTags(entries, func(e mood.Entry) []string { return e.Activities })
	snapshot.Correlations = correlations(entries)
	return snapshot
}

// variability is the population standard deviation of the scores, rounded to
// two decimals. Fewer than two scores yields zero.
func variability(scores []float64) float64 {
	if len(scores) < 2 {
		return 0
	}
	stdDev, err := stats.StandardDeviationPopulation(scores)
	if err != nil {
		return 0
	}
	return round2(stdDev)
}

// topTags builds a frequency table capped at the ten most common tags, ties
// broken alphabetically for stable output.
func topTags(entries []mood.Entry, pick func(mood.Entry) []string) []TagCount {
	counts := make(map[string]int)
	for _, entry := range entries {
		for _, tag := range pick(entry) {
			counts[tag]++
		}
	}
	if len(counts) == 0 {
		return nil
	}

	table := make([]TagCount, 0, len(counts))
	for tag, count := range counts {
		table = append(table, TagCount{Tag: tag, Count: count})
	}
	sort.Slice(table, func(i, j int) bool {
		if table[i].Count != table[j].Count {
			return table[i].Count > table[j].Count
		}
		return table[i].Tag < table[j].Tag
	})
	if len(table) > 10 {
		table = table[:10]
	}
	return table
}

// correlations pairs mood scores against sleep, energy and stress. Entries
// missing sleep or energy are excluded up front; fewer than three usable
// pairs means no correlations at all, matching the analytics contract.
func correlations(entries []mood.Entry) *Correlations {
	var paired []mood.Entry
	for _, entry := range entries {
		if entry.SleepHours != nil && entry.EnergyLevel != nil {
			paired = append(paired, entry)
		}
	}
	if len(paired) < minPairedSamples {
		return nil
	}

	moodScores := make([]float64, len(paired))
	sleep := make([]float64, len(paired))
	energy := make([]float64, len(paired))
	for i, entry := range paired {
		moodScores[i] = float64(entry.MoodScore)
		sleep[i] = *entry.SleepHours
		energy[i] = float64(*entry.EnergyLevel)
	}

	result := &Correlations{
		MoodVsSleep:  Pearson(moodScores, sleep),
		MoodVsEnergy: Pearson(moodScores, energy),
	}

	var stressMood, stress []float64
	for _, entry := range paired {
		if entry.StressLevel != nil {
			stressMood = append(stressMood, float64(entry.MoodScore))
			stress = append(stress, float64(*entry.StressLevel))
		}
	}
	if len(stress) >= minPairedSamples {
		result.MoodVsStress = Pearson(stressMood, stress)
	}
	return result
}

// Pearson returns the correlation coefficient between two paired sequences,
// rounded to three decimals, or nil when the sequences are mismatched, too
// short, or either side has zero variance.
func Pearson(x, y []float64) *float64 {
	if len(x) != len(y) || len(x) < minPairedSamples {
		return nil
	}
	r := stat.Correlation(x, y, nil)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return nil
	}
	rounded := round3(r)
	return &rounded
}

// Bucket is one period of grouped mood data.
type Bucket struct {
	Period      string  `json:"date"`
	AverageMood float64 `json:"averageMood"`
	EntryCount  int     `json:"entryCount"`
	HighestMood int     `json:"highestMood"`
	LowestMood  int     `json:"lowestMood"`
}

// Granularity selects the grouping period for trends.
type Granularity string

const (
	ByDay   Granularity = "day"
	ByWeek  Granularity = "week"
	ByMonth Granularity = "month"
)

// Group buckets entries by period, ascending by period key. Weeks bucket to
// the date of that week's Sunday; months to YYYY-MM; days to YYYY-MM-DD.
func Group(entries []mood.Entry, granularity Granularity) []Bucket {
	groups := make(map[string][]float64)
	for _, entry := range entries {
		if entry.MoodScore == 0 {
			continue
		}
		groups[periodKey(entry.CreatedAt, granularity)] = append(
			groups[periodKey(entry.CreatedAt, granularity)], float64(entry.MoodScore))
	}

	buckets := make([]Bucket, 0, len(groups))
	for period, scores := range groups {
		mean, _ := stats.Mean(scores)
		highest, _ := stats.Max(scores)
		lowest, _ := stats.Min(scores)
		buckets = append(buckets, Bucket{
			Period:      period,
			AverageMood: mean,
			EntryCount:  len(scores),
			HighestMood: int(highest),
			LowestMood:  int(lowest),
		})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Period < buckets[j].Period })
	return buckets
}

func periodKey(t time.Time, granularity Granularity) string {
	u := t.UTC()
	switch granularity {
	case ByWeek:
		sunday := u.AddDate(0, 0, -int(u.Weekday()))
		return sunday.Format("2006-01-02")
	case ByMonth:
		return fmt.Sprintf("%04d-%02d", u.Year(), int(u.Month()))
	default:
		return u.Format("2006-01-02")
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
