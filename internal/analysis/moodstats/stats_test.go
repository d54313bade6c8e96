package moodstats

import (
	"math"
	"testing"
	"time"

	"github.com/mindhaven/backend/internal/model/mood"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func entryOn(day int, score int) mood.Entry {
	return mood.Entry{
		MoodScore: score,
		CreatedAt: time.Date(2025, time.April, day, 10, 0, 0, 0, time.UTC),
	}
}

func TestSummarizeEmptyWindow(t *testing.T) {
	snapshot := Summarize(nil)
	if snapshot.TotalEntries != 0 || snapshot.AverageMood != 0 {
		t.Fatalf("unexpected snapshot for empty window: %+v", snapshot)
	}
	if snapshot.Correlations != nil {
		t.Fatalf("expected nil correlations, got %+v", snapshot.Correlations)
	}
}

func TestSummarizeBasicStatistics(t *testing.T) {
	entries := []mood.Entry{entryOn(1, 4), entryOn(2, 6), entryOn(3, 8)}

	snapshot := Summarize(entries)
	if snapshot.AverageMood != 6 {
		t.Fatalf("expected average 6, got %f", snapshot.AverageMood)
	}
	if snapshot.HighestMood != 8 || snapshot.LowestMood != 4 {
		t.Fatalf("unexpected min/max: %+v", snapshot)
	}
	// Population stddev of {4,6,8} is sqrt(8/3) ~ 1.63.
	if math.Abs(snapshot.Variability-1.63) > 0.005 {
		t.Fatalf("unexpected variability: %f", snapshot.Variability)
	}
}

func TestSummarizeZeroVariance(t *testing.T) {
	entries := []mood.Entry{entryOn(1, 5), entryOn(2, 5), entryOn(3, 5)}
	for i := range entries {
		entries[i].SleepHours = fptr(8)
		entries[i].EnergyLevel = iptr(5)
	}

	snapshot := Summarize(entries)
	if snapshot.Variability != 0 {
		t.Fatalf("expected zero variability, got %f", snapshot.Variability)
	}
	// Constant mood scores have zero variance: correlation is undefined and
	// must come back as not computable rather than NaN.
	if snapshot.Correlations == nil {
		t.Fatal("expected correlations block")
	}
	if snapshot.Correlations.MoodVsSleep != nil {
		t.Fatalf("expected nil sleep correlation, got %f", *snapshot.Correlations.MoodVsSleep)
	}
}

func TestSummarizeTopTags(t *testing.T) {
	entries := []mood.Entry{
		{MoodScore: 5, Emotions: []string{"calm", "grateful"}, Activities: []string{"walking"}},
		{MoodScore: 6, Emotions: []string{"calm"}, Activities: []string{"walking", "reading"}},
		{MoodScore: 7, Emotions: []string{"happy"}},
	}

	snapshot := Summarize(entries)
	if len(snapshot.Emotions) != 3 || snapshot.Emotions[0].Tag != "calm" || snapshot.Emotions[0].Count != 2 {
		t.Fatalf("unexpected emotion table: %+v", snapshot.Emotions)
	}
	if snapshot.Activities[0].Tag != "walking" || snapshot.Activities[0].Count != 2 {
		t.Fatalf("unexpected activity table: %+v", snapshot.Activities)
	}
}

func TestPearsonPerfectCorrelation(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4}, []float64{2, 4, 6, 8})
	if r == nil {
		t.Fatal("expected computable correlation")
	}
	if math.Abs(*r-1.0) > 1e-9 {
		t.Fatalf("expected r=1.0, got %f", *r)
	}
}

func TestPearsonNegativeCorrelation(t *testing.T) {
	r := Pearson([]float64{1, 2, 3, 4}, []float64{8, 6, 4, 2})
	if r == nil || math.Abs(*r+1.0) > 1e-9 {
		t.Fatalf("expected r=-1.0, got %v", r)
	}
}

func TestPearsonTooFewSamples(t *testing.T) {
	if r := Pearson([]float64{1, 2}, []float64{2, 4}); r != nil {
		t.Fatalf("expected not-computable for 2 pairs, got %f", *r)
	}
}

func TestPearsonMismatchedLengths(t *testing.T) {
	if r := Pearson([]float64{1, 2, 3}, []float64{1, 2}); r != nil {
		t.Fatalf("expected not-computable for mismatched inputs, got %f", *r)
	}
}

func TestCorrelationsRequirePairedFactors(t *testing.T) {
	entries := []mood.Entry{entryOn(1, 3), entryOn(2, 5), entryOn(3, 7)}
	// No sleep/energy data at all.
	if snapshot := Summarize(entries); snapshot.Correlations != nil {
		t.Fatalf("expected nil correlations without paired factors, got %+v", snapshot.Correlations)
	}
}

func TestCorrelationsMoodVsFactors(t *testing.T) {
	entries := []mood.Entry{entryOn(1, 2), entryOn(2, 4), entryOn(3, 6), entryOn(4, 8)}
	sleeps := []float64{4, 6, 8, 10}
	energies := []int{2, 4, 6, 8}
	stresses := []int{9, 7, 5, 3}
	for i := range entries {
		entries[i].SleepHours = fptr(sleeps[i])
		entries[i].EnergyLevel = iptr(energies[i])
		entries[i].StressLevel = iptr(stresses[i])
	}

	snapshot := Summarize(entries)
	c := snapshot.Correlations
	if c == nil {
		t.Fatal("expected correlations")
	}
	if c.MoodVsSleep == nil || math.Abs(*c.MoodVsSleep-1.0) > 1e-9 {
		t.Fatalf("unexpected mood/sleep correlation: %v", c.MoodVsSleep)
	}
	if c.MoodVsEnergy == nil || math.Abs(*c.MoodVsEnergy-1.0) > 1e-9 {
		t.Fatalf("unexpected mood/energy correlation: %v", c.MoodVsEnergy)
	}
	if c.MoodVsStress == nil || math.Abs(*c.MoodVsStress+1.0) > 1e-9 {
		t.Fatalf("unexpected mood/stress correlation: %v", c.MoodVsStress)
	}
}

func TestGroupByDay(t *testing.T) {
	var entries []mood.Entry
	for day := 1; day <= 10; day++ {
		entries = append(entries, entryOn(day, day))
	}

	buckets := Group(entries, ByDay)
	if len(buckets) != 10 {
		t.Fatalf("expected 10 daily buckets, got %d", len(buckets))
	}
	for i, bucket := range buckets {
		if bucket.EntryCount != 1 {
			t.Fatalf("bucket %d has entryCount %d", i, bucket.EntryCount)
		}
		if i > 0 && buckets[i-1].Period >= bucket.Period {
			t.Fatalf("buckets not sorted ascending: %s >= %s", buckets[i-1].Period, bucket.Period)
		}
	}
}

func TestGroupByWeekBucketsToSunday(t *testing.T) {
	// 2025-04-09 is a Wednesday; its week's Sunday is 2025-04-06.
	entries := []mood.Entry{entryOn(9, 5), entryOn(7, 7)}

	buckets := Group(entries, ByWeek)
	if len(buckets) != 1 {
		t.Fatalf("expected one weekly bucket, got %d", len(buckets))
	}
	if buckets[0].Period != "2025-04-06" {
		t.Fatalf("expected Sunday key 2025-04-06, got %s", buckets[0].Period)
	}
	if buckets[0].EntryCount != 2 || buckets[0].AverageMood != 6 {
		t.Fatalf("unexpected weekly bucket: %+v", buckets[0])
	}
}

func TestGroupByMonth(t *testing.T) {
	entries := []mood.Entry{
		entryOn(1, 4),
		entryOn(28, 6),
		{MoodScore: 9, CreatedAt: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)},
	}

	buckets := Group(entries, ByMonth)
	if len(buckets) != 2 {
		t.Fatalf("expected two monthly buckets, got %d", len(buckets))
	}
	if buckets[0].Period != "2025-04" || buckets[1].Period != "2025-05" {
		t.Fatalf("unexpected month keys: %+v", buckets)
	}
	if buckets[0].HighestMood != 6 || buckets[0].LowestMood != 4 {
		t.Fatalf("unexpected april bucket: %+v", buckets[0])
	}
}
