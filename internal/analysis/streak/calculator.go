// Package streak computes consecutive-day activity streaks.
//
// A streak is the number of consecutive calendar days, ending today or
// yesterday, with at least one tracked activity. Calendar days are taken in
// UTC regardless of where the record was produced; clients that normalize
// timestamps at the boundary get consistent buckets here.
package streak

import (
	"time"

	"github.com/mindhaven/backend/internal/model/activity"
)

// Milestone is one named threshold in the streak reward table.
type Milestone struct {
	Days   int    `json:"days"`
	Title  string `json:"title"`
	Reward string `json:"reward"`
}

// Milestones is the fixed reward table, thresholds strictly increasing.
var Milestones = []Milestone{
	{Days: 3, Title: "Getting Started", Reward: "🌱"},
	{Days: 7, Title: "One Week Strong", Reward: "💪"},
	{Days: 14, Title: "Two Week Champion", Reward: "🏆"},
	{Days: 30, Title: "Monthly Master", Reward: "🌟"},
	{Days: 60, Title: "Consistency King", Reward: "👑"},
	{Days: 100, Title: "Legendary Streak", Reward: "🔥"},
}

// Result is a computed streak for one category. It is derived on demand and
// never persisted; Best always equals Current for now.
type Result struct {
	Category      activity.Category `json:"category"`
	Current       int               `json:"current"`
	Best          int               `json:"best"`
	Milestone     *Milestone        `json:"milestone"`
	NextMilestone *Milestone        `json:"nextMilestone"`
}

// dayKey buckets an instant into its UTC calendar day.
type dayKey struct {
	year  int
	month time.Month
	day   int
}

func keyOf(t time.Time) dayKey {
	u := t.UTC()
	return dayKey{year: u.Year(), month: u.Month(), day: u.Day()}
}

// DaySet is a deduplicated set of active UTC calendar days.
type DaySet map[dayKey]struct{}

// NewDaySet collapses timestamps into their distinct calendar days.
func NewDaySet(times []time.Time) DaySet {
	set := make(DaySet, len(times))
	for _, t := range times {
		set[keyOf(t)] = struct{}{}
	}
	return set
}

// Union merges other into a copy of the set.
func (s DaySet) Union(other DaySet) DaySet {
	merged := make(DaySet, len(s)+len(other))
	for k := range s {
		merged[k] = struct{}{}
	}
	for k := range other {
		merged[k] = struct{}{}
	}
	return merged
}

// Count counts consecutive active days ending at the reference date. Activity
// yesterday keeps a streak alive when today's entry has not happened yet; with
// no activity on either day the streak is zero no matter how long the earlier
// run was. Empty sets simply yield zero.
func Count(days DaySet, reference time.Time) int {
	if len(days) == 0 {
		return 0
	}

	today := reference.UTC()
	yesterday := today.AddDate(0, 0, -1)

	cursor := today
	if _, ok := days[keyOf(today)]; !ok {
		if _, ok := days[keyOf(yesterday)]; !ok {
			return 0
		}
		cursor = yesterday
	}

	streak := 0
	for {
		if _, ok := days[keyOf(cursor)]; !ok {
			return streak
		}
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
}

// Compute builds the full streak result for one category.
func Compute(category activity.Category, times []time.Time, reference time.Time) Result {
	current := Count(NewDaySet(times), reference)
	return Result{
		Category:      category,
		Current:       current,
		Best:          current,
		Milestone:     CurrentMilestone(current),
		NextMilestone: NextMilestone(current),
	}
}

// CurrentMilestone returns the highest milestone already reached, or nil when
// the streak is below the smallest threshold. Reaching a threshold exactly
// counts as achieved.
func CurrentMilestone(streak int) *Milestone {
	var achieved *Milestone
	for i := range Milestones {
		if streak >= Milestones[i].Days {
			achieved = &Milestones[i]
		}
	}
	return achieved
}

// NextMilestone returns the lowest milestone still ahead, or nil when the
// streak has passed the whole table.
func NextMilestone(streak int) *Milestone {
	for i := range Milestones {
		if streak < Milestones[i].Days {
			return &Milestones[i]
		}
	}
	return nil
}
