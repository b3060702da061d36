package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
)

const bestTimesLimit = 3

var weekdayNames = [7]string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type key struct {
	weekday int // 0 = Sunday
	hour    int
}

type bucket struct {
	key   key
	total int64
	count int
}

func (b *bucket) average() float64 { return float64(b.total) / float64(b.count) }

// bucketKey maps a created_utc value (seconds, possibly fractional) to its UTC slot.
// Sub-millisecond precision is dropped, same as a millisecond timestamp would.
func bucketKey(createdUTC float64) key {
	t := time.UnixMilli(int64(math.Floor(createdUTC * 1000))).UTC()
	return key{weekday: int(t.Weekday()), hour: t.Hour()}
}

// FormatSlot renders "Tuesday 3PM" style labels.
func FormatSlot(weekday, hour int) string {
	h := hour % 12
	if h == 0 {
		h = 12
	}
	meridiem := "AM"
	if hour >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%s %d%s", weekdayNames[weekday], h, meridiem)
}

// Analyze buckets posts by UTC (weekday, hour) and ranks the buckets by
// average engagement. It is pure and never fails.
//
// Buckets are kept in first-seen order; bestTimes is a stable sort over that
// order, so equal averages keep the order in which their buckets appeared.
func Analyze(posts []entity.Post) entity.Analysis {
	index := make(map[key]int, 24)
	var buckets []*bucket
	for _, p := range posts {
		k := bucketKey(p.CreatedUTC)
		i, ok := index[k]
		if !ok {
			i = len(buckets)
			index[k] = i
			buckets = append(buckets, &bucket{key: k})
		}
		b := buckets[i]
		b.total += p.Engagement()
		b.count++
	}

	res := entity.Analysis{
		HeatmapData: make([]entity.HeatmapPoint, 0, len(buckets)),
		BestTimes:   make([]entity.RankedTimeSlot, 0, bestTimesLimit),
	}
	slots := make([]entity.RankedTimeSlot, 0, len(buckets))
	for _, b := range buckets {
		avg := b.average()
		name := weekdayNames[b.key.weekday]
		label := FormatSlot(b.key.weekday, b.key.hour)
		res.HeatmapData = append(res.HeatmapData, entity.HeatmapPoint{
			Hour:              b.key.hour,
			Weekday:           b.key.weekday,
			AverageEngagement: avg,
			WeekdayName:       name,
			FormattedLabel:    label,
			PostCount:         b.count,
		})
		slots = append(slots, entity.RankedTimeSlot{
			WeekdayName:       name,
			Weekday:           b.key.weekday,
			Hour:              b.key.hour,
			AverageEngagement: avg,
			FormattedLabel:    label,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		return slots[i].AverageEngagement > slots[j].AverageEngagement
	})
	if len(slots) > bestTimesLimit {
		slots = slots[:bestTimesLimit]
	}
	res.BestTimes = append(res.BestTimes, slots...)
	return res
}
