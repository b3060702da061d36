package service

import (
	"testing"
	"time"

	"github.com/dayanaadylkhanova/reddit-analyzer/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

// post builds a post created at t with the given score/comments.
func post(t time.Time, score, comments int) entity.Post {
	return entity.Post{CreatedUTC: float64(t.Unix()), Score: intp(score), NumComments: intp(comments)}
}

// 2025-10-20 is a Monday.
var monday = time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

func TestAnalyze_SameBucketIsAveraged(t *testing.T) {
	posts := []entity.Post{
		post(monday.Add(14*time.Hour), 5, 3),
		post(monday.Add(14*time.Hour+30*time.Minute), 1, 1),
	}

	res := Analyze(posts)

	require.Len(t, res.HeatmapData, 1)
	p := res.HeatmapData[0]
	assert.Equal(t, 1, p.Weekday)
	assert.Equal(t, 14, p.Hour)
	assert.Equal(t, 2, p.PostCount)
	assert.Equal(t, 5.0, p.AverageEngagement)
	assert.Equal(t, "Monday", p.WeekdayName)
	assert.Equal(t, "Monday 2PM", p.FormattedLabel)

	require.Len(t, res.BestTimes, 1)
	assert.Equal(t, entity.RankedTimeSlot{
		WeekdayName:       "Monday",
		Weekday:           1,
		Hour:              14,
		AverageEngagement: 5.0,
		FormattedLabel:    "Monday 2PM",
	}, res.BestTimes[0])
}

func TestAnalyze_MissingFieldsCountAsZero(t *testing.T) {
	ts := float64(monday.Add(9 * time.Hour).Unix())
	posts := []entity.Post{
		{CreatedUTC: ts},
		{CreatedUTC: ts, Score: intp(4)},
		{CreatedUTC: ts, NumComments: intp(2)},
	}

	res := Analyze(posts)

	require.Len(t, res.HeatmapData, 1)
	assert.Equal(t, 3, res.HeatmapData[0].PostCount)
	assert.Equal(t, 2.0, res.HeatmapData[0].AverageEngagement)
}

func TestAnalyze_PostCountsSumToInput(t *testing.T) {
	var posts []entity.Post
	for i := 0; i < 50; i++ {
		posts = append(posts, post(monday.Add(time.Duration(i*7)*time.Hour), i, i%3))
	}

	res := Analyze(posts)

	total := 0
	for _, p := range res.HeatmapData {
		total += p.PostCount
	}
	assert.Equal(t, len(posts), total)
}

func TestAnalyze_BestTimesSortedAndSubsetOfHeatmap(t *testing.T) {
	posts := []entity.Post{
		post(monday.Add(1*time.Hour), 10, 0),  // Monday 1AM -> 10
		post(monday.Add(2*time.Hour), 40, 0),  // Monday 2AM -> 40
		post(monday.Add(3*time.Hour), 20, 0),  // Monday 3AM -> 20
		post(monday.Add(4*time.Hour), 30, 0),  // Monday 4AM -> 30
		post(monday.Add(27*time.Hour), 35, 5), // Tuesday 3AM -> 40
	}

	res := Analyze(posts)

	require.Len(t, res.HeatmapData, 5)
	require.Len(t, res.BestTimes, 3)
	for i := 1; i < len(res.BestTimes); i++ {
		assert.GreaterOrEqual(t, res.BestTimes[i-1].AverageEngagement, res.BestTimes[i].AverageEngagement)
	}

	inHeatmap := make(map[string]float64)
	for _, p := range res.HeatmapData {
		inHeatmap[p.FormattedLabel] = p.AverageEngagement
	}
	for _, s := range res.BestTimes {
		avg, ok := inHeatmap[s.FormattedLabel]
		require.True(t, ok, "best time %q not in heatmap", s.FormattedLabel)
		assert.Equal(t, avg, s.AverageEngagement)
	}

	// Monday 2AM and Tuesday 3AM tie at 40; Monday 2AM was seen first.
	assert.Equal(t, "Monday 2AM", res.BestTimes[0].FormattedLabel)
	assert.Equal(t, "Tuesday 3AM", res.BestTimes[1].FormattedLabel)
	assert.Equal(t, "Monday 4AM", res.BestTimes[2].FormattedLabel)
}

func TestAnalyze_FewerThanThreeBuckets(t *testing.T) {
	posts := []entity.Post{
		post(monday.Add(5*time.Hour), 1, 0),
		post(monday.Add(6*time.Hour), 2, 0),
	}

	res := Analyze(posts)

	require.Len(t, res.BestTimes, 2)
	assert.Equal(t, "Monday 6AM", res.BestTimes[0].FormattedLabel)
	assert.Equal(t, "Monday 5AM", res.BestTimes[1].FormattedLabel)
}

func TestAnalyze_Idempotent(t *testing.T) {
	var posts []entity.Post
	for i := 0; i < 30; i++ {
		posts = append(posts, post(monday.Add(time.Duration(i*5)*time.Hour), i%4, i%5))
	}

	first := Analyze(posts)
	second := Analyze(posts)

	assert.ElementsMatch(t, first.HeatmapData, second.HeatmapData)
	assert.Equal(t, first.BestTimes, second.BestTimes)
}

func TestAnalyze_EmptyInput(t *testing.T) {
	res := Analyze(nil)

	assert.NotNil(t, res.HeatmapData)
	assert.NotNil(t, res.BestTimes)
	assert.Empty(t, res.HeatmapData)
	assert.Empty(t, res.BestTimes)
}

func TestAnalyze_UsesUTC(t *testing.T) {
	// Sunday 23:30 UTC, Monday in most eastern zones.
	sunday := time.Date(2025, 10, 19, 23, 30, 0, 0, time.UTC)
	res := Analyze([]entity.Post{post(sunday, 1, 0)})

	require.Len(t, res.HeatmapData, 1)
	assert.Equal(t, 0, res.HeatmapData[0].Weekday)
	assert.Equal(t, "Sunday 11PM", res.HeatmapData[0].FormattedLabel)
}

func TestAnalyze_FractionalCreatedUTC(t *testing.T) {
	// One millisecond before 10:00 stays in the 9 o'clock bucket.
	ts := float64(monday.Add(10*time.Hour).Unix()) - 0.001
	res := Analyze([]entity.Post{{CreatedUTC: ts, Score: intp(1)}})

	require.Len(t, res.HeatmapData, 1)
	assert.Equal(t, 9, res.HeatmapData[0].Hour)
}

func TestFormatSlot(t *testing.T) {
	tests := []struct {
		weekday, hour int
		want          string
	}{
		{0, 0, "Sunday 12AM"},
		{1, 12, "Monday 12PM"},
		{2, 15, "Tuesday 3PM"},
		{3, 11, "Wednesday 11AM"},
		{6, 23, "Saturday 11PM"},
	}
	for _, tc := range tests {
		t.Run(tc.want, func(t *testing.T) {
			if got := FormatSlot(tc.weekday, tc.hour); got != tc.want {
				t.Fatalf("FormatSlot(%d, %d) = %q, want %q", tc.weekday, tc.hour, got, tc.want)
			}
		})
	}
}
