package entity

// AnalyzeRequest is the validated form of GET /analyze.
type AnalyzeRequest struct {
	Subreddit string
	// Days is accepted and logged; the analysis does not filter by it.
	Days  int
	Limit int
}

type HeatmapPoint struct {
	Hour              int     `json:"x"`
	Weekday           int     `json:"y"`
	AverageEngagement float64 `json:"z"`
	WeekdayName       string  `json:"day"`
	FormattedLabel    string  `json:"formattedTime"`
	PostCount         int     `json:"count"`
}

type RankedTimeSlot struct {
	WeekdayName       string  `json:"day"`
	Weekday           int     `json:"weekday"`
	Hour              int     `json:"hour"`
	AverageEngagement float64 `json:"score"`
	FormattedLabel    string  `json:"formattedTime"`
}

type Analysis struct {
	HeatmapData []HeatmapPoint   `json:"heatmapData"`
	BestTimes   []RankedTimeSlot `json:"bestTimes"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
