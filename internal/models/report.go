package models

// ReportPeriod names the month a report covers
type ReportPeriod struct {
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// ReportSummary totals one month of activity
type ReportSummary struct {
	TotalMissions   int `json:"total_missions"`
	UniqueBooksRead int `json:"unique_books_read"`
	TotalWordCount  int `json:"total_word_count"`
	ReadingCount    int `json:"reading_count"`
	VideoCount      int `json:"video_count"`
	ListeningCount  int `json:"listening_count"`
}

// DailyActivity is one logged activity inside a day bucket
type DailyActivity struct {
	ActivityType string  `json:"activity_type"`
	BookTitle    *string `json:"book_title"`
}

// DailyStat groups a day's activities
type DailyStat struct {
	Count      int             `json:"count"`
	Activities []DailyActivity `json:"activities"`
}

// MonthlyReport is the monthly reading report for one child
type MonthlyReport struct {
	Period     ReportPeriod         `json:"period"`
	Summary    ReportSummary        `json:"summary"`
	DailyStats map[string]DailyStat `json:"daily_stats"`
}

// GrowthSummary is the all-time growth report for one child
type GrowthSummary struct {
	Child           ChildDetail `json:"child"`
	TotalBooksRead  int         `json:"total_books_read"`
	TotalWordCount  int         `json:"total_word_count"`
	CurrentStreak   int         `json:"current_streak"`
	LongestStreak   int         `json:"longest_streak"`
	TotalMissions   int         `json:"total_missions"`
	FavoriteThemes  []Theme     `json:"favorite_themes"`
	LovedBooksCount int         `json:"loved_books_count"`
}
