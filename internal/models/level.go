package models

// Level is a discrete reading-difficulty tier with an AR score band
type Level struct {
	ID        int64   `json:"id"`
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	MinAR     float64 `json:"min_ar"`
	MaxAR     float64 `json:"max_ar"`
	SortOrder int     `json:"sort_order"`
}

// Course is a named curriculum track assigned per age group
type Course struct {
	ID       int64  `json:"id"`
	Code     string `json:"code"`
	Name     string `json:"name"`
	AgeGroup string `json:"age_group"`
}

// CourseBook is one sequenced book inside a course
type CourseBook struct {
	ID            int64  `json:"id"`
	CourseID      int64  `json:"course_id"`
	LevelID       int64  `json:"level_id"`
	BookID        int64  `json:"book_id"`
	SequenceOrder int    `json:"sequence_order"`
	Book          *Book  `json:"book,omitempty"`
	Level         *Level `json:"level,omitempty"`
}

// LevelBookList is one level's ordered course books
type LevelBookList struct {
	Level Level        `json:"level"`
	Books []CourseBook `json:"books"`
}
