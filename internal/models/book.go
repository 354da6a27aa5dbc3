package models

import "time"

// Book represents a catalog entry. Managed by a separate admin surface;
// read-only from this backend's perspective.
type Book struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Author      string   `json:"author"`
	ARLevel     *float64 `json:"ar_level"`
	WordCount   *int     `json:"word_count"`
	Tip         string   `json:"tip,omitempty"`
	Keywords    string   `json:"keywords,omitempty"`
	PurchaseURL string   `json:"purchase_url,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BookDetail combines a book with its theme and mood tags
type BookDetail struct {
	Book
	Themes []Theme `json:"themes"`
	Moods  []Mood  `json:"moods"`
}

// Theme is a topical tag used for interests and catalog filtering
type Theme struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// Mood is an atmosphere tag on a book
type Mood struct {
	ID   int64  `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

// BookSearchFilter narrows a catalog search
type BookSearchFilter struct {
	MinAR    *float64
	MaxAR    *float64
	ThemeIDs []int64
	MoodIDs  []int64
	Limit    int
	Offset   int
}
