package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
)

// LevelRepository handles database operations for levels, courses and
// course sequencing
type LevelRepository struct {
	db *database.DB
}

// NewLevelRepository creates a new level repository
func NewLevelRepository(db *database.DB) *LevelRepository {
	return &LevelRepository{db: db}
}

// GetLevelByID retrieves a level by ID
func (r *LevelRepository) GetLevelByID(ctx context.Context, levelID int64) (*models.Level, error) {
	query := "SELECT id, code, name, min_ar, max_ar, sort_order FROM levels WHERE id = ?"
	level := &models.Level{}
	err := r.db.QueryRow(ctx, query, levelID).Scan(
		&level.ID,
		&level.Code,
		&level.Name,
		&level.MinAR,
		&level.MaxAR,
		&level.SortOrder,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get level: %w", err)
	}
	return level, nil
}

// GetAllLevels retrieves all levels ordered by difficulty
func (r *LevelRepository) GetAllLevels(ctx context.Context) ([]models.Level, error) {
	query := "SELECT id, code, name, min_ar, max_ar, sort_order FROM levels ORDER BY sort_order ASC"
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query levels: %w", err)
	}
	defer rows.Close()

	var levels []models.Level
	for rows.Next() {
		var level models.Level
		if err := rows.Scan(&level.ID, &level.Code, &level.Name, &level.MinAR, &level.MaxAR, &level.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		levels = append(levels, level)
	}
	return levels, rows.Err()
}

// GetCourseByID retrieves a course by ID
func (r *LevelRepository) GetCourseByID(ctx context.Context, courseID int64) (*models.Course, error) {
	query := "SELECT id, code, name, age_group FROM courses WHERE id = ?"
	return r.scanCourse(r.db.QueryRow(ctx, query, courseID))
}

// GetCourseByAgeGroup retrieves the curriculum course assigned to an age group
func (r *LevelRepository) GetCourseByAgeGroup(ctx context.Context, ageGroup string) (*models.Course, error) {
	query := "SELECT id, code, name, age_group FROM courses WHERE age_group = ?"
	return r.scanCourse(r.db.QueryRow(ctx, query, ageGroup))
}

func (r *LevelRepository) scanCourse(row *sql.Row) (*models.Course, error) {
	course := &models.Course{}
	err := row.Scan(&course.ID, &course.Code, &course.Name, &course.AgeGroup)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get course: %w", err)
	}
	return course, nil
}

// GetLevelCourseBooks retrieves the sequenced books of one level, with the
// book and level records resolved
func (r *LevelRepository) GetLevelCourseBooks(ctx context.Context, levelID int64) ([]models.CourseBook, error) {
	query := `
		SELECT cb.id, cb.course_id, cb.level_id, cb.book_id, cb.sequence_order,
		       b.id, b.title, b.author, b.ar_level, b.word_count,
		       COALESCE(b.tip, ''), COALESCE(b.keywords, ''),
		       COALESCE(b.purchase_url, ''), COALESCE(b.cover_url, ''), b.created_at,
		       l.id, l.code, l.name, l.min_ar, l.max_ar, l.sort_order
		FROM course_books cb
		JOIN books b ON b.id = cb.book_id
		JOIN levels l ON l.id = cb.level_id
		WHERE cb.level_id = ?
		ORDER BY cb.sequence_order ASC
	`
	rows, err := r.db.Query(ctx, query, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query course books: %w", err)
	}
	defer rows.Close()

	courseBooks := []models.CourseBook{}
	for rows.Next() {
		var cb models.CourseBook
		var book models.Book
		var level models.Level
		err := rows.Scan(
			&cb.ID, &cb.CourseID, &cb.LevelID, &cb.BookID, &cb.SequenceOrder,
			&book.ID, &book.Title, &book.Author, &book.ARLevel, &book.WordCount,
			&book.Tip, &book.Keywords, &book.PurchaseURL, &book.CoverURL, &book.CreatedAt,
			&level.ID, &level.Code, &level.Name, &level.MinAR, &level.MaxAR, &level.SortOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan course book: %w", err)
		}
		cb.Book = &book
		cb.Level = &level
		courseBooks = append(courseBooks, cb)
	}
	return courseBooks, rows.Err()
}
