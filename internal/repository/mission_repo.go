package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
)

// MissionRepository handles database operations for mission templates and
// activity logs
type MissionRepository struct {
	db *database.DB
}

// NewMissionRepository creates a new mission repository
func NewMissionRepository(db *database.DB) *MissionRepository {
	return &MissionRepository{db: db}
}

// GetTemplatesByLevel retrieves a level's mission templates in sequence order
func (r *MissionRepository) GetTemplatesByLevel(ctx context.Context, levelID int64) ([]models.MissionTemplate, error) {
	query := `
		SELECT id, level_id, sequence_order, activity_type, book_id, target_count,
		       title, COALESCE(description, '')
		FROM daily_missions
		WHERE level_id = ?
		ORDER BY sequence_order ASC
	`
	rows, err := r.db.Query(ctx, query, levelID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mission templates: %w", err)
	}
	defer rows.Close()

	var templates []models.MissionTemplate
	for rows.Next() {
		var t models.MissionTemplate
		err := rows.Scan(&t.ID, &t.LevelID, &t.SequenceOrder, &t.ActivityType,
			&t.BookID, &t.TargetCount, &t.Title, &t.Description)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission template: %w", err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// GetTemplateByID retrieves one mission template
func (r *MissionRepository) GetTemplateByID(ctx context.Context, missionID int64) (*models.MissionTemplate, error) {
	query := `
		SELECT id, level_id, sequence_order, activity_type, book_id, target_count,
		       title, COALESCE(description, '')
		FROM daily_missions
		WHERE id = ?
	`
	t := &models.MissionTemplate{}
	err := r.db.QueryRow(ctx, query, missionID).Scan(&t.ID, &t.LevelID, &t.SequenceOrder,
		&t.ActivityType, &t.BookID, &t.TargetCount, &t.Title, &t.Description)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get mission template: %w", err)
	}
	return t, nil
}

// GetEngagedBookIDs retrieves the distinct books a child has ever logged
// activity against
func (r *MissionRepository) GetEngagedBookIDs(ctx context.Context, childID int64) ([]int64, error) {
	query := "SELECT DISTINCT book_id FROM mission_logs WHERE child_id = ? AND book_id IS NOT NULL"
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query engaged books: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan engaged book id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// CountLogsByBookIDs retrieves per-book log counts for a child, restricted
// to the given books
func (r *MissionRepository) CountLogsByBookIDs(ctx context.Context, childID int64, bookIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(bookIDs) == 0 {
		return counts, nil
	}
	query := fmt.Sprintf(`
		SELECT book_id, COUNT(*)
		FROM mission_logs
		WHERE child_id = ? AND book_id IN (%s)
		GROUP BY book_id
	`, placeholders(len(bookIDs)))

	args := append([]interface{}{childID}, int64Args(bookIDs)...)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs by book: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan book log count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// CountLogsByMissionIDs retrieves per-template log counts for a child,
// restricted to the given templates
func (r *MissionRepository) CountLogsByMissionIDs(ctx context.Context, childID int64, missionIDs []int64) (map[int64]int, error) {
	counts := make(map[int64]int)
	if len(missionIDs) == 0 {
		return counts, nil
	}
	query := fmt.Sprintf(`
		SELECT mission_id, COUNT(*)
		FROM mission_logs
		WHERE child_id = ? AND mission_id IN (%s)
		GROUP BY mission_id
	`, placeholders(len(missionIDs)))

	args := append([]interface{}{childID}, int64Args(missionIDs)...)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count logs by mission: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id int64
		var count int
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("failed to scan mission log count: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}

// InsertLog appends one activity log inside the caller's transaction and
// returns its ID
func (r *MissionRepository) InsertLog(ctx context.Context, tx database.DBTX, log *models.MissionLog) (int64, error) {
	query := `
		INSERT INTO mission_logs (child_id, user_id, book_id, mission_id, course_id,
		                          activity_type, reaction, is_manual_log, logged_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	id, err := tx.ExecReturningID(ctx, query,
		log.ChildID, log.UserID, log.BookID, log.MissionID, log.CourseID,
		log.ActivityType, log.Reaction, log.IsManualLog, log.LoggedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert mission log: %w", err)
	}
	return id, nil
}

// RecountChildStats recomputes a child's denormalized reading counters from
// the log table inside the caller's transaction
func (r *MissionRepository) RecountChildStats(ctx context.Context, tx database.DBTX, childID int64) error {
	query := `
		UPDATE children SET
			total_books_read = (
				SELECT COUNT(DISTINCT book_id) FROM mission_logs
				WHERE child_id = ? AND activity_type = ? AND book_id IS NOT NULL
			),
			total_word_count = (
				SELECT COALESCE(SUM(b.word_count), 0)
				FROM (SELECT DISTINCT book_id FROM mission_logs
				      WHERE child_id = ? AND activity_type = ? AND book_id IS NOT NULL) ml
				JOIN books b ON b.id = ml.book_id
			)
		WHERE id = ?
	`
	_, err := tx.Exec(ctx, query,
		childID, models.ActivityReading,
		childID, models.ActivityReading,
		childID)
	if err != nil {
		return fmt.Errorf("failed to recount child stats: %w", err)
	}
	return nil
}

// GetLogDates retrieves the distinct days a child logged activity, newest
// first, for streak computation. Takes a DBTX so the caller can read its own
// uncommitted insert.
func (r *MissionRepository) GetLogDates(ctx context.Context, tx database.DBTX, childID int64) ([]time.Time, error) {
	query := "SELECT DISTINCT logged_at FROM mission_logs WHERE child_id = ? ORDER BY logged_at DESC"
	rows, err := tx.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query log dates: %w", err)
	}
	defer rows.Close()

	seen := make(map[string]bool)
	var dates []time.Time
	for rows.Next() {
		var at time.Time
		if err := rows.Scan(&at); err != nil {
			return nil, fmt.Errorf("failed to scan log date: %w", err)
		}
		day := at.Format("2006-01-02")
		if seen[day] {
			continue
		}
		seen[day] = true
		dates = append(dates, at)
	}
	return dates, rows.Err()
}

// UpdateStreaks stores recomputed streak counters inside the caller's
// transaction
func (r *MissionRepository) UpdateStreaks(ctx context.Context, tx database.DBTX, childID int64, current, longest int) error {
	query := "UPDATE children SET current_streak = ?, longest_streak = ? WHERE id = ?"
	if _, err := tx.Exec(ctx, query, current, longest, childID); err != nil {
		return fmt.Errorf("failed to update streaks: %w", err)
	}
	return nil
}

// GetHistory retrieves a page of a child's activity logs, newest first, with
// the book resolved when present
func (r *MissionRepository) GetHistory(ctx context.Context, childID int64, limit, offset int) ([]models.MissionLog, int, error) {
	var total int
	countQuery := "SELECT COUNT(*) FROM mission_logs WHERE child_id = ?"
	if err := r.db.QueryRow(ctx, countQuery, childID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count mission logs: %w", err)
	}

	query := `
		SELECT ml.id, ml.child_id, ml.user_id, ml.book_id, ml.mission_id, ml.course_id,
		       ml.activity_type, ml.reaction, ml.is_manual_log, ml.logged_at,
		       b.id, b.title, b.author, b.ar_level, b.word_count, COALESCE(b.cover_url, '')
		FROM mission_logs ml
		LEFT JOIN books b ON b.id = ml.book_id
		WHERE ml.child_id = ?
		ORDER BY ml.logged_at DESC, ml.id DESC
		LIMIT ? OFFSET ?
	`
	logs, err := r.queryLogs(ctx, query, childID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}

// GetLogsInRange retrieves a child's activity logs within [from, to), oldest
// first, with the book resolved when present
func (r *MissionRepository) GetLogsInRange(ctx context.Context, childID int64, from, to time.Time) ([]models.MissionLog, error) {
	query := `
		SELECT ml.id, ml.child_id, ml.user_id, ml.book_id, ml.mission_id, ml.course_id,
		       ml.activity_type, ml.reaction, ml.is_manual_log, ml.logged_at,
		       b.id, b.title, b.author, b.ar_level, b.word_count, COALESCE(b.cover_url, '')
		FROM mission_logs ml
		LEFT JOIN books b ON b.id = ml.book_id
		WHERE ml.child_id = ? AND ml.logged_at >= ? AND ml.logged_at < ?
		ORDER BY ml.logged_at ASC, ml.id ASC
	`
	return r.queryLogs(ctx, query, childID, from, to)
}

// CountLogs retrieves a child's lifetime log count
func (r *MissionRepository) CountLogs(ctx context.Context, childID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM mission_logs WHERE child_id = ?", childID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count logs: %w", err)
	}
	return count, nil
}

// CountLovedBooks retrieves how many distinct books the child reacted to
// with "love"
func (r *MissionRepository) CountLovedBooks(ctx context.Context, childID int64) (int, error) {
	query := `
		SELECT COUNT(DISTINCT book_id) FROM mission_logs
		WHERE child_id = ? AND reaction = ? AND book_id IS NOT NULL
	`
	var count int
	if err := r.db.QueryRow(ctx, query, childID, models.ReactionLove).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count loved books: %w", err)
	}
	return count, nil
}

// GetFavoriteThemes retrieves the themes the child's logged books carry most
// often
func (r *MissionRepository) GetFavoriteThemes(ctx context.Context, childID int64, limit int) ([]models.Theme, error) {
	query := `
		SELECT t.id, t.code, t.name
		FROM mission_logs ml
		JOIN book_themes bt ON bt.book_id = ml.book_id
		JOIN themes t ON t.id = bt.theme_id
		WHERE ml.child_id = ?
		GROUP BY t.id, t.code, t.name
		ORDER BY COUNT(*) DESC, t.id ASC
		LIMIT ?
	`
	rows, err := r.db.Query(ctx, query, childID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorite themes: %w", err)
	}
	defer rows.Close()

	var themes []models.Theme
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.Code, &theme.Name); err != nil {
			return nil, fmt.Errorf("failed to scan favorite theme: %w", err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

// CountLogsSince retrieves the number of logs a child recorded at or after
// the given time
func (r *MissionRepository) CountLogsSince(ctx context.Context, childID int64, since time.Time) (int, error) {
	query := "SELECT COUNT(*) FROM mission_logs WHERE child_id = ? AND logged_at >= ?"
	var count int
	if err := r.db.QueryRow(ctx, query, childID, since).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count recent logs: %w", err)
	}
	return count, nil
}

func (r *MissionRepository) queryLogs(ctx context.Context, query string, args ...interface{}) ([]models.MissionLog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query mission logs: %w", err)
	}
	defer rows.Close()

	var logs []models.MissionLog
	for rows.Next() {
		var log models.MissionLog
		var bookID *int64
		var title, author, coverURL *string
		var arLevel *float64
		var wordCount *int
		err := rows.Scan(
			&log.ID, &log.ChildID, &log.UserID, &log.BookID, &log.MissionID, &log.CourseID,
			&log.ActivityType, &log.Reaction, &log.IsManualLog, &log.LoggedAt,
			&bookID, &title, &author, &arLevel, &wordCount, &coverURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mission log: %w", err)
		}
		if bookID != nil {
			book := &models.Book{ID: *bookID, ARLevel: arLevel, WordCount: wordCount}
			if title != nil {
				book.Title = *title
			}
			if author != nil {
				book.Author = *author
			}
			if coverURL != nil {
				book.CoverURL = *coverURL
			}
			log.Book = book
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
