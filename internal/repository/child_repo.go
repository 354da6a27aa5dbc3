package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
)

// ChildRepository handles database operations for child profiles
type ChildRepository struct {
	db *database.DB
}

// NewChildRepository creates a new child repository
func NewChildRepository(db *database.DB) *ChildRepository {
	return &ChildRepository{db: db}
}

const childColumns = `
	id, user_id, nickname, birth_months, gender, current_level_id,
	current_course_id, total_books_read, total_word_count, current_streak,
	longest_streak, created_at, updated_at
`

// CreateChild creates a new child profile
func (r *ChildRepository) CreateChild(ctx context.Context, userID int64, nickname string, birthMonths int, gender *string) (*models.Child, error) {
	query := `
		INSERT INTO children (user_id, nickname, birth_months, gender)
		VALUES (?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, userID, nickname, birthMonths, gender)
	if err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}
	return r.GetChildByID(ctx, id)
}

// GetChildByID retrieves a child by ID
func (r *ChildRepository) GetChildByID(ctx context.Context, childID int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ?"
	return r.scanChild(r.db.QueryRow(ctx, query, childID))
}

// GetOwnedChild retrieves a child only when it belongs to the given user
func (r *ChildRepository) GetOwnedChild(ctx context.Context, childID, userID int64) (*models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE id = ? AND user_id = ?"
	return r.scanChild(r.db.QueryRow(ctx, query, childID, userID))
}

// GetUserChildren retrieves all children belonging to a user, newest first
func (r *ChildRepository) GetUserChildren(ctx context.Context, userID int64) ([]models.Child, error) {
	query := "SELECT " + childColumns + " FROM children WHERE user_id = ? ORDER BY created_at DESC"
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query children: %w", err)
	}
	defer rows.Close()

	var children []models.Child
	for rows.Next() {
		child, err := r.scanChildRow(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, *child)
	}
	return children, rows.Err()
}

// UpdateChild updates a child's profile fields
func (r *ChildRepository) UpdateChild(ctx context.Context, childID int64, nickname string, birthMonths int, gender *string) error {
	query := `
		UPDATE children
		SET nickname = ?, birth_months = ?, gender = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(ctx, query, nickname, birthMonths, gender, childID); err != nil {
		return fmt.Errorf("failed to update child: %w", err)
	}
	return nil
}

// AssignLevelAndCourse sets the child's current level and course after onboarding
func (r *ChildRepository) AssignLevelAndCourse(ctx context.Context, childID int64, levelID, courseID *int64) error {
	query := `
		UPDATE children
		SET current_level_id = ?, current_course_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`
	if _, err := r.db.Exec(ctx, query, levelID, courseID, childID); err != nil {
		return fmt.Errorf("failed to assign level: %w", err)
	}
	return nil
}

// ReplaceInterests replaces the child's interest themes with the given set
func (r *ChildRepository) ReplaceInterests(ctx context.Context, childID int64, themeIDs []int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(ctx, "DELETE FROM child_interests WHERE child_id = ?", childID); err != nil {
		return fmt.Errorf("failed to clear interests: %w", err)
	}
	for _, themeID := range themeIDs {
		query := "INSERT INTO child_interests (child_id, theme_id) VALUES (?, ?)"
		if _, err := tx.Exec(ctx, query, childID, themeID); err != nil {
			return fmt.Errorf("failed to insert interest: %w", err)
		}
	}

	return tx.Commit()
}

// GetInterests retrieves the child's interest themes
func (r *ChildRepository) GetInterests(ctx context.Context, childID int64) ([]models.Theme, error) {
	query := `
		SELECT t.id, t.code, t.name
		FROM child_interests ci
		JOIN themes t ON t.id = ci.theme_id
		WHERE ci.child_id = ?
		ORDER BY t.id ASC
	`
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interests: %w", err)
	}
	defer rows.Close()

	var themes []models.Theme
	for rows.Next() {
		var theme models.Theme
		if err := rows.Scan(&theme.ID, &theme.Code, &theme.Name); err != nil {
			return nil, fmt.Errorf("failed to scan theme: %w", err)
		}
		themes = append(themes, theme)
	}
	return themes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func (r *ChildRepository) scanChild(row *sql.Row) (*models.Child, error) {
	child, err := r.scanChildRow(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	return child, nil
}

func (r *ChildRepository) scanChildRow(row rowScanner) (*models.Child, error) {
	child := &models.Child{}
	err := row.Scan(
		&child.ID,
		&child.UserID,
		&child.Nickname,
		&child.BirthMonths,
		&child.Gender,
		&child.CurrentLevelID,
		&child.CurrentCourseID,
		&child.TotalBooksRead,
		&child.TotalWordCount,
		&child.CurrentStreak,
		&child.LongestStreak,
		&child.CreatedAt,
		&child.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return child, nil
}
