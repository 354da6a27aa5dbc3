package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
)

// OnboardingRepository handles database operations for the onboarding survey
type OnboardingRepository struct {
	db *database.DB
}

// NewOnboardingRepository creates a new onboarding repository
func NewOnboardingRepository(db *database.DB) *OnboardingRepository {
	return &OnboardingRepository{db: db}
}

// GetQuestionsByAgeGroup retrieves an age group's survey questions with
// their options, both in display order
func (r *OnboardingRepository) GetQuestionsByAgeGroup(ctx context.Context, ageGroup string) ([]models.OnboardingQuestion, error) {
	query := `
		SELECT id, age_group, question_order, question_text
		FROM onboarding_questions
		WHERE age_group = ?
		ORDER BY question_order ASC
	`
	rows, err := r.db.Query(ctx, query, ageGroup)
	if err != nil {
		return nil, fmt.Errorf("failed to query onboarding questions: %w", err)
	}
	defer rows.Close()

	var questions []models.OnboardingQuestion
	for rows.Next() {
		var q models.OnboardingQuestion
		if err := rows.Scan(&q.ID, &q.AgeGroup, &q.QuestionOrder, &q.QuestionText); err != nil {
			return nil, fmt.Errorf("failed to scan onboarding question: %w", err)
		}
		q.Options = []models.QuestionOption{}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return questions, nil
	}

	ids := make([]int64, len(questions))
	index := make(map[int64]int, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
		index[q.ID] = i
	}

	optQuery := fmt.Sprintf(`
		SELECT id, question_id, option_order, option_text, score
		FROM question_options
		WHERE question_id IN (%s)
		ORDER BY question_id ASC, option_order ASC
	`, placeholders(len(ids)))

	optRows, err := r.db.Query(ctx, optQuery, int64Args(ids)...)
	if err != nil {
		return nil, fmt.Errorf("failed to query question options: %w", err)
	}
	defer optRows.Close()

	for optRows.Next() {
		var opt models.QuestionOption
		if err := optRows.Scan(&opt.ID, &opt.QuestionID, &opt.OptionOrder, &opt.OptionText, &opt.Score); err != nil {
			return nil, fmt.Errorf("failed to scan question option: %w", err)
		}
		if i, ok := index[opt.QuestionID]; ok {
			questions[i].Options = append(questions[i].Options, opt)
		}
	}
	return questions, optRows.Err()
}

// GetOptionByID retrieves one answer option
func (r *OnboardingRepository) GetOptionByID(ctx context.Context, optionID int64) (*models.QuestionOption, error) {
	query := "SELECT id, question_id, option_order, option_text, score FROM question_options WHERE id = ?"
	opt := &models.QuestionOption{}
	err := r.db.QueryRow(ctx, query, optionID).Scan(&opt.ID, &opt.QuestionID, &opt.OptionOrder, &opt.OptionText, &opt.Score)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get question option: %w", err)
	}
	return opt, nil
}

// SaveResponse stores a child's answer, replacing any previous answer to the
// same question
func (r *OnboardingRepository) SaveResponse(ctx context.Context, childID, questionID, optionID int64) error {
	// Delete-then-insert keeps the upsert portable across dialects.
	_, err := r.db.Exec(ctx,
		"DELETE FROM onboarding_responses WHERE child_id = ? AND question_id = ?",
		childID, questionID)
	if err != nil {
		return fmt.Errorf("failed to clear onboarding response: %w", err)
	}
	_, err = r.db.Exec(ctx,
		"INSERT INTO onboarding_responses (child_id, question_id, option_id, responded_at) VALUES (?, ?, ?, ?)",
		childID, questionID, optionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save onboarding response: %w", err)
	}
	return nil
}

// GetResponseScores retrieves the difficulty scores of a child's saved
// answers
func (r *OnboardingRepository) GetResponseScores(ctx context.Context, childID int64) ([]int, error) {
	query := `
		SELECT qo.score
		FROM onboarding_responses resp
		JOIN question_options qo ON qo.id = resp.option_id
		WHERE resp.child_id = ?
	`
	rows, err := r.db.Query(ctx, query, childID)
	if err != nil {
		return nil, fmt.Errorf("failed to query onboarding scores: %w", err)
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var score int
		if err := rows.Scan(&score); err != nil {
			return nil, fmt.Errorf("failed to scan onboarding score: %w", err)
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}
