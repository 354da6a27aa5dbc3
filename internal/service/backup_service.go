package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/jiaebaek/CurriMap/internal/database"
)

// BackupData is the complete portable backup of user-generated state.
// Catalog and curriculum tables ship with migrations and are not included.
type BackupData struct {
	Version    string               `json:"version"`
	ExportedAt time.Time            `json:"exported_at"`
	Users      []UserBackup         `json:"users"`
	Children   []ChildBackup        `json:"children"`
	Interests  []InterestBackup     `json:"interests"`
	Logs       []MissionLogBackup   `json:"mission_logs"`
	Responses  []OnboardingBackup   `json:"onboarding_responses"`
}

// UserBackup is a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ChildBackup is a child record for backup
type ChildBackup struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	Nickname        string    `json:"nickname"`
	BirthMonths     int       `json:"birth_months"`
	Gender          *string   `json:"gender"`
	CurrentLevelID  *int64    `json:"current_level_id"`
	CurrentCourseID *int64    `json:"current_course_id"`
	TotalBooksRead  int       `json:"total_books_read"`
	TotalWordCount  int       `json:"total_word_count"`
	CurrentStreak   int       `json:"current_streak"`
	LongestStreak   int       `json:"longest_streak"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// InterestBackup is one child-theme link for backup
type InterestBackup struct {
	ChildID int64 `json:"child_id"`
	ThemeID int64 `json:"theme_id"`
}

// MissionLogBackup is one activity log for backup
type MissionLogBackup struct {
	ID           int64     `json:"id"`
	ChildID      int64     `json:"child_id"`
	UserID       int64     `json:"user_id"`
	BookID       *int64    `json:"book_id"`
	MissionID    *int64    `json:"mission_id"`
	CourseID     *int64    `json:"course_id"`
	ActivityType string    `json:"activity_type"`
	Reaction     *string   `json:"reaction"`
	IsManualLog  bool      `json:"is_manual_log"`
	LoggedAt     time.Time `json:"logged_at"`
}

// OnboardingBackup is one survey answer for backup
type OnboardingBackup struct {
	ChildID     int64     `json:"child_id"`
	QuestionID  int64     `json:"question_id"`
	OptionID    int64     `json:"option_id"`
	RespondedAt time.Time `json:"responded_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of user-generated state to a file
func (s *BackupService) Export(ctx context.Context, outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(ctx, backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportChildren(ctx, backup); err != nil {
		return fmt.Errorf("failed to export children: %w", err)
	}
	if err := s.exportInterests(ctx, backup); err != nil {
		return fmt.Errorf("failed to export interests: %w", err)
	}
	if err := s.exportLogs(ctx, backup); err != nil {
		return fmt.Errorf("failed to export mission logs: %w", err)
	}
	if err := s.exportResponses(ctx, backup); err != nil {
		return fmt.Errorf("failed to export onboarding responses: %w", err)
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d children, %d interests, %d logs, %d responses",
		len(backup.Users), len(backup.Children), len(backup.Interests),
		len(backup.Logs), len(backup.Responses))
	return nil
}

// Import restores user-generated state from a backup file
func (s *BackupService) Import(ctx context.Context, inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(ctx, file)
}

// ImportFromReader restores user-generated state from a backup reader
func (s *BackupService) ImportFromReader(ctx context.Context, reader io.Reader) error {
	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Dependency order: children reference users, everything else
	// references children.
	if err := s.importUsers(ctx, backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importChildren(ctx, backup.Children); err != nil {
		return fmt.Errorf("failed to import children: %w", err)
	}
	if err := s.importInterests(ctx, backup.Interests); err != nil {
		return fmt.Errorf("failed to import interests: %w", err)
	}
	if err := s.importLogs(ctx, backup.Logs); err != nil {
		return fmt.Errorf("failed to import mission logs: %w", err)
	}
	if err := s.importResponses(ctx, backup.Responses); err != nil {
		return fmt.Errorf("failed to import onboarding responses: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(ctx context.Context, backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportChildren(ctx context.Context, backup *BackupData) error {
	query := `SELECT id, user_id, nickname, birth_months, gender, current_level_id, current_course_id,
		total_books_read, total_word_count, current_streak, longest_streak, created_at, updated_at
		FROM children ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c ChildBackup
		if err := rows.Scan(&c.ID, &c.UserID, &c.Nickname, &c.BirthMonths, &c.Gender,
			&c.CurrentLevelID, &c.CurrentCourseID, &c.TotalBooksRead, &c.TotalWordCount,
			&c.CurrentStreak, &c.LongestStreak, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		backup.Children = append(backup.Children, c)
	}
	return rows.Err()
}

func (s *BackupService) exportInterests(ctx context.Context, backup *BackupData) error {
	rows, err := s.db.Query(ctx, "SELECT child_id, theme_id FROM child_interests ORDER BY child_id, theme_id")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var i InterestBackup
		if err := rows.Scan(&i.ChildID, &i.ThemeID); err != nil {
			return err
		}
		backup.Interests = append(backup.Interests, i)
	}
	return rows.Err()
}

func (s *BackupService) exportLogs(ctx context.Context, backup *BackupData) error {
	query := `SELECT id, child_id, user_id, book_id, mission_id, course_id, activity_type,
		reaction, is_manual_log, logged_at FROM mission_logs ORDER BY id`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l MissionLogBackup
		if err := rows.Scan(&l.ID, &l.ChildID, &l.UserID, &l.BookID, &l.MissionID, &l.CourseID,
			&l.ActivityType, &l.Reaction, &l.IsManualLog, &l.LoggedAt); err != nil {
			return err
		}
		backup.Logs = append(backup.Logs, l)
	}
	return rows.Err()
}

func (s *BackupService) exportResponses(ctx context.Context, backup *BackupData) error {
	query := "SELECT child_id, question_id, option_id, responded_at FROM onboarding_responses ORDER BY child_id, question_id"
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var r OnboardingBackup
		if err := rows.Scan(&r.ChildID, &r.QuestionID, &r.OptionID, &r.RespondedAt); err != nil {
			return err
		}
		backup.Responses = append(backup.Responses, r)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(ctx context.Context, users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name,
			nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importChildren(ctx context.Context, children []ChildBackup) error {
	log.Printf("Importing %d children...", len(children))
	for _, c := range children {
		query := `INSERT INTO children (id, user_id, nickname, birth_months, gender, current_level_id,
			current_course_id, total_books_read, total_word_count, current_streak, longest_streak,
			created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(ctx, query, c.ID, c.UserID, c.Nickname, c.BirthMonths, c.Gender,
			c.CurrentLevelID, c.CurrentCourseID, c.TotalBooksRead, c.TotalWordCount,
			c.CurrentStreak, c.LongestStreak, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import child %d: %w", c.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importInterests(ctx context.Context, interests []InterestBackup) error {
	log.Printf("Importing %d interests...", len(interests))
	for _, i := range interests {
		_, err := s.db.Exec(ctx, "INSERT INTO child_interests (child_id, theme_id) VALUES (?, ?)", i.ChildID, i.ThemeID)
		if err != nil {
			return fmt.Errorf("failed to import interest for child %d: %w", i.ChildID, err)
		}
	}
	return nil
}

func (s *BackupService) importLogs(ctx context.Context, logs []MissionLogBackup) error {
	log.Printf("Importing %d mission logs...", len(logs))
	for _, l := range logs {
		query := `INSERT INTO mission_logs (id, child_id, user_id, book_id, mission_id, course_id,
			activity_type, reaction, is_manual_log, logged_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
		_, err := s.db.Exec(ctx, query, l.ID, l.ChildID, l.UserID, l.BookID, l.MissionID, l.CourseID,
			l.ActivityType, l.Reaction, l.IsManualLog, l.LoggedAt)
		if err != nil {
			return fmt.Errorf("failed to import mission log %d: %w", l.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importResponses(ctx context.Context, responses []OnboardingBackup) error {
	log.Printf("Importing %d onboarding responses...", len(responses))
	for _, r := range responses {
		query := "INSERT INTO onboarding_responses (child_id, question_id, option_id, responded_at) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(ctx, query, r.ChildID, r.QuestionID, r.OptionID, r.RespondedAt)
		if err != nil {
			return fmt.Errorf("failed to import response for child %d: %w", r.ChildID, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
