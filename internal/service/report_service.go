package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// ReportService builds reading reports and sends the monthly email digest
type ReportService struct {
	childService *ChildService
	childRepo    *repository.ChildRepository
	missionRepo  *repository.MissionRepository
	emailService *EmailService
}

// NewReportService creates a new report service
func NewReportService(childService *ChildService, childRepo *repository.ChildRepository, missionRepo *repository.MissionRepository, emailService *EmailService) *ReportService {
	return &ReportService{
		childService: childService,
		childRepo:    childRepo,
		missionRepo:  missionRepo,
		emailService: emailService,
	}
}

// Monthly builds a child's reading report for one calendar month
func (s *ReportService) Monthly(ctx context.Context, userID, childID int64, year, month int) (*models.MonthlyReport, error) {
	if month < 1 || month > 12 {
		return nil, validation.ValidationError{Field: "month", Message: "month must be between 1 and 12"}
	}
	if year < 2000 || year > 2100 {
		return nil, validation.ValidationError{Field: "year", Message: "year out of range"}
	}

	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	logs, err := s.missionRepo.GetLogsInRange(ctx, childID, from, to)
	if err != nil {
		return nil, err
	}

	report := &models.MonthlyReport{
		Period: models.ReportPeriod{
			Year:      year,
			Month:     month,
			StartDate: from.Format("2006-01-02"),
			EndDate:   to.AddDate(0, 0, -1).Format("2006-01-02"),
		},
		DailyStats: make(map[string]models.DailyStat),
	}

	readBooks := make(map[int64]bool)
	for _, log := range logs {
		report.Summary.TotalMissions++
		switch log.ActivityType {
		case models.ActivityReading:
			report.Summary.ReadingCount++
			if log.BookID != nil && !readBooks[*log.BookID] {
				readBooks[*log.BookID] = true
				report.Summary.UniqueBooksRead++
				if log.Book != nil && log.Book.WordCount != nil {
					report.Summary.TotalWordCount += *log.Book.WordCount
				}
			}
		case models.ActivityVideo:
			report.Summary.VideoCount++
		case models.ActivityFocusedListening, models.ActivityBackgroundListening:
			report.Summary.ListeningCount++
		}

		day := log.LoggedAt.UTC().Format("2006-01-02")
		stat := report.DailyStats[day]
		stat.Count++
		activity := models.DailyActivity{ActivityType: log.ActivityType}
		if log.Book != nil {
			title := log.Book.Title
			activity.BookTitle = &title
		}
		stat.Activities = append(stat.Activities, activity)
		report.DailyStats[day] = stat
	}

	return report, nil
}

// Growth builds a child's all-time growth summary
func (s *ReportService) Growth(ctx context.Context, userID, childID int64) (*models.GrowthSummary, error) {
	child, err := s.childRepo.GetOwnedChild(ctx, childID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return nil, ErrChildNotFound
	}

	detail, err := s.childService.Detail(ctx, child)
	if err != nil {
		return nil, err
	}

	totalMissions, err := s.missionRepo.CountLogs(ctx, childID)
	if err != nil {
		return nil, err
	}
	lovedBooks, err := s.missionRepo.CountLovedBooks(ctx, childID)
	if err != nil {
		return nil, err
	}
	favoriteThemes, err := s.missionRepo.GetFavoriteThemes(ctx, childID, 3)
	if err != nil {
		return nil, err
	}
	if favoriteThemes == nil {
		favoriteThemes = []models.Theme{}
	}

	return &models.GrowthSummary{
		Child:           *detail,
		TotalBooksRead:  child.TotalBooksRead,
		TotalWordCount:  child.TotalWordCount,
		CurrentStreak:   child.CurrentStreak,
		LongestStreak:   child.LongestStreak,
		TotalMissions:   totalMissions,
		FavoriteThemes:  favoriteThemes,
		LovedBooksCount: lovedBooks,
	}, nil
}

// EmailMonthly sends the monthly report digest to the parent's address
func (s *ReportService) EmailMonthly(ctx context.Context, user *models.User, childID int64, year, month int) error {
	report, err := s.Monthly(ctx, user.ID, childID, year, month)
	if err != nil {
		return err
	}
	child, err := s.childRepo.GetOwnedChild(ctx, childID, user.ID)
	if err != nil {
		return fmt.Errorf("failed to get child: %w", err)
	}
	if child == nil {
		return ErrChildNotFound
	}
	return s.emailService.SendMonthlyReportEmail(ctx, user.Email, user.Name, child.Nickname, report)
}
