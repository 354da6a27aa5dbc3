package service

import (
	"context"
	"errors"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/jiaebaek/CurriMap/internal/config"
	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/models"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/validation"
)

// testEnv wires the full service stack against a fresh SQLite database
// with migrations and seed data applied.
type testEnv struct {
	db *database.DB

	users      *repository.UserRepository
	children   *repository.ChildRepository
	levels     *repository.LevelRepository
	books      *repository.BookRepository
	missions   *repository.MissionRepository
	onboarding *repository.OnboardingRepository

	childService      *ChildService
	missionService    *MissionService
	recommendService  *RecommendService
	roadmapService    *RoadmapService
	onboardingService *OnboardingService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "test.db"),
		QueryTimeout: 5 * time.Second,
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(context.Background(), "../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	env := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		children:   repository.NewChildRepository(db),
		levels:     repository.NewLevelRepository(db),
		books:      repository.NewBookRepository(db),
		missions:   repository.NewMissionRepository(db),
		onboarding: repository.NewOnboardingRepository(db),
	}

	env.childService = NewChildService(env.children, env.levels)
	env.missionService = NewMissionService(db, env.children, env.missions)
	env.recommendService = NewRecommendService(env.children, env.books, env.levels, env.missions, rand.New(rand.NewSource(1)))
	env.roadmapService = NewRoadmapService(env.childService, env.children, env.levels, env.missions)
	env.onboardingService = NewOnboardingService(env.children, env.levels, env.onboarding)

	return env
}

func (env *testEnv) createUser(t *testing.T, email string) *models.User {
	t.Helper()
	user, err := env.users.CreateUser(context.Background(), email, "hash", "Test Parent")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return user
}

// createChild makes a child assigned to the level named by code. An empty
// code leaves the child without a level.
func (env *testEnv) createChild(t *testing.T, userID int64, birthMonths int, levelCode string) *models.Child {
	t.Helper()
	ctx := context.Background()

	child, err := env.children.CreateChild(ctx, userID, "Minji", birthMonths, nil)
	if err != nil {
		t.Fatalf("Failed to create child: %v", err)
	}

	if levelCode != "" {
		level := env.levelByCode(t, levelCode)
		course, err := env.levels.GetCourseByAgeGroup(ctx, models.AgeGroupFor(birthMonths))
		if err != nil || course == nil {
			t.Fatalf("Failed to get course: %v", err)
		}
		if err := env.children.AssignLevelAndCourse(ctx, child.ID, &level.ID, &course.ID); err != nil {
			t.Fatalf("Failed to assign level: %v", err)
		}
		child, err = env.children.GetChildByID(ctx, child.ID)
		if err != nil {
			t.Fatalf("Failed to reload child: %v", err)
		}
	}
	return child
}

func (env *testEnv) levelByCode(t *testing.T, code string) *models.Level {
	t.Helper()
	levels, err := env.levels.GetAllLevels(context.Background())
	if err != nil {
		t.Fatalf("Failed to list levels: %v", err)
	}
	for i := range levels {
		if levels[i].Code == code {
			return &levels[i]
		}
	}
	t.Fatalf("Level %q not seeded", code)
	return nil
}

func (env *testEnv) themeByCode(t *testing.T, code string) *models.Theme {
	t.Helper()
	themes, err := env.books.ListThemes(context.Background())
	if err != nil {
		t.Fatalf("Failed to list themes: %v", err)
	}
	for i := range themes {
		if themes[i].Code == code {
			return &themes[i]
		}
	}
	t.Fatalf("Theme %q not seeded", code)
	return nil
}

func (env *testEnv) insertBook(t *testing.T, title string, arLevel float64, wordCount int, themeCodes ...string) int64 {
	t.Helper()
	ctx := context.Background()

	id, err := env.db.ExecReturningID(ctx,
		"INSERT INTO books (title, author, ar_level, word_count) VALUES (?, ?, ?, ?)",
		title, "Test Author", arLevel, wordCount)
	if err != nil {
		t.Fatalf("Failed to insert book: %v", err)
	}
	for _, code := range themeCodes {
		theme := env.themeByCode(t, code)
		if _, err := env.db.Exec(ctx,
			"INSERT INTO book_themes (book_id, theme_id) VALUES (?, ?)", id, theme.ID); err != nil {
			t.Fatalf("Failed to tag book: %v", err)
		}
	}
	return id
}

func (env *testEnv) insertTemplate(t *testing.T, levelID int64, seq int, activityType string, bookID *int64, target int, title string) int64 {
	t.Helper()
	id, err := env.db.ExecReturningID(context.Background(),
		"INSERT INTO daily_missions (level_id, sequence_order, activity_type, book_id, target_count, title) VALUES (?, ?, ?, ?, ?, ?)",
		levelID, seq, activityType, bookID, target, title)
	if err != nil {
		t.Fatalf("Failed to insert mission template: %v", err)
	}
	return id
}

func TestDailyBookRecommendation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling") // band 1.0-2.5, widened 0.5-3.0

	animals := env.themeByCode(t, "animals")
	if err := env.children.ReplaceInterests(ctx, child.ID, []int64{animals.ID}); err != nil {
		t.Fatalf("Failed to set interests: %v", err)
	}

	matched := env.insertBook(t, "Interest Match", 1.5, 800, "animals")
	fallback := env.insertBook(t, "Level Only", 1.5, 600, "adventure")
	env.insertBook(t, "Too Hard", 4.8, 9000, "animals")

	// First pick prefers the interest match.
	rec, err := env.recommendService.DailyBook(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("DailyBook() error = %v", err)
	}
	if rec.Book.ID != matched {
		t.Errorf("pick = %d, want interest match %d", rec.Book.ID, matched)
	}
	if rec.Reason != ReasonInterestsAndLevel {
		t.Errorf("reason = %q, want %q", rec.Reason, ReasonInterestsAndLevel)
	}

	// Engaging the matched book removes it from the pool; the next pick
	// falls back to the level-only pass.
	if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
		ChildID:      child.ID,
		BookID:       &matched,
		ActivityType: models.ActivityReading,
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	rec, err = env.recommendService.DailyBook(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("DailyBook() second pick error = %v", err)
	}
	if rec.Book.ID != fallback {
		t.Errorf("second pick = %d, want fallback %d", rec.Book.ID, fallback)
	}
	if rec.Reason != ReasonLevelOnly {
		t.Errorf("second reason = %q, want %q", rec.Reason, ReasonLevelOnly)
	}

	// With every band book engaged there is nothing left to recommend.
	if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
		ChildID:      child.ID,
		BookID:       &fallback,
		ActivityType: models.ActivityReading,
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	if _, err := env.recommendService.DailyBook(ctx, child.ID, user.ID); !errors.Is(err, ErrNoRecommendation) {
		t.Errorf("DailyBook() with empty pool error = %v, want ErrNoRecommendation", err)
	}
}

func TestDailyBookOwnership(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	owner := env.createUser(t, "owner@example.com")
	other := env.createUser(t, "other@example.com")
	child := env.createChild(t, owner.ID, 96, "sapling")

	if _, err := env.recommendService.DailyBook(ctx, child.ID, other.ID); !errors.Is(err, ErrChildNotFound) {
		t.Errorf("DailyBook() for foreign child error = %v, want ErrChildNotFound", err)
	}
}

func TestRoadmapProgress(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")
	level := env.levelByCode(t, "sapling")

	storyBook := env.insertBook(t, "Story Book", 1.5, 700)
	readTmpl := env.insertTemplate(t, level.ID, 1, models.ActivityReading, &storyBook, 3, "Read the story")
	videoTmpl := env.insertTemplate(t, level.ID, 2, models.ActivityVideo, nil, 1, "Watch a clip")
	env.insertTemplate(t, level.ID, 3, models.ActivityFocusedListening, nil, 2, "Listen along")

	// Two readings of the linked book and one completed video.
	for i := 0; i < 2; i++ {
		if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			MissionID:    &readTmpl,
			ActivityType: models.ActivityReading,
		}); err != nil {
			t.Fatalf("Complete() reading error = %v", err)
		}
	}
	if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
		ChildID:      child.ID,
		MissionID:    &videoTmpl,
		ActivityType: models.ActivityVideo,
	}); err != nil {
		t.Fatalf("Complete() video error = %v", err)
	}

	progress, err := env.roadmapService.Progress(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}

	if len(progress.Missions) != 3 {
		t.Fatalf("missions = %d, want 3", len(progress.Missions))
	}

	expected := []struct {
		count   int
		percent int
		status  string
	}{
		{2, 67, StatusCurrent},
		{1, 100, StatusPast},
		{0, 0, StatusCurrent},
	}
	for i, want := range expected {
		got := progress.Missions[i]
		if got.CurrentCount != want.count {
			t.Errorf("mission %d count = %d, want %d", i, got.CurrentCount, want.count)
		}
		if got.Percent != want.percent {
			t.Errorf("mission %d percent = %d, want %d", i, got.Percent, want.percent)
		}
		if got.Status != want.status {
			t.Errorf("mission %d status = %q, want %q", i, got.Status, want.status)
		}
	}

	if progress.OverallPercent != 56 {
		t.Errorf("overall = %d, want 56", progress.OverallPercent)
	}

	// Progress is a pure read; asking again changes nothing.
	again, err := env.roadmapService.Progress(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("Progress() second read error = %v", err)
	}
	if again.OverallPercent != progress.OverallPercent {
		t.Errorf("second read overall = %d, want %d", again.OverallPercent, progress.OverallPercent)
	}
}

func TestRoadmapProgressCapsAtHundred(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")
	level := env.levelByCode(t, "sapling")

	videoTmpl := env.insertTemplate(t, level.ID, 1, models.ActivityVideo, nil, 2, "Watch a clip")

	for i := 0; i < 5; i++ {
		if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			MissionID:    &videoTmpl,
			ActivityType: models.ActivityVideo,
		}); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
	}

	progress, err := env.roadmapService.Progress(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if got := progress.Missions[0].Percent; got != 100 {
		t.Errorf("percent = %d, want clamp at 100", got)
	}
	if got := progress.Missions[0].CurrentCount; got != 5 {
		t.Errorf("count = %d, want raw count 5", got)
	}
}

func TestRoadmapProgressNoLevel(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "")

	_, err := env.roadmapService.Progress(context.Background(), child.ID, user.ID)
	if !errors.Is(err, ErrLevelNotAssigned) {
		t.Errorf("Progress() without level error = %v, want ErrLevelNotAssigned", err)
	}
}

func TestRoadmapProgressNoTemplates(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "branch")

	// The assigned level has no mission templates at all.
	progress, err := env.roadmapService.Progress(context.Background(), child.ID, user.ID)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if len(progress.Missions) != 0 {
		t.Errorf("missions = %d, want 0", len(progress.Missions))
	}
	if progress.OverallPercent != 0 {
		t.Errorf("overall = %d, want 0", progress.OverallPercent)
	}
}

func TestRoadmapLevelBooks(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")
	level := env.levelByCode(t, "sapling")

	course, err := env.levels.GetCourseByAgeGroup(ctx, models.AgeGroupFor(96))
	if err != nil || course == nil {
		t.Fatalf("Failed to get course: %v", err)
	}

	first := env.insertBook(t, "Opening Story", 1.2, 500)
	second := env.insertBook(t, "Next Story", 1.8, 700)
	for i, bookID := range []int64{second, first} {
		if _, err := env.db.Exec(ctx,
			"INSERT INTO course_books (course_id, level_id, book_id, sequence_order) VALUES (?, ?, ?, ?)",
			course.ID, level.ID, bookID, 2-i); err != nil {
			t.Fatalf("Failed to insert course book: %v", err)
		}
	}

	list, err := env.roadmapService.LevelBooks(ctx, child.ID, user.ID, level.ID)
	if err != nil {
		t.Fatalf("LevelBooks() error = %v", err)
	}
	if list.Level.ID != level.ID {
		t.Errorf("level = %d, want %d", list.Level.ID, level.ID)
	}
	if len(list.Books) != 2 {
		t.Fatalf("books = %d, want 2", len(list.Books))
	}
	if list.Books[0].BookID != first || list.Books[1].BookID != second {
		t.Errorf("order = [%d %d], want [%d %d]",
			list.Books[0].BookID, list.Books[1].BookID, first, second)
	}
	if list.Books[0].Book == nil || list.Books[0].Book.Title != "Opening Story" {
		t.Errorf("book record not resolved for first entry")
	}

	t.Run("foreign child", func(t *testing.T) {
		other := env.createUser(t, "other@example.com")
		_, err := env.roadmapService.LevelBooks(ctx, child.ID, other.ID, level.ID)
		if !errors.Is(err, ErrChildNotFound) {
			t.Errorf("LevelBooks() for foreign user error = %v, want ErrChildNotFound", err)
		}
	})

	t.Run("unknown level", func(t *testing.T) {
		_, err := env.roadmapService.LevelBooks(ctx, child.ID, user.ID, 9999)
		if !errors.Is(err, ErrLevelNotFound) {
			t.Errorf("LevelBooks() for unknown level error = %v, want ErrLevelNotFound", err)
		}
	})

	t.Run("level without books", func(t *testing.T) {
		empty := env.levelByCode(t, "canopy")
		list, err := env.roadmapService.LevelBooks(ctx, child.ID, user.ID, empty.ID)
		if err != nil {
			t.Fatalf("LevelBooks() error = %v", err)
		}
		if list.Books == nil {
			t.Fatalf("books slice is nil, want empty")
		}
		if len(list.Books) != 0 {
			t.Errorf("books = %d, want 0", len(list.Books))
		}
	})
}

func TestCompleteMissionValidation(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")

	t.Run("reading requires a book", func(t *testing.T) {
		_, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			ActivityType: models.ActivityReading,
		})
		var vErr validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Fatalf("Complete() error = %v, want validation error", err)
		}
		if vErr.Field != "book_id" {
			t.Errorf("field = %q, want book_id", vErr.Field)
		}
	})

	t.Run("unknown activity type", func(t *testing.T) {
		_, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			ActivityType: "napping",
		})
		var vErr validation.ValidationError
		if !errors.As(err, &vErr) {
			t.Errorf("Complete() error = %v, want validation error", err)
		}
	})

	t.Run("unknown template", func(t *testing.T) {
		missing := int64(9999)
		_, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			MissionID:    &missing,
			ActivityType: models.ActivityVideo,
		})
		if !errors.Is(err, ErrMissionNotFound) {
			t.Errorf("Complete() error = %v, want ErrMissionNotFound", err)
		}
	})

	t.Run("foreign child", func(t *testing.T) {
		other := env.createUser(t, "other@example.com")
		_, err := env.missionService.Complete(ctx, other.ID, CompleteMissionInput{
			ChildID:      child.ID,
			ActivityType: models.ActivityVideo,
		})
		if !errors.Is(err, ErrChildNotFound) {
			t.Errorf("Complete() error = %v, want ErrChildNotFound", err)
		}
	})

	// None of the rejected attempts may leave a log behind.
	var count int
	if err := env.db.QueryRow(ctx, "SELECT COUNT(*) FROM mission_logs").Scan(&count); err != nil {
		t.Fatalf("Failed to count logs: %v", err)
	}
	if count != 0 {
		t.Errorf("mission_logs rows = %d, want 0 after rejected attempts", count)
	}
}

func TestCompleteMissionUpdatesStats(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")

	bookID := env.insertBook(t, "Counted Once", 1.5, 750)

	// The same book read twice counts once toward books and words.
	for i := 0; i < 2; i++ {
		reaction := models.ReactionLove
		if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
			ChildID:      child.ID,
			BookID:       &bookID,
			ActivityType: models.ActivityReading,
			Reaction:     &reaction,
		}); err != nil {
			t.Fatalf("Complete() error = %v", err)
		}
	}

	stats, err := env.missionService.Stats(ctx, user.ID, child.ID)
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalBooksRead != 1 {
		t.Errorf("TotalBooksRead = %d, want 1", stats.TotalBooksRead)
	}
	if stats.TotalWordCount != 750 {
		t.Errorf("TotalWordCount = %d, want 750", stats.TotalWordCount)
	}
	if stats.CurrentStreak != 1 {
		t.Errorf("CurrentStreak = %d, want 1", stats.CurrentStreak)
	}
	if stats.LongestStreak != 1 {
		t.Errorf("LongestStreak = %d, want 1", stats.LongestStreak)
	}
	if stats.MissionsThisMonth != 2 {
		t.Errorf("MissionsThisMonth = %d, want 2", stats.MissionsThisMonth)
	}
}

func TestTodayMissions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 96, "sapling")
	level := env.levelByCode(t, "sapling")

	storyBook := env.insertBook(t, "Story Book", 1.5, 700)
	env.insertTemplate(t, level.ID, 1, models.ActivityReading, &storyBook, 2, "Read the story")
	videoTmpl := env.insertTemplate(t, level.ID, 2, models.ActivityVideo, nil, 1, "Watch a clip")

	if _, err := env.missionService.Complete(ctx, user.ID, CompleteMissionInput{
		ChildID:      child.ID,
		MissionID:    &videoTmpl,
		ActivityType: models.ActivityVideo,
	}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}

	missions, err := env.missionService.Today(ctx, user.ID, child.ID)
	if err != nil {
		t.Fatalf("Today() error = %v", err)
	}
	if len(missions) != 2 {
		t.Fatalf("missions = %d, want 2", len(missions))
	}

	reading := missions[0]
	if reading.Key == "" || reading.Key[0] != 'b' {
		t.Errorf("book mission key = %q, want b- prefix", reading.Key)
	}
	if reading.Completed {
		t.Error("reading mission should not be completed yet")
	}

	video := missions[1]
	if video.Key == "" || video.Key[0] != 'g' {
		t.Errorf("generic mission key = %q, want g- prefix", video.Key)
	}
	if !video.Completed {
		t.Error("video mission should be completed")
	}
	if video.CurrentCount != 1 {
		t.Errorf("video count = %d, want 1", video.CurrentCount)
	}
}

func TestOnboardingPlacement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)
	ctx := context.Background()

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 36, "") // infant, baseline tier 0

	questions, err := env.onboardingService.Questions(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("Questions() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("questions = %d, want 2 for infant group", len(questions))
	}

	// Top-score answers shift the placement one tier up from the baseline.
	for _, q := range questions {
		best := q.Options[len(q.Options)-1]
		if err := env.onboardingService.Answer(ctx, child.ID, user.ID, best.ID); err != nil {
			t.Fatalf("Answer() error = %v", err)
		}
	}

	detail, err := env.onboardingService.Complete(ctx, child.ID, user.ID)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if detail.CurrentLevel == nil {
		t.Fatal("placement should assign a level")
	}
	if detail.CurrentLevel.Code != "sprout" {
		t.Errorf("placed level = %q, want sprout", detail.CurrentLevel.Code)
	}

	if _, err := env.onboardingService.Complete(ctx, child.ID, user.ID); err != nil {
		t.Errorf("Complete() rerun error = %v, placement should be repeatable", err)
	}
}

func TestOnboardingCompleteWithoutAnswers(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	env := newTestEnv(t)

	user := env.createUser(t, "parent@example.com")
	child := env.createChild(t, user.ID, 36, "")

	_, err := env.onboardingService.Complete(context.Background(), child.ID, user.ID)
	if !errors.Is(err, ErrNoOnboardingAnswers) {
		t.Errorf("Complete() error = %v, want ErrNoOnboardingAnswers", err)
	}
}
