package main

import (
	"context"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/jiaebaek/CurriMap/internal/config"
	"github.com/jiaebaek/CurriMap/internal/database"
	"github.com/jiaebaek/CurriMap/internal/handlers"
	"github.com/jiaebaek/CurriMap/internal/repository"
	"github.com/jiaebaek/CurriMap/internal/security"
	"github.com/jiaebaek/CurriMap/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	ctx := context.Background()
	if err := db.RunMigrations(ctx, cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Migrations completed successfully")

	// Repositories
	userRepo := repository.NewUserRepository(db)
	childRepo := repository.NewChildRepository(db)
	bookRepo := repository.NewBookRepository(db)
	levelRepo := repository.NewLevelRepository(db)
	missionRepo := repository.NewMissionRepository(db)
	onboardingRepo := repository.NewOnboardingRepository(db)

	// Services
	tokenIssuer := security.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)
	authService := service.NewAuthService(userRepo, tokenIssuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	childService := service.NewChildService(childRepo, levelRepo)
	onboardingService := service.NewOnboardingService(childRepo, levelRepo, onboardingRepo)
	catalogService := service.NewCatalogService(bookRepo)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	recommendService := service.NewRecommendService(childRepo, bookRepo, levelRepo, missionRepo, rng)
	roadmapService := service.NewRoadmapService(childService, childRepo, levelRepo, missionRepo)
	missionService := service.NewMissionService(db, childRepo, missionRepo)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.FromEmail, cfg.FromName)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}
	reportService := service.NewReportService(childService, childRepo, missionRepo, emailService)

	oauthProviders := map[string]handlers.OAuthProvider{
		"google": {
			Name: "google",
			Config: &oauth2.Config{
				ClientID:     cfg.GoogleClientID,
				ClientSecret: cfg.GoogleClientSecret,
				Endpoint:     google.Endpoint,
				Scopes:       []string{"openid", "email", "profile"},
				RedirectURL:  cfg.OAuthRedirectURL,
			},
			UserInfoURL: "https://www.googleapis.com/oauth2/v2/userinfo",
		},
		"apple": {
			Name: "apple",
			Config: &oauth2.Config{
				ClientID:     cfg.AppleClientID,
				ClientSecret: cfg.AppleClientSecret,
				Endpoint: oauth2.Endpoint{
					AuthURL:  "https://appleid.apple.com/auth/authorize",
					TokenURL: "https://appleid.apple.com/auth/token",
				},
				Scopes:      []string{"name", "email"},
				RedirectURL: cfg.OAuthRedirectURL,
			},
		},
	}

	// Handlers
	rateLimiter := security.NewRateLimiter(20, time.Minute)
	middleware := handlers.NewMiddleware(authService, rateLimiter)
	authHandler := handlers.NewAuthHandler(authService, emailService, oauthProviders)
	childHandler := handlers.NewChildHandler(childService, onboardingService)
	bookHandler := handlers.NewBookHandler(catalogService, recommendService)
	missionHandler := handlers.NewMissionHandler(missionService)
	roadmapHandler := handlers.NewRoadmapHandler(roadmapService)
	reportHandler := handlers.NewReportHandler(reportService)
	healthHandler := handlers.NewHealthHandler(db)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("GET /healthz", healthHandler.Check)
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("POST /api/auth/refresh", middleware.RateLimit(authHandler.Refresh))
	mux.HandleFunc("POST /api/auth/logout", authHandler.Logout)
	mux.HandleFunc("POST /api/auth/oauth/{provider}", middleware.RateLimit(authHandler.OAuthLogin))

	// Public catalog
	mux.HandleFunc("GET /api/books", bookHandler.Search)
	mux.HandleFunc("GET /api/books/{bookId}", bookHandler.Get)
	mux.HandleFunc("GET /api/themes", bookHandler.Themes)
	mux.HandleFunc("GET /api/moods", bookHandler.Moods)

	// Authenticated routes
	mux.HandleFunc("GET /api/auth/me", middleware.RequireAuth(authHandler.Me))

	mux.HandleFunc("GET /api/children", middleware.RequireAuth(childHandler.List))
	mux.HandleFunc("POST /api/children", middleware.RequireAuth(childHandler.Create))
	mux.HandleFunc("GET /api/children/{childId}", middleware.RequireAuth(childHandler.Get))
	mux.HandleFunc("PUT /api/children/{childId}", middleware.RequireAuth(childHandler.Update))
	mux.HandleFunc("PUT /api/children/{childId}/interests", middleware.RequireAuth(childHandler.SetInterests))
	mux.HandleFunc("GET /api/children/{childId}/onboarding", middleware.RequireAuth(childHandler.OnboardingQuestions))
	mux.HandleFunc("POST /api/children/{childId}/onboarding", middleware.RequireAuth(childHandler.OnboardingAnswer))
	mux.HandleFunc("POST /api/children/{childId}/onboarding/complete", middleware.RequireAuth(childHandler.OnboardingComplete))

	mux.HandleFunc("GET /api/books/daily/{childId}", middleware.RequireAuth(bookHandler.Daily))

	mux.HandleFunc("POST /api/missions/complete", middleware.RequireAuth(missionHandler.Complete))
	mux.HandleFunc("GET /api/missions/today/{childId}", middleware.RequireAuth(missionHandler.Today))
	mux.HandleFunc("GET /api/missions/history/{childId}", middleware.RequireAuth(missionHandler.History))
	mux.HandleFunc("GET /api/missions/stats/{childId}", middleware.RequireAuth(missionHandler.Stats))

	mux.HandleFunc("GET /api/roadmap/{childId}", middleware.RequireAuth(roadmapHandler.Progress))
	mux.HandleFunc("GET /api/roadmap/{childId}/level/{levelId}", middleware.RequireAuth(roadmapHandler.LevelBooks))

	mux.HandleFunc("GET /api/reports/{childId}", middleware.RequireAuth(reportHandler.Monthly))
	mux.HandleFunc("GET /api/reports/{childId}/growth", middleware.RequireAuth(reportHandler.Growth))
	mux.HandleFunc("POST /api/reports/{childId}/email", middleware.RequireAuth(reportHandler.Email))

	handler := handlers.Logging(mux)

	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go cleanupExpiredSessions(authService)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// cleanupExpiredSessions periodically removes expired refresh sessions
func cleanupExpiredSessions(authService *service.AuthService) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		removed, err := authService.CleanupExpiredSessions(ctx)
		cancel()
		if err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
			continue
		}
		if removed > 0 {
			log.Printf("Cleaned up %d expired sessions", removed)
		}
	}
}
