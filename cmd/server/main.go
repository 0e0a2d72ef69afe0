package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"invitr/internal/api"
	"invitr/internal/api/handlers"
	"invitr/internal/api/middleware"
	"invitr/internal/engine/analytics"
	"invitr/internal/engine/invites"
	"invitr/internal/pkg/logger"
	"invitr/internal/platform/audit"
	"invitr/internal/platform/auth"
	"invitr/internal/platform/config"
	"invitr/internal/platform/database"
	"invitr/internal/platform/models"
	"invitr/internal/platform/repositories"
)

func main() {
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Logging)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Repositories
	adminRepo := repositories.NewAdminRepository(db)
	inviteRepo := invites.NewRepository(db)

	// Services
	tokenSvc := auth.NewTokenService(cfg.JWT)
	auditLogger := audit.NewLogger(db)
	viewLogger := invites.NewViewLogger(db)
	profileSvc := invites.NewService(inviteRepo, cfg.Public.BaseURL)
	resolver := invites.NewResolver(inviteRepo, viewLogger)
	analyticsSvc := analytics.NewService(analytics.NewRepository(db))

	if err := bootstrapAdmin(adminRepo, cfg.Admin); err != nil {
		log.Fatalf("Failed to bootstrap admin account: %v", err)
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(adminRepo, tokenSvc)
	profileHandler := handlers.NewProfileHandler(profileSvc, auditLogger)
	mediaHandler := handlers.NewMediaHandler(profileSvc, auditLogger)
	greetingHandler := handlers.NewGreetingHandler(profileSvc)
	publicHandler := handlers.NewPublicHandler(resolver)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsSvc, profileSvc)
	auditHandler := handlers.NewAuditHandler(auditLogger)
	healthHandler := handlers.NewHealthHandler(db)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenSvc)
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.GreetingsPerMinute)

	router := api.NewRouter(&api.Dependencies{
		AuthHandler:      authHandler,
		ProfileHandler:   profileHandler,
		MediaHandler:     mediaHandler,
		GreetingHandler:  greetingHandler,
		PublicHandler:    publicHandler,
		AnalyticsHandler: analyticsHandler,
		AuditHandler:     auditHandler,
		HealthHandler:    healthHandler,
		AuthMiddleware:   authMiddleware,
		RateLimiter:      rateLimiter,
	})

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	log.Printf("Server starting on %s", addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// bootstrapAdmin seeds the configured admin account on first start so the
// dashboard is reachable before any out-of-band user management exists.
func bootstrapAdmin(repo *repositories.AdminRepository, cfg config.AdminConfig) error {
	if cfg.Email == "" || cfg.Password == "" {
		return nil
	}

	existing, err := repo.GetByEmail(cfg.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now().Unix()
	return repo.Create(&models.Admin{
		ID:           "adm_" + uuid.NewString(),
		Email:        cfg.Email,
		PasswordHash: string(hash),
		FullName:     cfg.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}
