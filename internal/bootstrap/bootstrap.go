package bootstrap

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/ekaplan/prepsphere/internal/app/controllers"
	appRepos "github.com/ekaplan/prepsphere/internal/app/repositories"
	appRoutes "github.com/ekaplan/prepsphere/internal/app/routes"
	appServices "github.com/ekaplan/prepsphere/internal/app/services"
	"github.com/ekaplan/prepsphere/internal/config"
	appMiddleware "github.com/ekaplan/prepsphere/internal/middleware"
	"github.com/ekaplan/prepsphere/internal/pkg/ai"
	pkgAuth "github.com/ekaplan/prepsphere/internal/pkg/auth"
	"github.com/ekaplan/prepsphere/internal/pkg/email"
	"github.com/ekaplan/prepsphere/internal/pkg/filestorage"
	"github.com/ekaplan/prepsphere/internal/pkg/helpers"
	"github.com/ekaplan/prepsphere/internal/pkg/jsonstore"
	"github.com/ekaplan/prepsphere/internal/pkg/logger"
	"github.com/ekaplan/prepsphere/internal/pkg/otp"
	"github.com/ekaplan/prepsphere/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos       *appRepos.Repositories
	JWTService  *pkgAuth.JWTService
	OTPStore    *otp.Store
	FileStorage *filestorage.LocalStorage
	Advisor     ai.Advisor

	AuthService     *appServices.AuthService
	UserService     *appServices.UserService
	NotebookService *appServices.NotebookService
	FollowService   *appServices.FollowService
	TestService     *appServices.TestService
	QuestionService *appServices.QuestionService
	PracticeService *appServices.PracticeService
	ReferralService *appServices.ReferralService
	SettingsService *appServices.SettingsService
	AIService       *appServices.AIService

	AuthMiddleware *appMiddleware.AuthMiddleware
	Controllers    appRoutes.Controllers
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the JSON file store rooted at the configured data
// directory and seeds default data.
func SetupStore(cfg *config.Config, lgr zerolog.Logger) (*jsonstore.Store, error) {
	store, err := jsonstore.New(cfg.Server.DataDir)
	if err != nil {
		lgr.Error().Err(err).Str("dataDir", cfg.Server.DataDir).Msg("Failed to open data store")
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}
	lgr.Info().Str("dataDir", cfg.Server.DataDir).Msg("Data store opened")

	repos := appRepos.NewRepositories(store)
	if err := seed.CreateDefaultData(context.Background(), repos, cfg, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return store, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, store *jsonstore.Store, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(store)

	baseURL := cfg.Server.PublicURL
	if baseURL == "" {
		baseURL = "http://localhost:" + cfg.Server.Port
	}
	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.UploadDir, baseURL+"/uploads")
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.OTPStore = otp.NewStore()

	emailService := email.NewEmailService(email.SMTPConfig{
		Host:      cfg.SMTP.Host,
		Port:      cfg.SMTP.Port,
		Username:  cfg.SMTP.Username,
		Password:  cfg.SMTP.Password,
		FromName:  cfg.SMTP.FromName,
		FromEmail: cfg.SMTP.FromEmail,
		UseTLS:    cfg.SMTP.UseTLS,
	}, lgr)

	if cfg.AI.GeminiAPIKey != "" {
		deps.Advisor, err = ai.NewGeminiAdvisor(context.Background(), cfg.AI.GeminiAPIKey)
		if err != nil {
			lgr.Warn().Err(err).Msg("Failed to initialize study advisor, AI endpoints disabled")
			deps.Advisor = nil
		}
	} else {
		lgr.Info().Msg("Gemini API key not configured, AI endpoints disabled")
	}

	deps.AuthService = appServices.NewAuthService(
		deps.Repos.UserRepository,
		deps.Repos.TokenRepository,
		deps.Repos.SettingsRepository,
		deps.JWTService,
		deps.OTPStore,
		emailService,
		lgr,
	)
	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.Repos.TokenRepository, lgr)
	deps.NotebookService = appServices.NewNotebookService(deps.Repos.NotebookRepository, deps.Repos.QuestionRepository, lgr)
	deps.FollowService = appServices.NewFollowService(deps.Repos.FollowRepository, deps.Repos.UserRepository, lgr)
	deps.TestService = appServices.NewTestService(deps.Repos.TestRepository, lgr)
	deps.QuestionService = appServices.NewQuestionService(deps.Repos.QuestionRepository, deps.FileStorage, lgr)
	deps.PracticeService = appServices.NewPracticeService(deps.Repos.QuestionRepository, deps.Repos.SettingsRepository, deps.FileStorage, lgr)
	deps.ReferralService = appServices.NewReferralService(deps.Repos.ReferralRepository, deps.Repos.UserRepository, lgr)
	deps.SettingsService = appServices.NewSettingsService(deps.Repos.SettingsRepository, lgr)
	deps.AIService = appServices.NewAIService(deps.Advisor, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Repos.UserRepository)

	deps.Controllers = appRoutes.Controllers{
		Auth:     appControllers.NewAuthController(deps.AuthService, lgr),
		User:     appControllers.NewUserController(deps.UserService, deps.FollowService, lgr),
		Notebook: appControllers.NewNotebookController(deps.NotebookService, lgr),
		Test:     appControllers.NewTestController(deps.TestService, lgr),
		Question: appControllers.NewQuestionController(deps.QuestionService, lgr),
		Practice: appControllers.NewPracticeController(deps.PracticeService, lgr),
		Referral: appControllers.NewReferralController(deps.ReferralService, lgr),
		Settings: appControllers.NewSettingsController(deps.SettingsService, lgr),
		AI:       appControllers.NewAIController(deps.AIService, lgr),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(gin.Recovery())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	return router
}
