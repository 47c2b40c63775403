package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resumehub-backend/internal/config"
	"resumehub-backend/internal/llm"
	"resumehub-backend/internal/llm/gemini"
	"resumehub-backend/internal/llm/openai"
	"resumehub-backend/internal/resumes"
	"resumehub-backend/internal/server"
	"resumehub-backend/internal/services/health"
	"resumehub-backend/internal/shared/debugx"
	"resumehub-backend/internal/shared/storage/db"
	localstore "resumehub-backend/internal/shared/storage/object/local"
)

// App holds the wired application dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	ResumesRepo    resumes.Repo
	ResumesService *resumes.Service
	ResumesHandler *resumes.Handler
}

// Build prepares dependencies and the router. An empty DATABASE_URL in a
// dev-like environment falls back to in-memory repositories; in production
// config.Load already rejects it.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	llmClient, err := buildLLM(cfg)
	if err != nil {
		return nil, err
	}

	var repo resumes.Repo
	if sqlDB != nil {
		repo = &resumes.PGRepo{DB: sqlDB}
	} else {
		repo = resumes.NewMemoryRepo()
	}

	svc := &resumes.Service{
		Store:      localstore.New(cfg.LocalStoreDir),
		Repo:       repo,
		Parser:     &resumes.Parser{LLM: llmClient},
		Customizer: &resumes.Customizer{LLM: llmClient},
	}
	handler := resumes.NewHandler(svc, debugx.New(cfg.Debug))

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		ResumesRepo:    repo,
		ResumesService: svc,
		ResumesHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		CORSAllowOrigin: cfg.CORSAllowOrigin,
		ResumesHandler:  handler,
		Health:          health.NewService(),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return sqlDB, nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel)
	default:
		return gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.LLMTimeout)
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
