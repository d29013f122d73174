package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"parser-backend/internal/ai"
	"parser-backend/internal/extract"
	"parser-backend/internal/schemas"
	"parser-backend/internal/shared/config"
	"parser-backend/internal/shared/server"
	"parser-backend/internal/shared/storage/db"
	"parser-backend/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config         config.Config
	Router         *gin.Engine
	DB             *sql.DB
	SchemasRepo    schemas.Repo
	SchemasService *schemas.Service
	UploadService  *uploads.Service
	SchemaHandler  *schemas.Handler
	UploadHandler  *uploads.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var repo schemas.Repo
	if sqlDB != nil {
		repo = &schemas.PGRepo{DB: sqlDB}
	} else {
		repo = schemas.NewMemoryRepo()
	}

	schemaSvc := &schemas.Service{Repo: repo}
	uploadSvc := &uploads.Service{
		Extractor: uploads.ExtractorFunc(extract.Text),
		AI:        ai.NewHTTPClient(cfg.AiMicroserviceURL),
		Schemas:   schemaSvc,
	}

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		SchemasRepo:    repo,
		SchemasService: schemaSvc,
		UploadService:  uploadSvc,
		SchemaHandler:  schemas.NewHandler(schemaSvc),
		UploadHandler:  uploads.NewHandler(uploadSvc, cfg.MaxUploadedFiles),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:        cfg,
		SchemaHandler: app.SchemaHandler,
		UploadHandler: app.UploadHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repository: %v", err)
			sqlDB.Close()
			return nil, nil
		}
		sqlDB.Close()
		return nil, err
	}

	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
