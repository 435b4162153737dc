package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"admitportal-backend/internal/applications"
	googleauth "admitportal-backend/internal/auth"
	"admitportal-backend/internal/queue"
	"admitportal-backend/internal/records"
	"admitportal-backend/internal/scorer"
	"admitportal-backend/internal/shared/config"
	"admitportal-backend/internal/shared/server"
	"admitportal-backend/internal/shared/storage/db"
	"admitportal-backend/internal/shared/storage/object"
	localstore "admitportal-backend/internal/shared/storage/object/local"
	s3store "admitportal-backend/internal/shared/storage/object/s3"
	"admitportal-backend/internal/universities"
	"admitportal-backend/internal/users"
	"admitportal-backend/internal/workerproc"
)

// App holds shared dependencies for the API server and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client
	Scorer scorer.Client

	UsersRepo        users.Repo
	UniversitiesRepo universities.Repo
	RecordsRepo      records.Repo
	ApplicationsRepo applications.Repo

	UsersService        *users.Service
	RecordsService      *records.Service
	ApplicationsService *applications.Service
	Processor           *workerproc.Processor

	UsersHandler        *users.Handler
	UniversitiesHandler *universities.Handler
	RecordsHandler      *records.Handler
	ApplicationsHandler *applications.Handler
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		UsersHandler:        app.UsersHandler,
		UniversitiesHandler: app.UniversitiesHandler,
		RecordsHandler:      app.RecordsHandler,
		ApplicationsHandler: app.ApplicationsHandler,
		GoogleAuth:          app.GoogleAuth,
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
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.QueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx, cfg.QueueURL)
}

func buildScorer(cfg config.Config) scorer.Client {
	if strings.TrimSpace(cfg.ScorerURL) == "" {
		return scorer.PlaceholderClient{}
	}
	client, err := scorer.NewHTTPClient(cfg.ScorerURL, cfg.ScorerAPIKey)
	if err != nil {
		log.Printf("bootstrap: scorer client misconfigured, using placeholder: %v", err)
		return scorer.PlaceholderClient{}
	}
	return client
}

func buildServices(app *App) {
	var userRepo users.Repo
	var uniRepo universities.Repo
	var recordRepo records.Repo
	var applicationRepo applications.Repo

	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		uniRepo = &universities.PGRepo{DB: app.DB}
		recordRepo = &records.PGRepo{DB: app.DB}
		applicationRepo = &applications.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		memUnis := universities.NewMemoryRepo()
		universities.SeedDev(memUnis)
		uniRepo = memUnis
		recordRepo = records.NewMemoryRepo()
		applicationRepo = applications.NewMemoryRepo()
	}

	app.Scorer = buildScorer(app.Config)

	userSvc := users.NewService(userRepo)
	recordSvc := &records.Service{
		Repo:  recordRepo,
		Users: userRepo,
		Store: app.Store,
		Queue: app.Queue,
	}
	applicationSvc := &applications.Service{
		Repo:     applicationRepo,
		Catalog:  uniRepo,
		Users:    userRepo,
		Records:  recordRepo,
		Payments: applications.SimulatedProvider{},
	}

	app.UsersRepo = userRepo
	app.UniversitiesRepo = uniRepo
	app.RecordsRepo = recordRepo
	app.ApplicationsRepo = applicationRepo
	app.UsersService = userSvc
	app.RecordsService = recordSvc
	app.ApplicationsService = applicationSvc
	app.Processor = &workerproc.Processor{
		Records: recordSvc,
		Store:   app.Store,
		Scorer:  app.Scorer,
	}

	app.UsersHandler = users.NewHandler(userSvc)
	app.UniversitiesHandler = universities.NewHandler(uniRepo)
	app.RecordsHandler = records.NewHandler(recordSvc)
	app.ApplicationsHandler = applications.NewHandler(applicationSvc)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleSecret,
		app.Config.GoogleRedirect,
		app.Config.UIRedirectURL,
		userSvc,
	)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
