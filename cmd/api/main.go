package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/salesdoc-api/internal/application/service"
	"github.com/sangkips/salesdoc-api/internal/config"
	"github.com/sangkips/salesdoc-api/internal/docgen"
	domainRepo "github.com/sangkips/salesdoc-api/internal/domain/repository"
	"github.com/sangkips/salesdoc-api/internal/infrastructure/database"
	"github.com/sangkips/salesdoc-api/internal/infrastructure/repository"
	"github.com/sangkips/salesdoc-api/internal/infrastructure/repository/memory"
	"github.com/sangkips/salesdoc-api/internal/logger"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/handler"
	"github.com/sangkips/salesdoc-api/internal/presentation/http/routes"
	"github.com/sangkips/salesdoc-api/pkg/output"
	"github.com/sangkips/salesdoc-api/pkg/utils"
)

const previewPrefix = "/api/v1/previews/"

type repositories struct {
	business  domainRepo.BusinessRepository
	customer  domainRepo.CustomerRepository
	product   domainRepo.ProductRepository
	category  domainRepo.CategoryRepository
	document  domainRepo.DocumentRepository
	analytics domainRepo.AnalyticsRepository
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "memory":
		log.Warn().Msg("using in-memory storage, data is lost on restart")
		documents := memory.NewDocumentRepository()
		return &repositories{
			business:  memory.NewBusinessRepository(),
			customer:  memory.NewCustomerRepository(),
			product:   memory.NewProductRepository(),
			category:  memory.NewCategoryRepository(),
			document:  documents,
			analytics: memory.NewAnalyticsRepository(documents),
		}, nil
	case "postgres", "":
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, err
		}
		return &repositories{
			business:  repository.NewBusinessRepository(db),
			customer:  repository.NewCustomerRepository(db),
			product:   repository.NewProductRepository(db),
			category:  repository.NewCategoryRepository(db),
			document:  repository.NewDocumentRepository(db),
			analytics: repository.NewAnalyticsRepository(db),
		}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q (use postgres or memory)", cfg.Database.Driver)
	}
}

func main() {
	cfg := config.Load()

	if err := logger.Setup(logger.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	repos, err := openRepositories(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("failed to open storage")
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	saver, err := output.NewSaverFromConfig(cfg.PDF.OutputType, cfg.PDF.OutputDir, cfg.PDF.PrinterAddress)
	if err != nil {
		log.Warn().Err(err).Msg("output not configured, downloads are returned but not stored")
		saver = output.NewNullSaver()
	}
	previews := output.NewPreviewStore(cfg.PDF.PreviewTTL, previewPrefix)

	generator := docgen.NewGenerator(docgen.Options{
		Fonts:      docgen.NewFontLoader(cfg.PDF.FontPath),
		FontFamily: cfg.PDF.FontFamily,
		Assets:     docgen.LocalAssets{BaseDir: cfg.Storage.Path},
		Saver:      saver,
		Viewer:     previews,
		Logger:     logger.WithComponent("docgen"),
	})

	businessService := service.NewBusinessService(repos.business)
	customerService := service.NewCustomerService(repos.customer)
	productService := service.NewProductService(repos.product, repos.category)
	categoryService := service.NewCategoryService(repos.category, repos.product)
	dashboardService := service.NewDashboardService(repos.analytics)
	documentService := service.NewDocumentService(repos.document, repos.customer, repos.product, repos.business)
	renderService := service.NewRenderService(generator, repos.document, repos.product, repos.business,
		previews, saver, cfg.PDF.OutputType, logger.WithComponent("render"))

	uploads := handler.Uploads{Dir: cfg.Storage.Path, MaxSize: cfg.Storage.UploadMaxSize}

	handlers := &routes.Handlers{
		Business:  handler.NewBusinessHandler(businessService, uploads),
		Customer:  handler.NewCustomerHandler(customerService),
		Product:   handler.NewProductHandler(productService, cfg.Storage.UploadMaxSize),
		Category:  handler.NewCategoryHandler(categoryService),
		Document:  handler.NewDocumentHandler(documentService, uploads),
		Render:    handler.NewRenderHandler(renderService),
		Dashboard: handler.NewDashboardHandler(dashboardService),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager: jwtManager,
		Cfg:        cfg,
		Done:       ctx.Done(),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
