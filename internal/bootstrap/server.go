package bootstrap

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/mohammadpnp/roster-import/internal/application/directory"
	"github.com/mohammadpnp/roster-import/internal/application/ingestion"
	"github.com/mohammadpnp/roster-import/internal/config"
	domain "github.com/mohammadpnp/roster-import/internal/domain/employee"
	"github.com/mohammadpnp/roster-import/internal/infrastructure/spreadsheet"
	httpecho "github.com/mohammadpnp/roster-import/internal/interfaces/http/echo"
	"go.uber.org/zap"
)

// Dependencies are the adapters the HTTP server is assembled from.
type Dependencies struct {
	Config *config.Config
	Logger *zap.Logger
	API    domain.DirectoryAPI
	Store  domain.UploadStore
	Audit  domain.ImportAudit
}

// NewHTTPServer wires the use cases into echo. The returned registry owns the
// open directory views and must be closed on shutdown.
func NewHTTPServer(deps Dependencies) (*echo.Echo, *directory.Registry) {
	logger := deps.Logger
	audit := deps.Audit
	if audit == nil {
		audit = ingestion.DiscardAudit{}
	}

	server := echo.New()
	server.HideBanner = true
	server.HidePort = true

	server.Use(middleware.Recover())
	server.Use(middleware.RequestID())
	server.Use(middleware.BodyLimit(deps.Config.Uploads.MaxBytes))
	server.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}))

	errs := httpecho.NewErrorMapper(deps.Config.App.SignInURL, logger)

	ingest := ingestion.NewIngestSpreadsheet(spreadsheet.NewDecoder(), deps.Store, audit, logger)
	submit := ingestion.NewSubmitBatch(deps.Store, deps.API, audit, logger)
	clearUpload := ingestion.NewClearUpload(deps.Store, audit, logger)
	onboard := ingestion.NewOnboardEmployee(deps.API)
	importHandler := httpecho.NewImportHandler(ingest, submit, clearUpload, onboard, errs)

	views := directory.NewRegistry(deps.API, directory.RegistryConfig{
		Engine: directory.EngineConfig{
			SearchDebounce: deps.Config.Directory.SearchDebounce(),
			FetchTimeout:   deps.Config.Employees.Timeout(),
		},
		IdleTTL: deps.Config.Directory.ViewIdleTTL(),
	}, logger)
	directoryHandler := httpecho.NewDirectoryHandler(views, errs)

	httpecho.RegisterRoutes(server, errs, importHandler, directoryHandler)

	server.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	return server, views
}
