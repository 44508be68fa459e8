package api

import (
	"context"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/faqdesk/faqconsole/docs"
	"github.com/faqdesk/faqconsole/internal/api/handler"
	"github.com/faqdesk/faqconsole/internal/api/metrics"
	"github.com/faqdesk/faqconsole/internal/api/middleware"
	"github.com/faqdesk/faqconsole/internal/core/ports"
	"github.com/faqdesk/faqconsole/internal/core/service"
)

// Dependencies are the collaborators the console routes are built from.
type Dependencies struct {
	App      *service.App
	Client   ports.ResourceClient
	State    ports.StateStore
	Importer handler.Importer
	Log      zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(metrics.HTTPMiddleware())

	app := deps.App

	// --- Pages, one per route table entry, behind the guard ---
	pages := handler.NewPageHandler(app.Session, app.Translator, app.Routes)
	guard := middleware.Guard(app.Navigator, deps.Log)
	for _, r := range app.Routes.Routes() {
		e.GET(r.Path, pages.Show, guard)
	}

	// --- Session actions ---
	sessions := handler.NewSessionHandler(app.Session, app.Translator)
	s := e.Group("/session")
	s.GET("", sessions.Show)
	s.POST("/login", sessions.Login)
	s.POST("/register", sessions.Register)
	s.POST("/logout", sessions.Logout)
	s.PUT("/language", sessions.SetLanguage)

	// --- Backend proxy ---
	res := handler.NewResourceHandler(deps.Client, deps.Importer)
	a := e.Group("/console/api")
	a.GET("/categories", res.ListCategories)
	a.POST("/categories", res.CreateCategory)
	a.GET("/categories/:id", res.GetCategory)
	a.PUT("/categories/:id", res.UpdateCategory)
	a.DELETE("/categories/:id", res.DeleteCategory)
	a.GET("/faqs", res.ListFAQs)
	a.POST("/faqs", res.CreateFAQ)
	a.POST("/faqs/import", res.ImportFAQs)
	a.GET("/faqs/:id", res.GetFAQ)
	a.PUT("/faqs/:id", res.UpdateFAQ)
	a.DELETE("/faqs/:id", res.DeleteFAQ)
	a.GET("/stores", res.ListStores)
	a.GET("/stores/:id", res.GetStore)

	// --- Health checks, metrics and API docs ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(map[string]handler.Check{
		"state":   deps.State.Ping,
		"backend": func(ctx context.Context) error { return deps.Client.Health(ctx) },
	})

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
