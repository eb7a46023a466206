package http

import (
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

// RouterOptions carries the endpoints served next to the API.
type RouterOptions struct {
	// Metrics is mounted at /metrics when set.
	Metrics http.Handler

	// OpenAPI is served at /openapi.json when set, together with the
	// Swagger UI at /swagger/*.
	OpenAPI *openapi3.T

	// AllowOrigins for CORS. Empty allows any origin.
	AllowOrigins []string
}

// NewRouter creates the echo instance with middleware and all routes.
func NewRouter(s *Server, opts RouterOptions, logger *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = NewRequestValidator()

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: allowOrigins(opts.AllowOrigins)}))
	e.Use(requestLogger(logger))

	api := e.Group("/api")
	api.POST("/chat", s.Chat)
	api.GET("/books", s.ListBooks)
	api.GET("/books/:id", s.GetBook)
	api.GET("/search", s.SearchBooks)
	api.GET("/orders/:id", s.GetOrder)
	api.DELETE("/sessions/:id", s.ClearSession)
	if s.history != nil {
		api.GET("/sessions/:id/history", s.SessionHistory)
	}
	api.GET("/health", s.Health)

	if opts.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(opts.Metrics))
	}
	if opts.OpenAPI != nil {
		doc := opts.OpenAPI
		e.GET("/openapi.json", func(ctx echo.Context) error {
			return ctx.JSON(http.StatusOK, doc)
		})
		e.GET("/swagger/*", echoSwagger.WrapHandler)
	}

	return e
}

func allowOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func requestLogger(logger *zap.Logger) echo.MiddlewareFunc {
	logger = logger.With(zap.String("component", "http"))
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency.Round(time.Microsecond)),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				logger.Error("request failed", append(fields, zap.Error(v.Error))...)
				return nil
			}
			logger.Info("request", fields...)
			return nil
		},
	})
}
