// Package server is the HTTP companion of the terminal client. It exposes the
// category suggestion boundary and the cookie-backed state used by browser
// clients.
package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/organizeme/internal/suggest"
)

type Options struct {
	Suggester    suggest.Suggester
	StateTTL     time.Duration
	AllowOrigins []string
	Logger       *log.Logger
}

// New builds an echo instance with middleware and every route registered.
func New(opts Options) *echo.Echo {
	if opts.Logger == nil {
		opts.Logger = log.StandardLogger()
	}
	if len(opts.AllowOrigins) == 0 {
		opts.AllowOrigins = []string{"*"}
	}

	if containsWildcard(opts.AllowOrigins) {
		opts.Logger.Info("CORS allows any origin without credentials; /api/state works for same-origin clients only")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     opts.AllowOrigins,
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		AllowCredentials: !containsWildcard(opts.AllowOrigins),
	}))
	e.Use(requestLogger(opts.Logger))

	Register(e, suggest.NewService(opts.Suggester, opts.Logger), opts.StateTTL, opts.Logger)
	return e
}

func Register(e *echo.Echo, svc *suggest.Service, stateTTL time.Duration, logger *log.Logger) {
	e.POST("/api/suggestions", postSuggestions(svc))
	e.GET("/api/state", getState(stateTTL))
	e.PUT("/api/state", putState(stateTTL, logger))
	e.GET("/healthz", healthz())
}

func requestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogError:   true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			entry := logger.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			if v.Error != nil {
				entry.WithError(v.Error).Warn("request failed")
				return nil
			}
			entry.Debug("request")
			return nil
		},
	})
}

func containsWildcard(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
