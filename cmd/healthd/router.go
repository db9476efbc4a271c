package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jonwraymond/healthstatus/auth"
	"github.com/jonwraymond/healthstatus/config"
	"github.com/jonwraymond/healthstatus/health"
	"github.com/jonwraymond/healthstatus/observe"
	"github.com/jonwraymond/healthstatus/observe/exporters"
	"github.com/jonwraymond/healthstatus/resilience"
)

func newRouter(agg *health.Aggregator, cfg *config.Config, logger observe.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", health.LivenessHandler())
	r.Get("/health", health.StatusHandler(agg))
	r.Get("/health/simple", health.SimpleStatusHandler(agg))

	r.Group(func(r chi.Router) {
		if cfg.Auth.SigningKey != "" {
			authn := auth.NewJWTAuthenticator(jwtConfig(cfg), auth.NewStaticKeyProvider([]byte(cfg.Auth.SigningKey)))
			r.Use(auth.Middleware(authn))
		}
		if cfg.Server.RefreshRate > 0 {
			r.Use(resilience.Middleware(resilience.NewLimiter(resilience.LimiterConfig{
				Rate:  cfg.Server.RefreshRate,
				Burst: cfg.Server.RefreshBurst,
			})))
		}
		r.Post("/health/refresh", health.RefreshHandler(agg))
	})

	if cfg.Observe.Metrics.Enabled && cfg.Observe.Metrics.Exporter == exporters.Prometheus {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func jwtConfig(cfg *config.Config) auth.JWTConfig {
	return auth.JWTConfig{
		Issuer:   cfg.Auth.Issuer,
		Audience: cfg.Auth.Audience,
	}
}

func requestLogger(logger observe.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug(r.Context(), "request",
				observe.Field{Key: "method", Value: r.Method},
				observe.Field{Key: "path", Value: r.URL.Path},
				observe.Field{Key: "status", Value: ww.Status()},
				observe.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()},
			)
		})
	}
}
