// Package http exposes the record stores and the finance and dashboard
// services as a JSON API on gin.
package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"farmflow/internal/log"
	"farmflow/internal/services"
	"farmflow/internal/store"
)

// Deps are the collaborators the handlers call.
type Deps struct {
	Finance   *services.FinanceService
	Dashboard *services.DashboardService
	Farms     store.FarmStore
	Crops     store.CropStore
	Tasks     store.TaskStore
	Weather   store.WeatherReader

	// Ready reports whether the backend can serve reads. Nil means always ready.
	Ready func(ctx context.Context) error
	Now   func() time.Time
}

type Options struct {
	RateLimit   string // ulule/limiter format, e.g. "300-M"; empty disables it
	CORSOrigins []string
	Logger      *log.Logger
	Production  bool
}

type handler struct {
	Deps
}

// NewRouter builds the gin engine with middleware and every route mounted.
func NewRouter(deps Deps, opts Options) (*gin.Engine, error) {
	if deps.Finance == nil || deps.Dashboard == nil {
		return nil, errors.New("finance and dashboard services are required")
	}
	if deps.Farms == nil || deps.Crops == nil || deps.Tasks == nil || deps.Weather == nil {
		return nil, errors.New("farm, crop, task and weather stores are required")
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(log.DefaultConfig()).WithComponent(log.ComponentHTTP)
	}

	if opts.Production {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	if err := r.SetTrustedProxies(nil); err != nil {
		return nil, err
	}
	r.Use(RequestLogger(logger), gin.Recovery(), SecurityHeaders(DefaultHeadersConfig()), Detect(NewDetector()))
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(corsConfig(opts.CORSOrigins)))
	}
	if opts.RateLimit != "" {
		rate, err := limiter.NewRateFromFormatted(opts.RateLimit)
		if err != nil {
			return nil, err
		}
		r.Use(RateLimit(limiter.New(memory.NewStore(), rate)))
	}

	h := &handler{Deps: deps}
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)

	api := r.Group("/api/v1")
	{
		api.GET("/finances", h.listFinances)
		api.GET("/finances/summary", h.financeSummary)
		api.POST("/finances", h.createEntry)
		api.PUT("/finances/:id", h.updateEntry)
		api.DELETE("/finances/:id", h.deleteEntry)

		api.GET("/farms", h.listFarms)
		api.POST("/farms", h.createFarm)
		api.GET("/farms/:id", h.getFarm)
		api.PUT("/farms/:id", h.updateFarm)
		api.DELETE("/farms/:id", h.deleteFarm)

		api.GET("/crops", h.listCrops)
		api.POST("/crops", h.createCrop)
		api.PUT("/crops/:id", h.updateCrop)
		api.DELETE("/crops/:id", h.deleteCrop)

		api.GET("/tasks", h.listTasks)
		api.GET("/tasks/upcoming", h.upcomingTasks)
		api.POST("/tasks", h.createTask)
		api.PUT("/tasks/:id", h.updateTask)
		api.DELETE("/tasks/:id", h.deleteTask)
		api.POST("/tasks/:id/toggle", h.toggleTask)

		api.GET("/weather", h.weather)
		api.GET("/dashboard", h.dashboard)
	}
	return r, nil
}

func corsConfig(origins []string) cors.Config {
	return cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}

// NewServer wraps the router in an http.Server with conservative timeouts.
func NewServer(addr string, h http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

func (h *handler) health(c *gin.Context) {
	c.String(http.StatusOK, "ok")
}

func (h *handler) ready(c *gin.Context) {
	if h.Ready != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		if err := h.Ready(ctx); err != nil {
			log.FromContext(c.Request.Context()).WarnContext(ctx, "Readiness check failed", log.FieldError, err.Error())
			c.String(http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	c.String(http.StatusOK, "ready")
}
