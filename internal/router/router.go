package router

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/gb4everrr/fettlemed-backend/internal/middleware"
)

// Handler registers routes that need authentication only.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// GatedHandler registers routes behind the clinic authorization gate.
type GatedHandler interface {
	RegisterRoutes(*gin.RouterGroup, *middleware.RBACMiddleware)
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	gate          *middleware.RBACMiddleware
	authH         Handler
	healthH       Handler
	clinicH       GatedHandler
	clinicUserH   GatedHandler
	patientH      GatedHandler
	availabilityH GatedHandler
	appointmentH  GatedHandler
	invoiceH      GatedHandler
	vitalsH       GatedHandler
	medicalH      GatedHandler
	metrics       *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type Config struct {
	RateLimitRPS  float64
	RateBurst     int
	CORSConfig    middleware.CORSConfig
	MetricsPrefix string
}

func New(
	auth *middleware.AuthMiddleware,
	gate *middleware.RBACMiddleware,
	authH Handler,
	healthH Handler,
	clinicH GatedHandler,
	clinicUserH GatedHandler,
	patientH GatedHandler,
	availabilityH GatedHandler,
	appointmentH GatedHandler,
	invoiceH GatedHandler,
	vitalsH GatedHandler,
	medicalH GatedHandler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		gate:          gate,
		authH:         authH,
		healthH:       healthH,
		clinicH:       clinicH,
		clinicUserH:   clinicUserH,
		patientH:      patientH,
		availabilityH: availabilityH,
		appointmentH:  appointmentH,
		invoiceH:      invoiceH,
		vitalsH:       vitalsH,
		medicalH:      medicalH,
		metrics:       initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: 30 * time.Second}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(config.RateLimitRPS),
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.clinicH.RegisterRoutes(protected, r.gate)
	r.clinicUserH.RegisterRoutes(protected, r.gate)
	r.patientH.RegisterRoutes(protected, r.gate)
	r.availabilityH.RegisterRoutes(protected, r.gate)
	r.appointmentH.RegisterRoutes(protected, r.gate)
	r.invoiceH.RegisterRoutes(protected, r.gate)
	r.vitalsH.RegisterRoutes(protected, r.gate)
	r.medicalH.RegisterRoutes(protected, r.gate)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

// initRouterMetrics registers the HTTP metrics with the default registry so
// they show up on the /metrics endpoint.
func initRouterMetrics(prefix string) *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
