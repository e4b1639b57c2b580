package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"portfolio-api/internal/auth"
	"portfolio-api/internal/metrics"
	"portfolio-api/internal/service"
)

// maxCVSize caps the multipart CV upload.
const maxCVSize = 50 << 20

// Config carries everything the Handler needs. Services are built once in
// main and injected here.
type Config struct {
	Verifier *auth.Verifier
	Tokens   *auth.TokenService
	Gate     *auth.Gate

	About        service.AboutService
	Projects     service.ProjectService
	Technologies service.TechnologyService
	Homepage     service.HomepageService
	Contact      service.ContactService

	Metrics *metrics.Metrics
	Limiter *RateLimiter
	Logger  logrus.FieldLogger

	AllowedOrigins []string
	// TrustedProxies decides whose X-Forwarded-For is used for the client
	// IP. Nil trusts nobody.
	TrustedProxies []string
	BodyLimit      int64
	// StaticDir is served under StaticPath when set (local CV storage).
	StaticDir  string
	StaticPath string
	Port       string
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	cfg    Config
	logger logrus.FieldLogger
	now    func() time.Time
}

func NewHandler(cfg Config) *Handler {
	logger := cfg.Logger
	if logger == nil {
		quiet := logrus.New()
		quiet.SetOutput(io.Discard)
		logger = quiet
	}
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 10 << 20
	}
	return &Handler{cfg: cfg, logger: logger, now: time.Now}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	if err := router.SetTrustedProxies(h.cfg.TrustedProxies); err != nil {
		h.logger.WithError(err).Warn("invalid trusted proxies; using the socket address")
		_ = router.SetTrustedProxies(nil)
	}
	router.Use(
		recoveryMiddleware(h.logger),
		requestIDMiddleware(),
		requestLogger(h.logger),
	)
	if h.cfg.Metrics != nil {
		router.Use(h.cfg.Metrics.Middleware())
	}
	router.Use(
		securityHeaders(),
		corsMiddleware(h.cfg.AllowedOrigins),
		bodyLimit(h.cfg.BodyLimit, maxCVSize+(1<<20)),
	)

	gate := h.cfg.Gate

	router.GET("/", h.root)
	if h.cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(h.cfg.Metrics.Handler()))
	}
	if h.cfg.StaticDir != "" && h.cfg.StaticPath != "" {
		router.Static(h.cfg.StaticPath, h.cfg.StaticDir)
	}

	api := router.Group("/api")
	if h.cfg.Limiter != nil {
		var onLimited func()
		if h.cfg.Metrics != nil {
			onLimited = h.cfg.Metrics.ObserveRateLimited
		}
		api.Use(h.cfg.Limiter.Middleware(onLimited))
	}
	{
		authGroup := api.Group("/auth")
		authGroup.POST("/login", gate.Public(), h.login)
		authGroup.GET("/verify", gate.Required(), h.verify)
		authGroup.GET("/test", gate.Public(), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "Auth routes are working correctly"})
		})

		about := api.Group("/about")
		about.GET("", gate.Optional(), h.getAbout)
		about.PUT("", gate.Required(), h.upsertAbout)
		about.POST("", gate.Required(), h.createAbout)

		projects := api.Group("/projects")
		projects.GET("", gate.Optional(), h.listProjects)
		projects.GET("/:id", gate.Optional(), h.getProject)
		projects.POST("", gate.Required(), h.createProject)
		projects.PUT("/:id", gate.Required(), h.updateProject)
		projects.DELETE("/:id", gate.Required(), h.deleteProject)

		techs := api.Group("/technologies")
		techs.GET("", gate.Optional(), h.listTechnologies)
		techs.GET("/:id", gate.Optional(), h.getTechnology)
		techs.POST("", gate.Required(), h.createTechnology)
		techs.PUT("/:id", gate.Required(), h.updateTechnology)
		techs.DELETE("/:id", gate.Required(), h.deleteTechnology)

		homepage := api.Group("/homepage")
		homepage.GET("", gate.Optional(), h.getHomepage)
		homepage.PUT("", gate.Required(), h.upsertHomepage)
		homepage.POST("/upload-cv", gate.Required(), h.uploadCV)
		homepage.DELETE("/cv", gate.Required(), h.deleteCV)

		contact := api.Group("/contact")
		contact.GET("/info", gate.Optional(), h.getContactInfo)
		contact.PUT("/info", gate.Required(), h.upsertContactInfo)
		contact.POST("/submit", gate.Public(), h.submitContact)
		contact.GET("/submissions", gate.Required(), h.listSubmissions)
		contact.GET("/submissions/:id", gate.Required(), h.getSubmission)
		contact.DELETE("/submissions/:id", gate.Required(), h.deleteSubmission)

		api.GET("/health", h.health)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Endpoint not found"})
	})
}

func (h *Handler) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Welcome to the Portfolio API",
		"version": "1.0.0",
		"port":    h.cfg.Port,
		"endpoints": gin.H{
			"auth":         "/api/auth",
			"projects":     "/api/projects",
			"technologies": "/api/technologies",
			"about":        "/api/about",
			"homepage":     "/api/homepage",
			"contact":      "/api/contact",
			"health":       "/api/health",
		},
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Portfolio API is running",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"port":      h.cfg.Port,
	})
}
