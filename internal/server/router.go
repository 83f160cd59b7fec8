package server

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Skufu/GoRocky-symptoms/internal/details"
	"github.com/Skufu/GoRocky-symptoms/internal/predict"
)

//go:embed templates/*.html
var templatesFS embed.FS

type HealthChecker interface {
	Ping(ctx context.Context) error
}

// DiseaseLister exposes the disease catalogue for listing and lookups.
type DiseaseLister interface {
	Diseases() []string
}

type Deps struct {
	Scorer   *predict.Scorer
	Details  *details.Aggregator
	Diseases DiseaseLister
	DB       HealthChecker // nil when no database is configured
	Logger   *zap.Logger
}

type handler struct {
	scorer   *predict.Scorer
	details  *details.Aggregator
	diseases DiseaseLister
	known    map[string]bool
	logger   *zap.Logger
}

func New(deps Deps) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	h := &handler{
		scorer:   deps.Scorer,
		details:  deps.Details,
		diseases: deps.Diseases,
		known:    make(map[string]bool),
		logger:   logger,
	}
	for _, d := range deps.Diseases.Diseases() {
		h.known[d] = true
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(logger),
		limitBodySize(1<<20), // 1MB max body
		cors.New(cors.Config{
			AllowOrigins:  []string{"*"},
			AllowMethods:  []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders: []string{requestIDHeader},
			MaxAge:        12 * time.Hour,
		}),
	)
	router.SetHTMLTemplate(template.Must(template.ParseFS(templatesFS, "templates/*.html")))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", readyz(deps.DB, len(h.known)))

	router.GET("/", h.index)
	router.POST("/predict", h.predictForm)

	api := router.Group("/api")
	api.POST("/predict", h.predictJSON)
	api.GET("/diseases", h.listDiseases)
	api.GET("/diseases/:name", h.diseaseDetails)

	return router
}

func readyz(db HealthChecker, diseases int) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled", "diseases": diseases})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "degraded",
				"db":       fmt.Sprintf("unhealthy: %v", err),
				"diseases": diseases,
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "ok", "diseases": diseases})
	}
}
