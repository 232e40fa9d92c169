package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/writemate-backend/internal/http/handlers"
	httpMW "github.com/yungbote/writemate-backend/internal/http/middleware"
	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log            *logger.Logger
	Metrics        *observability.Metrics
	ServiceName    string
	AllowedOrigins []string

	HealthHandler   *httpH.HealthHandler
	DocumentHandler *httpH.DocumentHandler
	AnalysisHandler *httpH.AnalysisHandler
	SessionHandler  *httpH.SessionHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.AllowedOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/health", cfg.HealthHandler.HealthCheck)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	api := r.Group("/api/v1")
	{
		// Documents
		if cfg.DocumentHandler != nil {
			api.POST("/sessions/:id/documents", cfg.DocumentHandler.CreateDocument)
			api.GET("/documents/:id", cfg.DocumentHandler.GetDocument)
		}

		// Analysis
		if cfg.AnalysisHandler != nil {
			api.POST("/analyze", cfg.AnalysisHandler.Analyze)
			api.POST("/analyze/quick", cfg.AnalysisHandler.QuickCheck)
			api.POST("/vocabulary/extract", cfg.AnalysisHandler.ExtractVocabulary)
		}

		// Progress, mastery, persona
		if cfg.SessionHandler != nil {
			api.POST("/compare-progress", cfg.SessionHandler.CompareProgress)
			api.GET("/sessions/:id/progress", cfg.SessionHandler.ListProgress)
			api.POST("/sessions/:id/mastery/evaluate", cfg.SessionHandler.EvaluateMastery)
			api.GET("/sessions/:id/patterns", cfg.SessionHandler.ListPatterns)
			api.GET("/sessions/:id/persona", cfg.SessionHandler.GetPersona)
			api.PUT("/sessions/:id/persona", cfg.SessionHandler.UpsertPersona)
		}
	}

	return r
}
