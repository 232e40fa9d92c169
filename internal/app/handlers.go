package app

import (
	apphttp "github.com/yungbote/writemate-backend/internal/http"
	httpH "github.com/yungbote/writemate-backend/internal/http/handlers"
	"github.com/yungbote/writemate-backend/internal/observability"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type Handlers struct {
	Health   *httpH.HealthHandler
	Document *httpH.DocumentHandler
	Analysis *httpH.AnalysisHandler
	Session  *httpH.SessionHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:   httpH.NewHealthHandler(),
		Document: httpH.NewDocumentHandler(s.Document),
		Analysis: httpH.NewAnalysisHandler(s.Analysis),
		Session:  httpH.NewSessionHandler(s.Session, s.Progress, s.Mastery),
	}
}

func routerConfig(log *logger.Logger, cfg Config, h Handlers, m *observability.Metrics) apphttp.RouterConfig {
	return apphttp.RouterConfig{
		Log:             log,
		Metrics:         m,
		ServiceName:     cfg.ServiceName,
		AllowedOrigins:  cfg.AllowedOrigins,
		HealthHandler:   h.Health,
		DocumentHandler: h.Document,
		AnalysisHandler: h.Analysis,
		SessionHandler:  h.Session,
	}
}
