package app

import (
	"github.com/yungbote/writemate-backend/internal/platform/logger"
	"github.com/yungbote/writemate-backend/internal/services"
)

type Services struct {
	LLM      services.FeedbackLLM
	Ingestor services.AnalysisIngestor
	Mastery  services.PatternMastery
	Progress services.ProgressComparator
	Analysis services.AnalysisService
	Document services.DocumentService
	Session  services.SessionService
}

func wireServices(log *logger.Logger, cfg Config, r Repos, c Clients) Services {
	log.Info("Wiring services...")

	llm := services.NewFeedbackLLM(log, c.OpenAI, c.Prompts, cfg.LLMModel, cfg.LLMModelQuick)
	ingestor := services.NewAnalysisIngestor(log, r.Document, r.Annotation, r.Pattern, r.ProgressMetric, r.AnalysisHistory)
	mastery := services.NewPatternMastery(log, r.Pattern, r.Document, r.Annotation, nil, c.Events)

	return Services{
		LLM:      llm,
		Ingestor: ingestor,
		Mastery:  mastery,
		Progress: services.NewProgressComparator(log, r.ProgressMetric, mastery),
		Analysis: services.NewAnalysisService(log, r.Document, r.Pattern, r.Persona, llm, ingestor, c.Events),
		Document: services.NewDocumentService(log, r.Session, r.Document),
		Session:  services.NewSessionService(log, r.Session, r.Pattern, r.Persona),
	}
}
