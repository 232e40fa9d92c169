package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/writemate-backend/internal/data/repos"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type Repos struct {
	Session         repos.SessionRepo
	Document        repos.DocumentRepo
	Annotation      repos.AnnotationRepo
	Pattern         repos.PatternRepo
	ProgressMetric  repos.ProgressMetricRepo
	AnalysisHistory repos.AnalysisHistoryRepo
	Persona         repos.PersonaRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Session:         repos.NewSessionRepo(db, log),
		Document:        repos.NewDocumentRepo(db, log),
		Annotation:      repos.NewAnnotationRepo(db, log),
		Pattern:         repos.NewPatternRepo(db, log),
		ProgressMetric:  repos.NewProgressMetricRepo(db, log),
		AnalysisHistory: repos.NewAnalysisHistoryRepo(db, log),
		Persona:         repos.NewPersonaRepo(db, log),
	}
}
