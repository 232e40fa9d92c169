package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/writemate-backend/internal/data/repos/feedback"
	"github.com/yungbote/writemate-backend/internal/platform/logger"
)

type SessionRepo = feedback.SessionRepo
type DocumentRepo = feedback.DocumentRepo
type AnnotationRepo = feedback.AnnotationRepo
type PatternRepo = feedback.PatternRepo
type ProgressMetricRepo = feedback.ProgressMetricRepo
type AnalysisHistoryRepo = feedback.AnalysisHistoryRepo
type PersonaRepo = feedback.PersonaRepo

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return feedback.NewSessionRepo(db, baseLog)
}
func NewDocumentRepo(db *gorm.DB, baseLog *logger.Logger) DocumentRepo {
	return feedback.NewDocumentRepo(db, baseLog)
}
func NewAnnotationRepo(db *gorm.DB, baseLog *logger.Logger) AnnotationRepo {
	return feedback.NewAnnotationRepo(db, baseLog)
}
func NewPatternRepo(db *gorm.DB, baseLog *logger.Logger) PatternRepo {
	return feedback.NewPatternRepo(db, baseLog)
}
func NewProgressMetricRepo(db *gorm.DB, baseLog *logger.Logger) ProgressMetricRepo {
	return feedback.NewProgressMetricRepo(db, baseLog)
}
func NewAnalysisHistoryRepo(db *gorm.DB, baseLog *logger.Logger) AnalysisHistoryRepo {
	return feedback.NewAnalysisHistoryRepo(db, baseLog)
}
func NewPersonaRepo(db *gorm.DB, baseLog *logger.Logger) PersonaRepo {
	return feedback.NewPersonaRepo(db, baseLog)
}
