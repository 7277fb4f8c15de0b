package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/types"
)

type StudySessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error)
	// GetByUserID returns the user's sessions, most recently logged first.
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudySession, error)
	// SumHoursByCourseID totals logged hours for a course, 0 when none.
	SumHoursByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (float64, error)
	SoftDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error
}

type studySessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewStudySessionRepo(db *gorm.DB, baseLog *logger.Logger) StudySessionRepo {
	repoLog := baseLog.With("repo", "StudySessionRepo")
	return &studySessionRepo{db: db, log: repoLog}
}

func (sr *studySessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sessions) == 0 {
		return []*types.StudySession{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}

	return sessions, nil
}

func (sr *studySessionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudySession, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*types.StudySession

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (sr *studySessionRepo) SumHoursByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (float64, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var total *float64

	if err := transaction.WithContext(ctx).
		Model(&types.StudySession{}).
		Select("SUM(hours_studied)").
		Where("course_id = ?", courseID).
		Scan(&total).Error; err != nil {
		return 0, err
	}

	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (sr *studySessionRepo) SoftDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(courseIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("course_id IN ?", courseIDs).
		Delete(&types.StudySession{}).Error; err != nil {
		return err
	}

	return nil
}
