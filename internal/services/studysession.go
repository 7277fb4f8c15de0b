package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/repos"
	"github.com/yungbote/studypulse-backend/internal/types"
)

type StudySessionService interface {
	LogSession(ctx context.Context, userID, courseID uuid.UUID, hoursStudied float64, note string, sessionDate time.Time) (*types.StudySession, error)
	GetUserSessions(ctx context.Context, userID uuid.UUID) ([]*types.StudySession, error)
}

type studySessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	sessionRepo repos.StudySessionRepo
}

func NewStudySessionService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	sessionRepo repos.StudySessionRepo,
) StudySessionService {
	serviceLog := baseLog.With("service", "StudySessionService")
	return &studySessionService{
		db:          db,
		log:         serviceLog,
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
	}
}

// LogSession records hours against one of the user's courses. A zero
// sessionDate defaults to today.
func (ss *studySessionService) LogSession(ctx context.Context, userID, courseID uuid.UUID, hoursStudied float64, note string, sessionDate time.Time) (*types.StudySession, error) {
	if hoursStudied < 0 {
		return nil, fmt.Errorf("hours studied must not be negative")
	}

	courses, gErr := ss.courseRepo.GetByIDs(ctx, nil, []uuid.UUID{courseID})
	if gErr != nil {
		return nil, fmt.Errorf("load course: %w", gErr)
	}
	if len(courses) == 0 || courses[0].UserID != userID {
		return nil, ErrCourseNotFound
	}

	if sessionDate.IsZero() {
		sessionDate = time.Now()
	}

	session := &types.StudySession{
		ID:           uuid.New(),
		UserID:       userID,
		CourseID:     courseID,
		HoursStudied: hoursStudied,
		Note:         note,
		SessionDate:  sessionDate,
	}
	created, err := ss.sessionRepo.Create(ctx, nil, []*types.StudySession{session})
	if err != nil {
		return nil, fmt.Errorf("log session: %w", err)
	}
	return created[0], nil
}

func (ss *studySessionService) GetUserSessions(ctx context.Context, userID uuid.UUID) ([]*types.StudySession, error) {
	sessions, err := ss.sessionRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return sessions, nil
}
