package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/repos"
	"github.com/yungbote/studypulse-backend/internal/types"
)

var ErrCourseNotFound = fmt.Errorf("course not found")

type CourseService interface {
	CreateCourse(ctx context.Context, userID uuid.UUID, name string, totalHoursRequired float64, deadline time.Time) (*types.Course, error)
	GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error)
	DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.Course, error)
}

type courseService struct {
	db          *gorm.DB
	log         *logger.Logger
	courseRepo  repos.CourseRepo
	sessionRepo repos.StudySessionRepo
}

func NewCourseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	sessionRepo repos.StudySessionRepo,
) CourseService {
	serviceLog := baseLog.With("service", "CourseService")
	return &courseService{
		db:          db,
		log:         serviceLog,
		courseRepo:  courseRepo,
		sessionRepo: sessionRepo,
	}
}

func (cs *courseService) CreateCourse(ctx context.Context, userID uuid.UUID, name string, totalHoursRequired float64, deadline time.Time) (*types.Course, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("a course name is required")
	}
	if totalHoursRequired < 0 {
		return nil, fmt.Errorf("total hours required must not be negative")
	}

	course := &types.Course{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		TotalHoursRequired: totalHoursRequired,
		Deadline:           deadline,
	}
	created, err := cs.courseRepo.Create(ctx, nil, []*types.Course{course})
	if err != nil {
		return nil, fmt.Errorf("create course: %w", err)
	}
	return created[0], nil
}

func (cs *courseService) GetUserCourses(ctx context.Context, userID uuid.UUID) ([]*types.Course, error) {
	courses, err := cs.courseRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, fmt.Errorf("load courses: %w", err)
	}
	return courses, nil
}

// DeleteCourse removes the user's course and its logged sessions in one
// transaction. Returns ErrCourseNotFound when the course does not exist
// or belongs to another user.
func (cs *courseService) DeleteCourse(ctx context.Context, userID, courseID uuid.UUID) (*types.Course, error) {
	var deleted *types.Course
	err := cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		courses, gErr := cs.courseRepo.GetByIDs(ctx, tx, []uuid.UUID{courseID})
		if gErr != nil {
			return fmt.Errorf("load course: %w", gErr)
		}
		if len(courses) == 0 || courses[0].UserID != userID {
			return ErrCourseNotFound
		}
		deleted = courses[0]
		if sErr := cs.sessionRepo.SoftDeleteByCourseIDs(ctx, tx, []uuid.UUID{courseID}); sErr != nil {
			return fmt.Errorf("delete course sessions: %w", sErr)
		}
		if dErr := cs.courseRepo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{courseID}); dErr != nil {
			return fmt.Errorf("delete course: %w", dErr)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
