package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/studypulse-backend/internal/analysis"
	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/repos"
	"github.com/yungbote/studypulse-backend/internal/types"
)

const analysisCallType = "course_risk_analysis"

// AnalysisService turns a user's logged hours into the per-course
// dashboard records: derived metrics plus a narrative insight from the
// text-generation provider, with a deterministic rule-based fallback.
type AnalysisService interface {
	AnalyzeUserCourses(ctx context.Context, userID uuid.UUID) ([]types.CourseAnalysis, error)
}

type analysisService struct {
	db             *gorm.DB
	log            *logger.Logger
	courseRepo     repos.CourseRepo
	sessionRepo    repos.StudySessionRepo
	aiCallLogRepo  repos.AICallLogRepo
	generator      TextGenerator
	maxConcurrency int
}

func NewAnalysisService(
	db *gorm.DB,
	baseLog *logger.Logger,
	courseRepo repos.CourseRepo,
	sessionRepo repos.StudySessionRepo,
	aiCallLogRepo repos.AICallLogRepo,
	generator TextGenerator,
	maxConcurrency int,
) AnalysisService {
	serviceLog := baseLog.With("service", "AnalysisService")
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &analysisService{
		db:             db,
		log:            serviceLog,
		courseRepo:     courseRepo,
		sessionRepo:    sessionRepo,
		aiCallLogRepo:  aiCallLogRepo,
		generator:      generator,
		maxConcurrency: maxConcurrency,
	}
}

// AnalyzeUserCourses analyzes every course the user owns, preserving the
// fetch order. Generator failures degrade a single course's narrative;
// only data-access errors abort the request.
func (s *analysisService) AnalyzeUserCourses(ctx context.Context, userID uuid.UUID) ([]types.CourseAnalysis, error) {
	courses, err := s.courseRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	results := make([]types.CourseAnalysis, len(courses))
	if len(courses) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrency)
	for i, course := range courses {
		g.Go(func() error {
			record, aErr := s.analyzeCourse(gctx, course)
			if aErr != nil {
				return aErr
			}
			results[i] = record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *analysisService) analyzeCourse(ctx context.Context, course *types.Course) (types.CourseAnalysis, error) {
	studied, err := s.sessionRepo.SumHoursByCourseID(ctx, nil, course.ID)
	if err != nil {
		return types.CourseAnalysis{}, err
	}

	metrics := analysis.ComputeMetrics(course.TotalHoursRequired, course.Deadline, studied, time.Now())
	insight := s.generateInsight(ctx, course, studied, metrics)

	return types.CourseAnalysis{
		CourseID:           course.ID,
		Course:             course.Name,
		Deadline:           course.Deadline.Format("2006-01-02"),
		HoursStudied:       analysis.Round2(studied),
		HoursRemaining:     analysis.Round2(metrics.HoursRemaining),
		TotalHoursRequired: course.TotalHoursRequired,
		ProgressPct:        metrics.ProgressPct,
		DaysLeft:           metrics.DaysLeft,
		DailyHoursNeeded:   metrics.DailyHoursNeeded,
		AI:                 insight,
	}, nil
}

// generateInsight never fails: any provider error or malformed output is
// recovered locally with the rule-based classifier and a templated
// summary.
func (s *analysisService) generateInsight(ctx context.Context, course *types.Course, studied float64, metrics analysis.CourseMetrics) analysis.Insight {
	prompt := analysis.BuildPrompt(course.Name, course.TotalHoursRequired, studied, metrics)

	result, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.log.Warn("Text generation failed, using rule-based fallback",
			"course_id", course.ID,
			"error", err,
		)
		s.recordCall(ctx, course, prompt, "", nil, err)
		return analysis.Insight{
			Summary: analysis.FallbackSummary(metrics),
			Risk:    analysis.ClassifyRisk(metrics.DaysLeft, metrics.DailyHoursNeeded),
		}
	}
	s.recordCall(ctx, course, prompt, result.Text, &result.Usage, nil)

	insight := analysis.ParseInsight(result.Text)
	if !analysis.ValidRisk(string(insight.Risk)) {
		s.log.Debug("Generator returned unknown risk tier, reclassifying",
			"course_id", course.ID,
			"risk", insight.Risk,
		)
		insight.Risk = analysis.ClassifyRisk(metrics.DaysLeft, metrics.DailyHoursNeeded)
	}
	return insight
}

// recordCall persists the call for operational visibility. Best effort:
// a failed write never affects the analysis.
func (s *analysisService) recordCall(ctx context.Context, course *types.Course, prompt, response string, usage *TokenUsage, callErr error) {
	entry := &types.AICallLog{
		ID:       uuid.New(),
		UserID:   &course.UserID,
		CourseID: &course.ID,
		CallType: analysisCallType,
		Model:    s.generator.Model(),
		Prompt:   prompt,
		Response: response,
		Success:  callErr == nil,
	}
	if callErr != nil {
		entry.Error = callErr.Error()
	}
	if usage != nil {
		if raw, mErr := json.Marshal(usage); mErr == nil {
			entry.Usage = datatypes.JSON(raw)
		}
	}
	if _, err := s.aiCallLogRepo.Create(ctx, nil, []*types.AICallLog{entry}); err != nil {
		s.log.Warn("Failed to record AI call log", "course_id", course.ID, "error", err)
	}
}
