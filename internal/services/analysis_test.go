package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/studypulse-backend/internal/analysis"
	"github.com/yungbote/studypulse-backend/internal/logger"
	"github.com/yungbote/studypulse-backend/internal/types"
)

type fakeCourseRepo struct {
	courses []*types.Course
	err     error
}

func (f *fakeCourseRepo) Create(ctx context.Context, tx *gorm.DB, courses []*types.Course) ([]*types.Course, error) {
	return courses, nil
}

func (f *fakeCourseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) ([]*types.Course, error) {
	var out []*types.Course
	for _, c := range f.courses {
		for _, id := range courseIDs {
			if c.ID == id {
				out = append(out, c)
			}
		}
	}
	return out, nil
}

func (f *fakeCourseRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Course, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.courses, nil
}

func (f *fakeCourseRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	return nil
}

type fakeSessionRepo struct {
	hoursByCourse map[uuid.UUID]float64
	err           error
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.StudySession) ([]*types.StudySession, error) {
	return sessions, nil
}

func (f *fakeSessionRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.StudySession, error) {
	return nil, nil
}

func (f *fakeSessionRepo) SumHoursByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) (float64, error) {
	if f.err != nil {
		return 0, f.err
	}
	return f.hoursByCourse[courseID], nil
}

func (f *fakeSessionRepo) SoftDeleteByCourseIDs(ctx context.Context, tx *gorm.DB, courseIDs []uuid.UUID) error {
	return nil
}

type fakeAICallLogRepo struct {
	mu      sync.Mutex
	entries []*types.AICallLog
}

func (f *fakeAICallLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.AICallLog) ([]*types.AICallLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, logs...)
	return logs, nil
}

func (f *fakeAICallLogRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.entries)
}

// mockGenerator returns canned responses keyed by course name, which the
// prompt always contains. An empty map makes every call fail.
type mockGenerator struct {
	mu        sync.Mutex
	responses map[string]string
	calls     int
}

func (m *mockGenerator) GenerateText(ctx context.Context, prompt string) (*TextResult, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	for name, resp := range m.responses {
		if strings.Contains(prompt, "Course: "+name) {
			return &TextResult{Text: resp, Usage: TokenUsage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}}, nil
		}
	}
	return nil, errors.New("generator unavailable")
}

func (m *mockGenerator) Model() string { return "mock-model" }

func (m *mockGenerator) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("test")
	if err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	return log
}

func newTestCourse(userID uuid.UUID, name string, totalHours float64, deadline time.Time) *types.Course {
	return &types.Course{
		ID:                 uuid.New(),
		UserID:             userID,
		Name:               name,
		TotalHoursRequired: totalHours,
		Deadline:           deadline,
	}
}

func TestAnalyzeUserCoursesNoCourses(t *testing.T) {
	userID := uuid.New()
	gen := &mockGenerator{}
	callLog := &fakeAICallLogRepo{}
	svc := NewAnalysisService(nil, testLogger(t), &fakeCourseRepo{}, &fakeSessionRepo{}, callLog, gen, 4)

	records, err := svc.AnalyzeUserCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if gen.callCount() != 0 {
		t.Fatalf("expected no generator calls, got %d", gen.callCount())
	}
	if callLog.count() != 0 {
		t.Fatalf("expected no call log entries, got %d", callLog.count())
	}
}

func TestAnalyzeUserCoursesHappyPath(t *testing.T) {
	userID := uuid.New()
	deadline := time.Now().AddDate(0, 0, 20)
	course := newTestCourse(userID, "Linear Algebra", 100, deadline)

	gen := &mockGenerator{responses: map[string]string{
		"Linear Algebra": `{"summary": "Solid pace, keep it up.", "risk": "Low"}`,
	}}
	callLog := &fakeAICallLogRepo{}
	svc := NewAnalysisService(nil, testLogger(t),
		&fakeCourseRepo{courses: []*types.Course{course}},
		&fakeSessionRepo{hoursByCourse: map[uuid.UUID]float64{course.ID: 40}},
		callLog, gen, 4)

	records, err := svc.AnalyzeUserCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	if r.CourseID != course.ID || r.Course != "Linear Algebra" {
		t.Fatalf("unexpected course identity: %+v", r)
	}
	if r.HoursStudied != 40 || r.HoursRemaining != 60 || r.ProgressPct != 40 {
		t.Fatalf("unexpected metrics: %+v", r)
	}
	if r.Deadline != deadline.Format("2006-01-02") {
		t.Fatalf("unexpected deadline: %q", r.Deadline)
	}
	if r.AI.Summary != "Solid pace, keep it up." || r.AI.Risk != analysis.RiskLow {
		t.Fatalf("unexpected insight: %+v", r.AI)
	}

	if callLog.count() != 1 {
		t.Fatalf("expected 1 call log entry, got %d", callLog.count())
	}
	entry := callLog.entries[0]
	if !entry.Success || entry.Model != "mock-model" || entry.CallType != "course_risk_analysis" {
		t.Fatalf("unexpected call log entry: %+v", entry)
	}
	if entry.Usage == nil {
		t.Fatal("expected usage metadata on a successful call")
	}
}

func TestAnalyzeUserCoursesGeneratorFailureFallsBack(t *testing.T) {
	userID := uuid.New()
	deadline := time.Now().AddDate(0, 0, 10)
	course := newTestCourse(userID, "Statistics", 60, deadline)

	gen := &mockGenerator{} // every call errors
	callLog := &fakeAICallLogRepo{}
	svc := NewAnalysisService(nil, testLogger(t),
		&fakeCourseRepo{courses: []*types.Course{course}},
		&fakeSessionRepo{hoursByCourse: map[uuid.UUID]float64{course.ID: 0}},
		callLog, gen, 4)

	records, err := svc.AnalyzeUserCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("expected a full record despite the generator failure, got error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}

	r := records[0]
	// 60h over 10 days needs 6h/day.
	if r.AI.Summary != "Keep going! You need 6h/day to finish on time." {
		t.Fatalf("unexpected fallback summary: %q", r.AI.Summary)
	}
	if r.AI.Risk != analysis.RiskHigh {
		t.Fatalf("expected High risk at 6h/day, got %q", r.AI.Risk)
	}

	if callLog.count() != 1 {
		t.Fatalf("expected the failed call to be logged, got %d entries", callLog.count())
	}
	entry := callLog.entries[0]
	if entry.Success || entry.Error == "" {
		t.Fatalf("expected a failed call log entry, got %+v", entry)
	}
}

func TestAnalyzeUserCoursesUnknownRiskReclassified(t *testing.T) {
	userID := uuid.New()
	deadline := time.Now().AddDate(0, 0, 30)
	course := newTestCourse(userID, "Chemistry", 30, deadline)

	gen := &mockGenerator{responses: map[string]string{
		"Chemistry": `{"summary": "Doing fine.", "risk": "Critical"}`,
	}}
	svc := NewAnalysisService(nil, testLogger(t),
		&fakeCourseRepo{courses: []*types.Course{course}},
		&fakeSessionRepo{hoursByCourse: map[uuid.UUID]float64{course.ID: 15}},
		&fakeAICallLogRepo{}, gen, 4)

	records, err := svc.AnalyzeUserCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	r := records[0]
	if r.AI.Summary != "Doing fine." {
		t.Fatalf("expected the model summary to be kept, got %q", r.AI.Summary)
	}
	// 15h over 30 days is 0.5h/day.
	if r.AI.Risk != analysis.RiskLow {
		t.Fatalf("expected the tier to be reclassified to Low, got %q", r.AI.Risk)
	}
}

func TestAnalyzeUserCoursesPreservesOrder(t *testing.T) {
	userID := uuid.New()
	deadline := time.Now().AddDate(0, 0, 14)

	var courses []*types.Course
	hours := map[uuid.UUID]float64{}
	responses := map[string]string{}
	for i := 0; i < 8; i++ {
		name := fmt.Sprintf("Course %d", i)
		c := newTestCourse(userID, name, 40, deadline)
		courses = append(courses, c)
		hours[c.ID] = float64(i)
		responses[name] = fmt.Sprintf(`{"summary": "Summary for %s.", "risk": "Low"}`, name)
	}

	svc := NewAnalysisService(nil, testLogger(t),
		&fakeCourseRepo{courses: courses},
		&fakeSessionRepo{hoursByCourse: hours},
		&fakeAICallLogRepo{}, &mockGenerator{responses: responses}, 3)

	records, err := svc.AnalyzeUserCourses(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != len(courses) {
		t.Fatalf("expected %d records, got %d", len(courses), len(records))
	}
	for i, r := range records {
		if r.CourseID != courses[i].ID {
			t.Fatalf("record %d out of order: got course %s, want %s", i, r.CourseID, courses[i].ID)
		}
		if r.HoursStudied != float64(i) {
			t.Fatalf("record %d has wrong hours: got %v, want %v", i, r.HoursStudied, float64(i))
		}
	}
}

func TestAnalyzeUserCoursesSessionSumFailureAborts(t *testing.T) {
	userID := uuid.New()
	course := newTestCourse(userID, "History", 20, time.Now().AddDate(0, 0, 7))

	svc := NewAnalysisService(nil, testLogger(t),
		&fakeCourseRepo{courses: []*types.Course{course}},
		&fakeSessionRepo{err: errors.New("connection reset")},
		&fakeAICallLogRepo{}, &mockGenerator{}, 4)

	if _, err := svc.AnalyzeUserCourses(context.Background(), userID); err == nil {
		t.Fatal("expected a data-access error to abort the request")
	}
}
