package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/studypulse-backend/internal/repos/testutil"
	"github.com/yungbote/studypulse-backend/internal/types"
)

func TestStudySessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewStudySessionRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, tx)
	deadline := time.Now().AddDate(0, 0, 30)
	course := testutil.SeedCourse(t, tx, user.ID, "Linear Algebra", 100, deadline)
	emptyCourse := testutil.SeedCourse(t, tx, user.ID, "Statistics", 60, deadline)

	today := time.Now()
	first := &types.StudySession{
		ID:           uuid.New(),
		UserID:       user.ID,
		CourseID:     course.ID,
		HoursStudied: 2.5,
		Note:         "Chapter 1",
		SessionDate:  today.AddDate(0, 0, -2),
		CreatedAt:    today.Add(-2 * time.Hour),
	}
	second := &types.StudySession{
		ID:           uuid.New(),
		UserID:       user.ID,
		CourseID:     course.ID,
		HoursStudied: 1.25,
		SessionDate:  today.AddDate(0, 0, -1),
		CreatedAt:    today.Add(-1 * time.Hour),
	}

	created, err := repo.Create(ctx, tx, []*types.StudySession{first, second})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("Create: expected 2, got %d", len(created))
	}

	rows, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetByUserID: expected 2 sessions, got %d", len(rows))
	}
	if rows[0].ID != second.ID {
		t.Fatalf("GetByUserID: expected most recent first, got %s", rows[0].ID)
	}

	sum, err := repo.SumHoursByCourseID(ctx, tx, course.ID)
	if err != nil {
		t.Fatalf("SumHoursByCourseID: %v", err)
	}
	if sum != 3.75 {
		t.Fatalf("SumHoursByCourseID: expected 3.75, got %v", sum)
	}

	sum, err = repo.SumHoursByCourseID(ctx, tx, emptyCourse.ID)
	if err != nil {
		t.Fatalf("SumHoursByCourseID empty course: %v", err)
	}
	if sum != 0 {
		t.Fatalf("SumHoursByCourseID empty course: expected 0, got %v", sum)
	}

	if err := repo.SoftDeleteByCourseIDs(ctx, tx, []uuid.UUID{course.ID}); err != nil {
		t.Fatalf("SoftDeleteByCourseIDs: %v", err)
	}
	rows, err = repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID after delete: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("GetByUserID after delete: expected 0 sessions, got %d", len(rows))
	}
}
