package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/studypulse-backend/internal/repos/testutil"
	"github.com/yungbote/studypulse-backend/internal/types"
)

func TestCourseRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCourseRepo(db, testutil.Logger(t))

	user := testutil.SeedUser(t, tx)
	otherUser := testutil.SeedUser(t, tx)
	deadline := time.Now().AddDate(0, 0, 30)

	first := &types.Course{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Name:               "Linear Algebra",
		TotalHoursRequired: 100,
		Deadline:           deadline,
	}
	second := &types.Course{
		ID:                 uuid.New(),
		UserID:             user.ID,
		Name:               "Statistics",
		TotalHoursRequired: 60,
		Deadline:           deadline,
	}
	foreign := &types.Course{
		ID:                 uuid.New(),
		UserID:             otherUser.ID,
		Name:               "History",
		TotalHoursRequired: 20,
		Deadline:           deadline,
	}

	created, err := repo.Create(ctx, tx, []*types.Course{first, second, foreign})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("Create: expected 3, got %d", len(created))
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{first.ID, second.ID}); err != nil || len(rows) != 2 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	rows, err := repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("GetByUserID: expected 2 courses, got %d", len(rows))
	}
	if rows[0].ID != first.ID || rows[1].ID != second.ID {
		t.Fatalf("GetByUserID: expected creation order, got %s then %s", rows[0].Name, rows[1].Name)
	}

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{first.ID}); err != nil {
		t.Fatalf("SoftDeleteByIDs: %v", err)
	}
	rows, err = repo.GetByUserID(ctx, tx, user.ID)
	if err != nil {
		t.Fatalf("GetByUserID after delete: %v", err)
	}
	if len(rows) != 1 || rows[0].ID != second.ID {
		t.Fatalf("GetByUserID after delete: expected only %s, got %d rows", second.Name, len(rows))
	}
}
