package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/projectgate-backend/internal/data/repos/testutil"
	"github.com/yungbote/projectgate-backend/internal/domain"
)

func TestSubmissionRepoCorpusExcludesRejected(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, tx, "subrepo-corpus@example.com", domain.RoleStudent)
	first := testutil.SeedSubmission(t, ctx, tx, student.ID, nil, "First", domain.SubmissionSubmitted)
	testutil.SeedSubmission(t, ctx, tx, student.ID, nil, "Second", domain.SubmissionRejected)
	third := testutil.SeedSubmission(t, ctx, tx, student.ID, nil, "Third", domain.SubmissionApproved)

	corpus, err := repo.ListCorpus(ctx, tx)
	if err != nil {
		t.Fatalf("ListCorpus: %v", err)
	}
	if len(corpus) != 2 {
		t.Fatalf("ListCorpus: expected 2, got %d", len(corpus))
	}
	for _, s := range corpus {
		if s.Status == domain.SubmissionRejected {
			t.Fatalf("ListCorpus: rejected submission leaked into corpus: %+v", s)
		}
		if s.Student == nil {
			t.Fatalf("ListCorpus: student not preloaded: %+v", s)
		}
	}
	if corpus[0].ID != first.ID {
		t.Fatalf("ListCorpus: expected oldest first, got %+v", corpus[0])
	}
	_ = third
}

func TestSubmissionRepoStatusAndQueues(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, tx, "subrepo-queue@example.com", domain.RoleStudent)
	g := testutil.SeedGroup(t, ctx, tx, "Queue Group", nil, []*domain.User{student})

	grouped := testutil.SeedSubmission(t, ctx, tx, student.ID, testutil.PtrUUID(g.ID), "Grouped", domain.SubmissionSubmitted)
	orphan := testutil.SeedSubmission(t, ctx, tx, student.ID, nil, "Orphan", domain.SubmissionSubmitted)

	pending, err := repo.ListByGroupIDsWithStatus(ctx, tx, []uuid.UUID{g.ID}, domain.SubmissionSubmitted)
	if err != nil {
		t.Fatalf("ListByGroupIDsWithStatus: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != grouped.ID {
		t.Fatalf("ListByGroupIDsWithStatus: unexpected result: %+v", pending)
	}

	unappointed, err := repo.ListExcludingGroupIDs(ctx, tx, []uuid.UUID{g.ID})
	if err != nil {
		t.Fatalf("ListExcludingGroupIDs: %v", err)
	}
	found := false
	for _, s := range unappointed {
		if s.ID == grouped.ID {
			t.Fatalf("ListExcludingGroupIDs: in-group submission leaked: %+v", s)
		}
		if s.ID == orphan.ID {
			found = true
		}
	}
	if !found {
		t.Fatalf("ListExcludingGroupIDs: ungrouped submission missing")
	}

	if err := repo.UpdateStatus(ctx, tx, grouped.ID, domain.SubmissionApproved); err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	got, err := repo.GetByIDs(ctx, tx, []uuid.UUID{grouped.ID})
	if err != nil {
		t.Fatalf("GetByIDs: %v", err)
	}
	if len(got) != 1 || got[0].Status != domain.SubmissionApproved {
		t.Fatalf("GetByIDs after UpdateStatus: %+v", got)
	}

	mine, err := repo.ListByStudentAndStatuses(ctx, tx, student.ID, []domain.SubmissionStatus{domain.SubmissionApproved})
	if err != nil {
		t.Fatalf("ListByStudentAndStatuses: %v", err)
	}
	if len(mine) != 1 || mine[0].ID != grouped.ID {
		t.Fatalf("ListByStudentAndStatuses: unexpected result: %+v", mine)
	}
}

func TestSubmissionRepoTopScoredOrdering(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewSubmissionRepo(db, testutil.Logger(t))
	ctx := context.Background()

	student := testutil.SeedUser(t, ctx, tx, "subrepo-top@example.com", domain.RoleStudent)
	mid := testutil.SeedSubmissionScored(t, ctx, tx, student.ID, "Mid", domain.SubmissionCompleted, 8, 8, 7)
	top := testutil.SeedSubmissionScored(t, ctx, tx, student.ID, "Top", domain.SubmissionCompleted, 6, 6, 9)
	unscored := testutil.SeedSubmission(t, ctx, tx, student.ID, nil, "Unscored", domain.SubmissionArchived)

	got, err := repo.ListByStatusesTopScored(ctx, tx, []domain.SubmissionStatus{domain.SubmissionCompleted, domain.SubmissionArchived}, 10)
	if err != nil {
		t.Fatalf("ListByStatusesTopScored: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("ListByStatusesTopScored: expected 3, got %d", len(got))
	}
	if got[0].ID != top.ID || got[1].ID != mid.ID {
		t.Fatalf("ListByStatusesTopScored: wrong order: %+v", got)
	}
	if got[2].ID != unscored.ID {
		t.Fatalf("ListByStatusesTopScored: unscored should sort last: %+v", got)
	}
}
