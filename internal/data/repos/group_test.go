package repos

import (
	"context"
	"testing"

	"github.com/yungbote/projectgate-backend/internal/data/repos/testutil"
	"github.com/yungbote/projectgate-backend/internal/domain"
)

func TestGroupRepoMembership(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	repo := NewGroupRepo(db, testutil.Logger(t))
	ctx := context.Background()

	teacher := testutil.SeedUser(t, ctx, tx, "grouprepo-teacher@example.com", domain.RoleTeacher)
	student := testutil.SeedUser(t, ctx, tx, "grouprepo-student@example.com", domain.RoleStudent)
	outsider := testutil.SeedUser(t, ctx, tx, "grouprepo-outsider@example.com", domain.RoleStudent)

	g := testutil.SeedGroup(t, ctx, tx, "CS Final Year", []*domain.User{teacher}, []*domain.User{student})
	other := testutil.SeedGroup(t, ctx, tx, "EE Final Year", nil, nil)

	studentGroups, err := repo.ListStudentGroups(ctx, tx, student.ID)
	if err != nil {
		t.Fatalf("ListStudentGroups: %v", err)
	}
	if len(studentGroups) != 1 || studentGroups[0].ID != g.ID {
		t.Fatalf("ListStudentGroups: unexpected result: %+v", studentGroups)
	}

	teacherGroups, err := repo.ListTeacherGroups(ctx, tx, teacher.ID)
	if err != nil {
		t.Fatalf("ListTeacherGroups: %v", err)
	}
	if len(teacherGroups) != 1 || teacherGroups[0].ID != g.ID {
		t.Fatalf("ListTeacherGroups: unexpected result: %+v", teacherGroups)
	}

	none, err := repo.ListStudentGroups(ctx, tx, outsider.ID)
	if err != nil {
		t.Fatalf("ListStudentGroups (outsider): %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("ListStudentGroups (outsider): expected none, got %+v", none)
	}

	if err := repo.AddStudents(ctx, tx, other.ID, []*domain.User{outsider}); err != nil {
		t.Fatalf("AddStudents: %v", err)
	}
	added, err := repo.ListStudentGroups(ctx, tx, outsider.ID)
	if err != nil {
		t.Fatalf("ListStudentGroups (after add): %v", err)
	}
	if len(added) != 1 || added[0].ID != other.ID {
		t.Fatalf("ListStudentGroups (after add): unexpected result: %+v", added)
	}

	isTeacher, err := repo.IsTeacherOf(ctx, tx, g.ID, teacher.ID)
	if err != nil {
		t.Fatalf("IsTeacherOf: %v", err)
	}
	if !isTeacher {
		t.Fatalf("IsTeacherOf: expected true")
	}

	isTeacher, err = repo.IsTeacherOf(ctx, tx, other.ID, teacher.ID)
	if err != nil {
		t.Fatalf("IsTeacherOf (other group): %v", err)
	}
	if isTeacher {
		t.Fatalf("IsTeacherOf (other group): expected false")
	}
}
