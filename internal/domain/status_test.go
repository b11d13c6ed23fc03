package domain

import "testing"

func TestProjectStatusTransitions(t *testing.T) {
	cases := []struct {
		from, to ProjectStatus
		ok       bool
	}{
		{ProjectInProgress, ProjectCompleted, true},
		{ProjectCompleted, ProjectArchived, true},
		{ProjectInProgress, ProjectArchived, false},
		{ProjectCompleted, ProjectCompleted, false},
		{ProjectArchived, ProjectCompleted, false},
		{ProjectArchived, ProjectArchived, false},
		{ProjectCompleted, ProjectInProgress, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanTransitionTo(tc.to); got != tc.ok {
			t.Errorf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.ok)
		}
	}
}

func TestMirrorSubmissionStatus(t *testing.T) {
	if s, ok := ProjectCompleted.MirrorSubmissionStatus(); !ok || s != SubmissionCompleted {
		t.Errorf("Completed mirror = %q, %v", s, ok)
	}
	if s, ok := ProjectArchived.MirrorSubmissionStatus(); !ok || s != SubmissionArchived {
		t.Errorf("Archived mirror = %q, %v", s, ok)
	}
	if _, ok := ProjectInProgress.MirrorSubmissionStatus(); ok {
		t.Errorf("In Progress should not mirror")
	}
}

func TestRoleCapabilities(t *testing.T) {
	if !RoleTeacher.Can(CapReviewSubmissions) {
		t.Errorf("teacher cannot review")
	}
	if !RoleAdmin.Can(CapReviewSubmissions) {
		t.Errorf("admin cannot review")
	}
	if RoleStudent.Can(CapReviewSubmissions) {
		t.Errorf("student can review")
	}
	if !RoleStudent.Can(CapSubmitProjects) {
		t.Errorf("student cannot submit")
	}
	if _, ok := ParseRole("HOD/Admin"); ok {
		t.Errorf("unknown role string parsed")
	}
}

func TestReviewDecision(t *testing.T) {
	for _, s := range []SubmissionStatus{SubmissionApproved, SubmissionRejected} {
		if !s.IsReviewDecision() {
			t.Errorf("%s not a review decision", s)
		}
	}
	for _, s := range []SubmissionStatus{SubmissionSubmitted, SubmissionCompleted, SubmissionArchived} {
		if s.IsReviewDecision() {
			t.Errorf("%s should not be a review decision", s)
		}
	}
}
