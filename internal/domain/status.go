package domain

// SubmissionStatus is the lifecycle of a student submission. Once a submission
// leaves Submitted it never returns there; Completed and Archived mirror the
// linked project's terminal states.
type SubmissionStatus string

const (
	SubmissionSubmitted SubmissionStatus = "Submitted"
	SubmissionApproved  SubmissionStatus = "Approved"
	SubmissionRejected  SubmissionStatus = "Rejected"
	SubmissionCompleted SubmissionStatus = "Completed"
	SubmissionArchived  SubmissionStatus = "Archived"
)

func (s SubmissionStatus) Valid() bool {
	switch s {
	case SubmissionSubmitted, SubmissionApproved, SubmissionRejected,
		SubmissionCompleted, SubmissionArchived:
		return true
	}
	return false
}

// ReviewDecision is the subset of submission statuses a reviewer may set.
func (s SubmissionStatus) IsReviewDecision() bool {
	return s == SubmissionApproved || s == SubmissionRejected
}

// ProjectStatus moves strictly forward: In Progress -> Completed -> Archived.
type ProjectStatus string

const (
	ProjectInProgress ProjectStatus = "In Progress"
	ProjectCompleted  ProjectStatus = "Completed"
	ProjectArchived   ProjectStatus = "Archived"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectInProgress, ProjectCompleted, ProjectArchived:
		return true
	}
	return false
}

// CanTransitionTo enforces the forward-only project state machine; skipping
// Completed is not allowed.
func (s ProjectStatus) CanTransitionTo(next ProjectStatus) bool {
	switch next {
	case ProjectCompleted:
		return s == ProjectInProgress
	case ProjectArchived:
		return s == ProjectCompleted
	}
	return false
}

// MirrorSubmissionStatus is the submission status pushed back when a project
// reaches a terminal state.
func (s ProjectStatus) MirrorSubmissionStatus() (SubmissionStatus, bool) {
	switch s {
	case ProjectCompleted:
		return SubmissionCompleted, true
	case ProjectArchived:
		return SubmissionArchived, true
	}
	return "", false
}

// ProjectCategory is the closed set of project categories.
type ProjectCategory string

const (
	CategoryWebDevelopment  ProjectCategory = "Web Development"
	CategoryMobileApp       ProjectCategory = "Mobile App"
	CategoryMachineLearning ProjectCategory = "Machine Learning"
	CategoryCybersecurity   ProjectCategory = "Cybersecurity"
	CategoryIoT             ProjectCategory = "IoT"
	CategoryOther           ProjectCategory = "Other"
)

func (c ProjectCategory) Valid() bool {
	switch c {
	case CategoryWebDevelopment, CategoryMobileApp, CategoryMachineLearning,
		CategoryCybersecurity, CategoryIoT, CategoryOther:
		return true
	}
	return false
}
