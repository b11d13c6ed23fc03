package domain

// Role is the closed set of account roles. Authorization decisions go through
// capability checks, never raw role comparison.
type Role string

const (
	RoleStudent Role = "Student"
	RoleTeacher Role = "Teacher"
	RoleAdmin   Role = "Admin"
)

// Capability is a single permission grantable to a role.
type Capability string

const (
	CapSubmitProjects    Capability = "submit_projects"
	CapReviewSubmissions Capability = "review_submissions"
	CapArchiveProjects   Capability = "archive_projects"
	CapViewAnalytics     Capability = "view_analytics"
	CapManageGroups      Capability = "manage_groups"
)

var roleCapabilities = map[Role]map[Capability]bool{
	RoleStudent: {
		CapSubmitProjects: true,
	},
	RoleTeacher: {
		CapReviewSubmissions: true,
		CapArchiveProjects:   true,
		CapViewAnalytics:     true,
	},
	RoleAdmin: {
		CapReviewSubmissions: true,
		CapArchiveProjects:   true,
		CapViewAnalytics:     true,
		CapManageGroups:      true,
	},
}

func (r Role) Valid() bool {
	_, ok := roleCapabilities[r]
	return ok
}

func (r Role) Can(c Capability) bool {
	caps, ok := roleCapabilities[r]
	return ok && caps[c]
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
