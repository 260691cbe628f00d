package domain

// Roles carried by authenticated identities
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
)

// CtxKey namespaces the values the auth middleware stores on the request
// context.
type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
)
