package domain

// UserRole gates access to the administrative API.
type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleOperator UserRole = "operator"
)

// User is a panel operator. Only admins may reach the v1 API today; the
// operator role exists for read-only access later.
type User struct {
	UserID       string   `json:"userID"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	IsActive     bool     `json:"isActive"`
	AuditFields
}
