package domain

// Session roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents a member of the team directory.
type User struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department"`
	JoinDate   Date   `json:"joinDate"`
	Avatar     string `json:"avatar,omitempty"`
	IsActive   bool   `json:"isActive"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// UserPatch lists the user fields an update may change.
type UserPatch struct {
	Name       *string `json:"name,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	Department *string `json:"department,omitempty"`
	JoinDate   *Date   `json:"joinDate,omitempty"`
	Avatar     *string `json:"avatar,omitempty"`
	IsActive   *bool   `json:"isActive,omitempty"`
}

// Apply merges the patch into u.
func (p UserPatch) Apply(u *User) {
	if u == nil {
		return
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Department != nil {
		u.Department = *p.Department
	}
	if p.JoinDate != nil {
		u.JoinDate = *p.JoinDate
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
