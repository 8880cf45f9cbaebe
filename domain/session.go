package domain

// SessionUser is the identity of the authenticated workspace session.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (s *SessionUser) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}

// RegisteredUser is an account created through signup. The password is
// kept in plain text; the workspace offers no authentication security.
type RegisteredUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Password string `json:"password"`
}

// Session strips the password.
func (r RegisteredUser) Session() SessionUser {
	return SessionUser{
		ID:    r.ID,
		Name:  r.Name,
		Email: r.Email,
		Role:  r.Role,
	}
}
