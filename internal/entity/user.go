package entity

import "time"

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAgent UserRole = "agent"
	RoleAdmin UserRole = "admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID        string    `db:"id"`
	FullName  string    `db:"full_name"`
	Email     string    `db:"email"`
	Password  string    `db:"password"`
	Role      UserRole  `db:"role"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type UserLoginData struct {
	ID       string
	FullName string
	Email    string
	Role     UserRole
}

func (u UserLoginData) IsAdmin() bool {
	return u.Role == RoleAdmin
}

func (u UserLoginData) IsAgent() bool {
	return u.Role == RoleAgent
}

// UserStatistics is the summary block returned alongside the admin user list.
type UserStatistics struct {
	TotalUsers   int `db:"total_users"`
	ActiveUsers  int `db:"active_users"`
	NewThisMonth int `db:"new_this_month"`
}
