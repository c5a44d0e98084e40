package models

// Column limits shared by the schema and form validation
const (
	MaxUsernameLen = 20
	MaxEmailLen    = 50
	MaxNameLen     = 30
	MaxTitleLen    = 100
)

// Domain types

type User struct {
	Username  string `json:"username"`
	Password  string `json:"-"` // bcrypt hash, never rendered
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// FullName joins first and last name for display
func (u User) FullName() string {
	return u.FirstName + " " + u.LastName
}

type Feedback struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Username string `json:"username"`
}
