package user

type User struct {
	Username     string `json:"username"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	Email        string `json:"email"`
	IsAdmin      bool   `json:"isAdmin"`
	Applications []int  `json:"applications,omitempty"`
}

// NewUser carries the plain-text password of a user being registered.
type NewUser struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
	Email     string
	IsAdmin   bool
}

var updatable = map[string]string{
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"password":  "password",
	"isAdmin":   "is_admin",
}
