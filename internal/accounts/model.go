package accounts

import (
	"time"

	"github.com/google/uuid"
)

// Account types. Root is seeded out of band and can never be created or
// deleted through the API.
const (
	TypeUser  = "user"
	TypeAdmin = "admin"
	TypeRoot  = "root"
)

// Account is a credentialed login owning one profile document.
type Account struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Type         string    `json:"type"`
	Token        string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Summary is the admin-facing account listing entry.
type Summary struct {
	Username string `json:"username"`
	Type     string `json:"type"`
}
