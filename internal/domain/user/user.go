package user

import (
	"time"

	"commerce-service/internal/ability"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	FullName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateUserInput struct {
	FullName string
	Email    string
	Password string // already hashed
	Role     string
}

type UpdateUserInput struct {
	FullName     *string
	PasswordHash *string
}

// Principal derives the request principal for this user.
func (u *User) Principal() ability.Principal {
	return ability.Principal{ID: u.ID, Role: ability.ParseRole(u.Role)}
}
