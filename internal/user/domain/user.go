package domain

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// Role types
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	UsernameMinLength = 3
	PasswordMinLength = 6
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrEmailTaken         = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError lists every rule a request broke.
type ValidationError struct {
	Rules []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid user data: %s", strings.Join(e.Rules, "; "))
}

// User represents the user entity (domain model)
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;size:36"`
	Username  string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email     string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password  string     `json:"-" gorm:"not null"` // Never expose password in JSON
	Role      string     `json:"role" gorm:"size:16;not null;default:'user'"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// TableName specifies the table name
func (User) TableName() string {
	return "users"
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ValidRole reports whether role is user or admin.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// UserRepository defines the contract for user data access
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id string) error
	CountByRole(ctx context.Context, role string) (int64, error)
	Count(ctx context.Context) (int64, error)
}
