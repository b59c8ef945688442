package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// UserRole represents the role a user registered with
type UserRole string

const (
	RoleMentor UserRole = "MENTOR"
	RoleMentee UserRole = "MENTEE"
)

// IsValid reports whether the role is one of the two known roles
func (r UserRole) IsValid() bool {
	return r == RoleMentor || r == RoleMentee
}

// User represents a registered user. PasswordHash is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Name         string    `json:"name"`
	Bio          *string   `json:"bio,omitempty"`
	Role         UserRole  `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// UserSummary is the minimal identity attached to requests and connections
type UserSummary struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Role  UserRole `json:"role,omitempty"`
}

// Summary reduces a User to its minimal identity
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// UserWithTaxonomy is a user annotated with their skills and interests
type UserWithTaxonomy struct {
	User
	Skills    []Skill    `json:"skills"`
	Interests []Interest `json:"interests"`
}

// UserProfile is the full profile view: user, taxonomy and current connections
type UserProfile struct {
	User        User         `json:"user"`
	Skills      []Skill      `json:"skills"`
	Interests   []Interest   `json:"interests"`
	Connections []Connection `json:"connections"`
}

// RegisterUserRequest is the payload for user registration
type RegisterUserRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=200"`
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8,max=128"`
	Bio         *string `json:"bio" binding:"omitempty,max=2000"`
	Role        string  `json:"role" binding:"required,oneof=MENTOR MENTEE"`
	SkillIDs    []int64 `json:"skillIds"`
	InterestIDs []int64 `json:"interestIds"`
}

// UpdateProfileRequest is the payload for profile updates. Nil fields are
// left untouched; a non-nil empty slice replaces the association set with
// an empty one.
type UpdateProfileRequest struct {
	Name        *string  `json:"name" binding:"omitempty,min=1,max=200"`
	Bio         *string  `json:"bio" binding:"omitempty,max=2000"`
	SkillIDs    *[]int64 `json:"skillIds"`
	InterestIDs *[]int64 `json:"interestIds"`
}

// LoginRequest is the payload for authentication
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued bearer token on success
type LoginResponse struct {
	Success bool   `json:"success"`
	Token   string `json:"token,omitempty"`
	User    *User  `json:"user,omitempty"`
	Message string `json:"message,omitempty"`
}

// ScanUser scans a single PostgreSQL row into a User struct.
// Expected columns: id, email, password_hash, name, bio, role, created_at, updated_at
func ScanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Name,
		&u.Bio,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ScanUsers scans multiple PostgreSQL rows into a slice of User structs
func ScanUsers(rows pgx.Rows) ([]*User, error) {
	defer rows.Close()

	users := []*User{}
	for rows.Next() {
		user, err := ScanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}
