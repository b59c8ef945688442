package repository

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/database/postgres"
	"github.com/mentorhub/mentorhub-api/internal/models"
)

// UserRepository handles user data access on top of PostgreSQL
type UserRepository struct {
	db *postgres.Client
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *postgres.Client) UserRepositoryInterface {
	return &UserRepository{db: db}
}

// Create inserts a new user with their initial taxonomy associations
func (r *UserRepository) Create(ctx context.Context, email, passwordHash, name string, bio *string, role models.UserRole, skillIDs, interestIDs []int64) (*models.User, error) {
	return r.db.CreateUser(ctx, email, passwordHash, name, bio, role, skillIDs, interestIDs)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.db.GetUserByID(ctx, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.db.GetUserByEmail(ctx, email)
}

// Exists reports whether a user exists
func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.db.UserExists(ctx, id)
}

// Update applies profile changes and association replacements
func (r *UserRepository) Update(ctx context.Context, id int64, name, bio *string, skillIDs, interestIDs *[]int64) (*models.User, error) {
	return r.db.UpdateUser(ctx, id, name, bio, skillIDs, interestIDs)
}

// Delete removes a user and everything attached to them
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	return r.db.DeleteUser(ctx, id)
}

// GetWithTaxonomy retrieves a user annotated with their skills and interests
func (r *UserRepository) GetWithTaxonomy(ctx context.Context, id int64) (*models.UserWithTaxonomy, error) {
	user, err := r.db.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.annotate(ctx, user)
}

// GetProfile retrieves the full profile view: user, taxonomy and connections
func (r *UserRepository) GetProfile(ctx context.Context, id int64) (*models.UserProfile, error) {
	user, err := r.db.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	skills, err := r.db.GetUserSkills(ctx, id)
	if err != nil {
		return nil, err
	}
	interests, err := r.db.GetUserInterests(ctx, id)
	if err != nil {
		return nil, err
	}
	connections, err := r.db.GetConnectionsForUser(ctx, id)
	if err != nil {
		return nil, err
	}

	return &models.UserProfile{
		User:        *user,
		Skills:      skills,
		Interests:   interests,
		Connections: connections,
	}, nil
}

// Search runs a multi-criteria user search, annotating each match with
// their taxonomy
func (r *UserRepository) Search(ctx context.Context, params models.SearchParams) ([]*models.UserWithTaxonomy, int, error) {
	users, total, err := r.db.SearchUsers(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	annotated, err := r.annotateAll(ctx, users)
	if err != nil {
		return nil, 0, err
	}
	return annotated, total, nil
}

// SharingSkills returns users who share at least one skill with the given user
func (r *UserRepository) SharingSkills(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	users, err := r.db.UsersSharingSkills(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.annotateAll(ctx, users)
}

// SharingInterests returns users who share at least one interest with the
// given user
func (r *UserRepository) SharingInterests(ctx context.Context, userID int64) ([]*models.UserWithTaxonomy, error) {
	users, err := r.db.UsersSharingInterests(ctx, userID)
	if err != nil {
		return nil, err
	}
	return r.annotateAll(ctx, users)
}

func (r *UserRepository) annotate(ctx context.Context, user *models.User) (*models.UserWithTaxonomy, error) {
	skills, err := r.db.GetUserSkills(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	interests, err := r.db.GetUserInterests(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.UserWithTaxonomy{User: *user, Skills: skills, Interests: interests}, nil
}

func (r *UserRepository) annotateAll(ctx context.Context, users []*models.User) ([]*models.UserWithTaxonomy, error) {
	annotated := make([]*models.UserWithTaxonomy, 0, len(users))
	for _, user := range users {
		u, err := r.annotate(ctx, user)
		if err != nil {
			return nil, err
		}
		annotated = append(annotated, u)
	}
	return annotated, nil
}
