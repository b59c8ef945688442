package repository

import (
	"context"

	"github.com/mentorhub/mentorhub-api/internal/database/postgres"
	"github.com/mentorhub/mentorhub-api/internal/models"
)

// MentorshipRepository handles request and connection data access
type MentorshipRepository struct {
	db *postgres.Client
}

// NewMentorshipRepository creates a new mentorship repository
func NewMentorshipRepository(db *postgres.Client) MentorshipRepositoryInterface {
	return &MentorshipRepository{db: db}
}

// CreateRequest inserts a new pending mentorship request
func (r *MentorshipRepository) CreateRequest(ctx context.Context, senderID, receiverID int64, message *string) (*models.Request, error) {
	return r.db.CreateRequest(ctx, senderID, receiverID, message)
}

// GetRequestByID retrieves a request by ID
func (r *MentorshipRepository) GetRequestByID(ctx context.Context, id int64) (*models.Request, error) {
	return r.db.GetRequestByID(ctx, id)
}

// AcceptRequest resolves a pending request to accepted and creates the
// connection atomically
func (r *MentorshipRepository) AcceptRequest(ctx context.Context, requestID int64) (*models.Request, *models.Connection, error) {
	return r.db.AcceptRequest(ctx, requestID)
}

// DeclineRequest removes a pending request
func (r *MentorshipRepository) DeclineRequest(ctx context.Context, requestID int64) (*models.Request, error) {
	return r.db.DeclineRequest(ctx, requestID)
}

// ListPendingRequests returns the pending requests addressed to a user
func (r *MentorshipRepository) ListPendingRequests(ctx context.Context, receiverID int64) ([]models.PendingRequest, error) {
	return r.db.ListPendingRequests(ctx, receiverID)
}

// ListConnections returns the connections a user participates in
func (r *MentorshipRepository) ListConnections(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error) {
	return r.db.ListConnectionsForUser(ctx, userID)
}

// DeleteConnection removes the connection between a mentor and a mentee
func (r *MentorshipRepository) DeleteConnection(ctx context.Context, mentorID, menteeID int64) (*models.Connection, error) {
	return r.db.DeleteConnection(ctx, mentorID, menteeID)
}
