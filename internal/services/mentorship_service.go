package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/mentorhub/mentorhub-api/config"
	apperrors "github.com/mentorhub/mentorhub-api/pkg/errors"
	"github.com/mentorhub/mentorhub-api/pkg/logger"
	"github.com/mentorhub/mentorhub-api/pkg/metrics"

	"github.com/mentorhub/mentorhub-api/internal/models"
	"github.com/mentorhub/mentorhub-api/internal/repository"
)

// MentorshipService drives the request and connection lifecycle:
// send -> accept/decline, and cancellation of established connections
type MentorshipService struct {
	mentorshipRepo   repository.MentorshipRepositoryInterface
	userRepo         repository.UserRepositoryInterface
	notificationRepo repository.NotificationRepositoryInterface
	config           *config.Config
}

// NewMentorshipService creates a new MentorshipService
func NewMentorshipService(
	mentorshipRepo repository.MentorshipRepositoryInterface,
	userRepo repository.UserRepositoryInterface,
	notificationRepo repository.NotificationRepositoryInterface,
	cfg *config.Config,
) *MentorshipService {
	return &MentorshipService{
		mentorshipRepo:   mentorshipRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		config:           cfg,
	}
}

// CanInitiateRequest reports whether the sender's role permits proposing a
// mentorship to the receiver. Requests flow between complementary roles.
func (s *MentorshipService) CanInitiateRequest(sender, receiver *models.User) bool {
	return sender.Role != receiver.Role
}

// SendRequest creates a pending mentorship request from sender to the
// receiver named in the payload and notifies the receiver
func (s *MentorshipService) SendRequest(ctx context.Context, senderID int64, payload *models.SendRequestPayload) (*models.RequestResult, error) {
	start := time.Now()

	if senderID == payload.ReceiverID {
		metrics.MentorshipRequestsSent.WithLabelValues("rejected").Inc()
		return nil, apperrors.ValidationError("receiverId", "cannot send a request to yourself")
	}

	sender, err := s.userRepo.GetByID(ctx, senderID)
	if err != nil {
		return nil, err
	}
	receiver, err := s.userRepo.GetByID(ctx, payload.ReceiverID)
	if err != nil {
		return nil, err
	}

	if s.config.Mentorship.EnforceRolePolicy && !s.CanInitiateRequest(sender, receiver) {
		logger.Warn("Request rejected by role policy",
			zap.Int64("sender_id", senderID),
			zap.Int64("receiver_id", receiver.ID),
			zap.String("role", string(sender.Role)),
		)
		metrics.MentorshipRequestsSent.WithLabelValues("rejected").Inc()
		return nil, apperrors.ForbiddenError("users with the same role cannot form a mentorship")
	}

	request, err := s.mentorshipRepo.CreateRequest(ctx, senderID, payload.ReceiverID, payload.Message)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			metrics.MentorshipRequestsSent.WithLabelValues("duplicate").Inc()
		} else {
			metrics.MentorshipRequestsSent.WithLabelValues("error").Inc()
		}
		return nil, err
	}

	// Notification delivery is best-effort; the request itself is committed
	_, err = s.notificationRepo.Create(ctx, receiver.ID,
		"New Mentorship Request from "+sender.Name,
		models.NotificationRequestReceived)
	if err != nil {
		logger.Error("Failed to create request notification",
			zap.Int64("request_id", request.ID),
			zap.Error(err),
		)
	} else {
		metrics.NotificationsCreated.WithLabelValues(string(models.NotificationRequestReceived)).Inc()
	}

	metrics.MentorshipRequestsSent.WithLabelValues("success").Inc()
	logger.Info("Mentorship request sent",
		zap.Int64("request_id", request.ID),
		zap.Int64("sender_id", senderID),
		zap.Int64("receiver_id", receiver.ID),
		zap.Duration("duration", time.Since(start)),
	)

	return &models.RequestResult{
		Success: true,
		Message: "Mentorship request sent",
		Request: request,
	}, nil
}

// RespondToRequest resolves a pending request on behalf of its receiver.
// Accepting establishes the connection with the receiver as mentor;
// declining removes the request. Either way the sender is notified.
func (s *MentorshipService) RespondToRequest(ctx context.Context, actorID, requestID int64, status models.RequestStatus) (*models.RequestResult, error) {
	request, err := s.mentorshipRepo.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if request.ReceiverID != actorID {
		logger.Warn("Response denied: actor is not the receiver",
			zap.Int64("request_id", requestID),
			zap.Int64("actor_id", actorID),
			zap.Int64("receiver_id", request.ReceiverID),
		)
		return nil, apperrors.ForbiddenError("only the receiver may respond to a request")
	}

	if !request.Status.CanTransitionTo(status) {
		return nil, apperrors.ConflictError(
			fmt.Sprintf("cannot transition request from %s to %s", request.Status, status))
	}

	var resolved *models.Request
	var message string

	switch status {
	case models.StatusAccepted:
		var connection *models.Connection
		resolved, connection, err = s.mentorshipRepo.AcceptRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}
		message = "Mentorship request accepted"
		logger.Info("Mentorship connection established",
			zap.Int64("request_id", requestID),
			zap.Int64("connection_id", connection.ID),
			zap.Int64("mentor_id", connection.MentorID),
			zap.Int64("mentee_id", connection.MenteeID),
		)
	case models.StatusDeclined:
		resolved, err = s.mentorshipRepo.DeclineRequest(ctx, requestID)
		if err != nil {
			return nil, err
		}
		message = "Mentorship request declined"
		logger.Info("Mentorship request declined", zap.Int64("request_id", requestID))
	default:
		return nil, apperrors.ValidationError("status", "must be ACCEPTED or DECLINED")
	}

	content := "Your mentorship request was declined"
	if status == models.StatusAccepted {
		content = "Your mentorship request has been accepted"
	}
	_, err = s.notificationRepo.Create(ctx, resolved.SenderID, content, models.NotificationRequestResponse)
	if err != nil {
		logger.Error("Failed to create response notification",
			zap.Int64("request_id", requestID),
			zap.Error(err),
		)
	} else {
		metrics.NotificationsCreated.WithLabelValues(string(models.NotificationRequestResponse)).Inc()
	}

	metrics.MentorshipRequestResponses.WithLabelValues(string(status)).Inc()

	return &models.RequestResult{
		Success: true,
		Message: message,
		Request: resolved,
	}, nil
}

// CancelConnectionByMentee terminates the connection between the acting
// mentee and the given mentor
func (s *MentorshipService) CancelConnectionByMentee(ctx context.Context, menteeID, mentorID int64) (*models.CancelResult, error) {
	return s.cancelConnection(ctx, mentorID, menteeID, "mentee")
}

// CancelConnectionByMentor terminates the connection between the acting
// mentor and the given mentee
func (s *MentorshipService) CancelConnectionByMentor(ctx context.Context, mentorID, menteeID int64) (*models.CancelResult, error) {
	return s.cancelConnection(ctx, mentorID, menteeID, "mentor")
}

func (s *MentorshipService) cancelConnection(ctx context.Context, mentorID, menteeID int64, initiator string) (*models.CancelResult, error) {
	mentor, err := s.userRepo.GetByID(ctx, mentorID)
	if err != nil {
		return nil, err
	}
	mentee, err := s.userRepo.GetByID(ctx, menteeID)
	if err != nil {
		return nil, err
	}

	connection, err := s.mentorshipRepo.DeleteConnection(ctx, mentorID, menteeID)
	if err != nil {
		return nil, err
	}

	// Both sides learn the connection was terminated, each message naming
	// the counterpart
	notifications := []models.Notification{
		{
			UserID:  menteeID,
			Content: fmt.Sprintf("Mentorship connection with %s has been terminated", mentor.Name),
			Type:    models.NotificationConnectionCancelled,
		},
		{
			UserID:  mentorID,
			Content: fmt.Sprintf("Mentorship connection with %s has been terminated", mentee.Name),
			Type:    models.NotificationConnectionCancelled,
		},
	}
	if err := s.notificationRepo.CreateMany(ctx, notifications); err != nil {
		logger.Error("Failed to create cancellation notifications",
			zap.Int64("connection_id", connection.ID),
			zap.Error(err),
		)
	} else {
		metrics.NotificationsCreated.WithLabelValues(string(models.NotificationConnectionCancelled)).Add(2)
	}

	metrics.ConnectionCancellations.WithLabelValues(initiator).Inc()
	logger.Info("Mentorship connection cancelled",
		zap.Int64("connection_id", connection.ID),
		zap.Int64("mentor_id", mentorID),
		zap.Int64("mentee_id", menteeID),
		zap.String("initiator", initiator),
	)

	return &models.CancelResult{
		Success:    true,
		Message:    "Mentorship connection successfully cancelled",
		Connection: connection,
	}, nil
}

// ListPendingRequests returns the pending requests addressed to a user,
// each annotated with the sender's identity
func (s *MentorshipService) ListPendingRequests(ctx context.Context, userID int64) ([]models.PendingRequest, error) {
	return s.mentorshipRepo.ListPendingRequests(ctx, userID)
}

// ListActiveConnections returns the connections a user participates in, on
// either side
func (s *MentorshipService) ListActiveConnections(ctx context.Context, userID int64) ([]models.ConnectionWithUsers, error) {
	return s.mentorshipRepo.ListConnections(ctx, userID)
}
