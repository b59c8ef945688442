package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// RequestStatus represents the status of a mentorship request
type RequestStatus string

const (
	StatusPending   RequestStatus = "PENDING"
	StatusAccepted  RequestStatus = "ACCEPTED"
	StatusDeclined  RequestStatus = "DECLINED"
	StatusCancelled RequestStatus = "CANCELLED"
)

// IsValid reports whether the status is a known one
func (s RequestStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCancelled:
		return true
	}
	return false
}

// IsTerminal returns true if the status admits no further transitions
func (s RequestStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusDeclined || s == StatusCancelled
}

// CanTransitionTo checks if a status transition is valid. Only a pending
// request may be resolved, and only to accepted or declined.
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	if s != StatusPending {
		return false
	}
	return newStatus == StatusAccepted || newStatus == StatusDeclined
}

// Request represents a mentorship proposal from one user to another
type Request struct {
	ID         int64         `json:"id"`
	SenderID   int64         `json:"senderId"`
	ReceiverID int64         `json:"receiverId"`
	Message    *string       `json:"message,omitempty"`
	Status     RequestStatus `json:"status"`
	CreatedAt  time.Time     `json:"createdAt"`
	UpdatedAt  time.Time     `json:"updatedAt"`
}

// PendingRequest is a pending request annotated with the sender's identity
type PendingRequest struct {
	Request
	Sender UserSummary `json:"sender"`
}

// Connection represents an established mentor-mentee relationship
type Connection struct {
	ID        int64      `json:"id"`
	MentorID  int64      `json:"mentorId"`
	MenteeID  int64      `json:"menteeId"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// ConnectionWithUsers is a connection annotated with both parties' identities
type ConnectionWithUsers struct {
	Connection
	Mentor UserSummary `json:"mentor"`
	Mentee UserSummary `json:"mentee"`
}

// SendRequestPayload is the payload for sending a mentorship request
type SendRequestPayload struct {
	ReceiverID int64   `json:"receiverId" binding:"required,min=1"`
	Message    *string `json:"message" binding:"omitempty,max=2000"`
}

// RespondRequestPayload is the payload for responding to a pending request
type RespondRequestPayload struct {
	Status RequestStatus `json:"status" binding:"required,oneof=ACCEPTED DECLINED"`
}

// CancelConnectionPayload is the payload for cancelling a connection.
// CounterpartID is the other side of the connection: the mentor when a
// mentee cancels, the mentee when a mentor cancels.
type CancelConnectionPayload struct {
	CounterpartID int64 `json:"counterpartId" binding:"required,min=1"`
}

// RequestResult is the structured outcome of a request state transition
type RequestResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Request *Request `json:"request,omitempty"`
}

// CancelResult is the structured outcome of a connection cancellation
type CancelResult struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Connection *Connection `json:"connection,omitempty"`
}

// ScanRequest scans a single PostgreSQL row into a Request struct.
// Expected columns: id, sender_id, receiver_id, message, status, created_at, updated_at
func ScanRequest(row pgx.Row) (*Request, error) {
	var r Request
	err := row.Scan(
		&r.ID,
		&r.SenderID,
		&r.ReceiverID,
		&r.Message,
		&r.Status,
		&r.CreatedAt,
		&r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ScanConnection scans a single PostgreSQL row into a Connection struct.
// Expected columns: id, mentor_id, mentee_id, start_date, end_date
func ScanConnection(row pgx.Row) (*Connection, error) {
	var c Connection
	err := row.Scan(
		&c.ID,
		&c.MentorID,
		&c.MenteeID,
		&c.StartDate,
		&c.EndDate,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
