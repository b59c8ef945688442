package models

import "time"

// NotificationType tags the notification categories emitted by the
// request/connection engine.
type NotificationType string

const (
	NotificationRequestReceived     NotificationType = "MENTORSHIP_REQUEST"
	NotificationRequestResponse     NotificationType = "MENTORSHIP_REQUEST_RESPONSE"
	NotificationConnectionCancelled NotificationType = "MENTORSHIP_CONNECTION_CANCELLED"
)

// Notification is an append-only per-user ledger entry. Only IsRead is ever
// mutated after creation.
type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"userId"`
	Content   string           `json:"content"`
	Type      NotificationType `json:"type"`
	IsRead    bool             `json:"isRead"`
	CreatedAt time.Time        `json:"createdAt"`
}
