package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name     string
		from     RequestStatus
		to       RequestStatus
		expected bool
	}{
		{"pending to accepted", StatusPending, StatusAccepted, true},
		{"pending to declined", StatusPending, StatusDeclined, true},
		{"pending to cancelled", StatusPending, StatusCancelled, false},
		{"pending to pending", StatusPending, StatusPending, false},
		{"accepted to declined", StatusAccepted, StatusDeclined, false},
		{"declined to accepted", StatusDeclined, StatusAccepted, false},
		{"cancelled to accepted", StatusCancelled, StatusAccepted, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestRequestStatus_IsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.True(t, StatusAccepted.IsTerminal())
	assert.True(t, StatusDeclined.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestRequestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.True(t, StatusAccepted.IsValid())
	assert.False(t, RequestStatus("REJECTED").IsValid())
	assert.False(t, RequestStatus("").IsValid())
}

func TestUserRole_IsValid(t *testing.T) {
	assert.True(t, RoleMentor.IsValid())
	assert.True(t, RoleMentee.IsValid())
	assert.False(t, UserRole("ADMIN").IsValid())
	assert.False(t, UserRole("mentor").IsValid())
}

func TestSearchParams_Normalize(t *testing.T) {
	p := SearchParams{}
	p.Normalize()
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, "name", p.SortBy)
	assert.Equal(t, SortAsc, p.SortOrder)

	p = SearchParams{Page: 3, PageSize: 25, SortBy: "created_at", SortOrder: SortDesc}
	p.Normalize()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, 25, p.PageSize)
	assert.Equal(t, "created_at", p.SortBy)
	assert.Equal(t, SortDesc, p.SortOrder)
}

func TestSearchParams_Offset(t *testing.T) {
	p := SearchParams{Page: 1, PageSize: 10}
	assert.Equal(t, 0, p.Offset())

	p.Page = 3
	assert.Equal(t, 20, p.Offset())
}