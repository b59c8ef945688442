package models

// Skill is a named competency users can attach to their profile.
// Created on first use; shared by many users.
type Skill struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Interest is a named topic users can attach to their profile
type Interest struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CreateNamedRequest is the payload for get-or-create of a skill or interest
type CreateNamedRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}
