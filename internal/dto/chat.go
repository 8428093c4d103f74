package dto

import "github.com/startupviet/advisor-api/internal/models"

// ChatRequest carries one user question.
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse is the advisory reply plus the documents it cites.
type ChatResponse struct {
	Response   string                     `json:"response"`
	References []models.DocumentReference `json:"references"`
}
