package dto

import "github.com/startupviet/advisor-api/internal/models"

// UserStats aggregates profiles by role after email deduplication.
type UserStats struct {
	Total  int            `json:"total"`
	ByRole map[string]int `json:"byRole"`
}

// DocumentStats buckets documents by moderation status and category.
type DocumentStats struct {
	Total      int            `json:"total"`
	ByStatus   map[string]int `json:"byStatus"`
	ByCategory map[string]int `json:"byCategory"`
}

// SessionStats counts chat sessions across all users.
type SessionStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Archived int `json:"archived"`
}

// DailyActivity is one entry of the 7-day activity series. ActiveUsers counts
// distinct sessions with at least one user message that calendar date, so it
// is always <= Questions.
type DailyActivity struct {
	Date        string `json:"date"`
	ActiveUsers int    `json:"activeUsers"`
	Questions   int    `json:"questions"`
}

// MessageStats summarises transcripts across all sessions.
type MessageStats struct {
	Total        int             `json:"total"`
	UserMessages int             `json:"userMessages"`
	BotMessages  int             `json:"botMessages"`
	ByDate       []DailyActivity `json:"byDate"`
}

// AdminStatsResponse is the aggregate dashboard snapshot. It is recomputed on
// every request (modulo a short cache TTL) and never persisted.
type AdminStatsResponse struct {
	Users            UserStats         `json:"users"`
	Documents        DocumentStats     `json:"documents"`
	Sessions         SessionStats      `json:"sessions"`
	Messages         MessageStats      `json:"messages"`
	PendingDocuments []models.Document `json:"pendingDocuments"`
}
