package models

import "time"

// DocumentCategory classifies advisory articles.
type DocumentCategory string

const (
	CategoryTheory DocumentCategory = "theory"
	CategoryMarket DocumentCategory = "market"
	CategoryPolicy DocumentCategory = "policy"
)

// Valid reports whether the category is a known value.
func (c DocumentCategory) Valid() bool {
	switch c {
	case CategoryTheory, CategoryMarket, CategoryPolicy:
		return true
	default:
		return false
	}
}

// DocumentStatus tracks the moderation state machine. Documents are created
// pending (approved directly for admin uploaders); admin reviews may move any
// document to approved or rejected, a later review overwrites an earlier one.
type DocumentStatus string

const (
	StatusPending  DocumentStatus = "pending"
	StatusApproved DocumentStatus = "approved"
	StatusRejected DocumentStatus = "rejected"
)

// ReviewTarget reports whether the status is a legal review outcome.
func (s DocumentStatus) ReviewTarget() bool {
	return s == StatusApproved || s == StatusRejected
}

// AttachmentType enumerates accepted attachment formats.
type AttachmentType string

const (
	AttachmentPDF  AttachmentType = "pdf"
	AttachmentDoc  AttachmentType = "doc"
	AttachmentDocx AttachmentType = "docx"
)

// Attachment is a binary file reference carried by a document. Bytes are not
// stored by this service; URL points at external storage.
type Attachment struct {
	ID   string         `json:"id"`
	Name string         `json:"name"`
	Size int64          `json:"size"`
	Type AttachmentType `json:"type"`
	URL  string         `json:"url"`
}

// Document is a citable advisory article with a moderation status. Content may
// embed the light heading/bullet markup convention the frontend renders
// (lines starting with "# ", "## ", "### ", "- " or "• ").
type Document struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Category    DocumentCategory `json:"category"`
	Author      string           `json:"author"`
	Content     string           `json:"content"`
	Attachments []Attachment     `json:"attachments"`
	CreatedAt   time.Time        `json:"createdAt"`
	Status      DocumentStatus   `json:"status"`
	UploadedBy  string           `json:"uploadedBy,omitempty"`
	ReviewedAt  *time.Time       `json:"reviewedAt,omitempty"`
	ReviewedBy  string           `json:"reviewedBy,omitempty"`
}
