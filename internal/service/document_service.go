package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/startupviet/advisor-api/internal/models"
	appErrors "github.com/startupviet/advisor-api/pkg/errors"
)

type documentRepository interface {
	Get(ctx context.Context, id string) (*models.Document, error)
	Put(ctx context.Context, doc *models.Document) error
	All(ctx context.Context) ([]models.Document, error)
}

type profileGetter interface {
	Get(ctx context.Context, subjectID string) (*models.UserProfile, error)
}

// DocumentService enforces the document lifecycle: who may create, what status
// a new document gets, who may review, and which documents each role sees.
type DocumentService struct {
	repo      documentRepository
	profiles  profileGetter
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewDocumentService constructs the service.
func NewDocumentService(repo documentRepository, profiles profileGetter, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	svc := &DocumentService{
		repo:      repo,
		profiles:  profiles,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
	svc.validator.RegisterValidation("doccategory", func(fl validator.FieldLevel) bool {
		return models.DocumentCategory(fl.Field().String()).Valid()
	})
	return svc
}

// CreateDocumentRequest describes the create payload.
type CreateDocumentRequest struct {
	Title       string              `json:"title" validate:"required"`
	Category    string              `json:"category" validate:"required,doccategory"`
	Author      string              `json:"author"`
	Content     string              `json:"content" validate:"required"`
	Attachments []models.Attachment `json:"attachments"`
}

// Create persists a new document. The creator must have a profile; admins'
// documents are approved immediately, everyone else's start pending review.
func (s *DocumentService) Create(ctx context.Context, creatorID string, req CreateDocumentRequest) (*models.Document, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidArgument.Code, appErrors.ErrInvalidArgument.Status, "title, category and content are required")
	}

	profile, err := s.profiles.Get(ctx, creatorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	if profile == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "user profile not found")
	}

	status := models.StatusPending
	if profile.Role == models.RoleAdmin {
		status = models.StatusApproved
	}

	createdAt := s.now().UTC()
	doc := &models.Document{
		ID:          fmt.Sprintf("doc-%d", createdAt.UnixMilli()),
		Title:       req.Title,
		Category:    models.DocumentCategory(req.Category),
		Author:      req.Author,
		Content:     req.Content,
		Attachments: req.Attachments,
		CreatedAt:   createdAt,
		Status:      status,
		UploadedBy:  creatorID,
	}
	if doc.Attachments == nil {
		doc.Attachments = []models.Attachment{}
	}

	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}

	s.logger.Info("document created",
		zap.String("document_id", doc.ID),
		zap.String("status", string(doc.Status)),
		zap.String("uploader_role", string(profile.Role)))
	return doc, nil
}

// List returns documents visible to the caller, newest first. Unknown callers
// are treated as plain users and only see approved documents.
func (s *DocumentService) List(ctx context.Context, callerID string) ([]models.Document, error) {
	role := models.RoleUser
	if callerID != "" {
		profile, err := s.profiles.Get(ctx, callerID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
		}
		if profile != nil {
			role = profile.Role
		}
	}
	return s.ListForRole(ctx, role)
}

// ListForRole applies the visibility rule for the given role.
func (s *DocumentService) ListForRole(ctx context.Context, role models.UserRole) ([]models.Document, error) {
	docs, err := s.repo.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}

	visible := make([]models.Document, 0, len(docs))
	for _, doc := range docs {
		if role.CanSeeAllDocuments() || doc.Status == models.StatusApproved {
			visible = append(visible, doc)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

// Get fetches a document by id. Detail fetches intentionally bypass the
// role-based visibility filter: detail links are shareable.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}
	if doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}
	return doc, nil
}

// Review transitions a document to approved or rejected. Only admins may
// review; reviewing an already-reviewed document overwrites the previous
// outcome (last write wins).
func (s *DocumentService) Review(ctx context.Context, reviewerID, docID, status string) (*models.Document, error) {
	profile, err := s.profiles.Get(ctx, reviewerID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "profile store unavailable")
	}
	if profile == nil || profile.Role != models.RoleAdmin {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "only admins can review documents")
	}

	target := models.DocumentStatus(status)
	if !target.ReviewTarget() {
		return nil, appErrors.Clone(appErrors.ErrInvalidArgument, "status must be approved or rejected")
	}

	doc, err := s.repo.Get(ctx, docID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}
	if doc == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
	}

	reviewedAt := s.now().UTC()
	doc.Status = target
	doc.ReviewedAt = &reviewedAt
	doc.ReviewedBy = reviewerID

	if err := s.repo.Put(ctx, doc); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "document store unavailable")
	}

	s.logger.Info("document reviewed",
		zap.String("document_id", doc.ID),
		zap.String("status", string(target)),
		zap.String("reviewer_id", reviewerID))
	return doc, nil
}
