package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/startupviet/advisor-api/internal/models"
)

const documentKeyPrefix = "document:"

// DocumentRepository stores advisory documents under "document:<id>".
type DocumentRepository struct {
	kv *KVStore
}

// NewDocumentRepository creates a new instance of DocumentRepository.
func NewDocumentRepository(kv *KVStore) *DocumentRepository {
	return &DocumentRepository{kv: kv}
}

// Get returns the document, or nil when absent.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	raw, err := r.kv.Get(ctx, documentKeyPrefix+id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", id, err)
	}
	return &doc, nil
}

// Put overwrites the document record.
func (r *DocumentRepository) Put(ctx context.Context, doc *models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", doc.ID, err)
	}
	return r.kv.Set(ctx, documentKeyPrefix+doc.ID, raw)
}

// All returns every stored document in key order.
func (r *DocumentRepository) All(ctx context.Context) ([]models.Document, error) {
	values, err := r.kv.GetByPrefix(ctx, documentKeyPrefix)
	if err != nil {
		return nil, err
	}
	docs := make([]models.Document, 0, len(values))
	for _, raw := range values {
		var doc models.Document
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal document: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, nil
}
