package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/startupviet/advisor-api/internal/models"
)

const (
	profileKeyPrefix      = "user:"
	profileEmailKeyPrefix = "user:email:"
)

// ProfileRepository stores user profiles in the key-value table under
// "user:<id>" with a secondary "user:email:<email>" index. Both keys are
// written in one transaction so the index cannot drift from the primary.
type ProfileRepository struct {
	kv *KVStore
}

// NewProfileRepository creates a new instance of ProfileRepository.
func NewProfileRepository(kv *KVStore) *ProfileRepository {
	return &ProfileRepository{kv: kv}
}

// Get returns the profile for the subject id, or nil when absent.
func (r *ProfileRepository) Get(ctx context.Context, subjectID string) (*models.UserProfile, error) {
	return r.fetch(ctx, profileKeyPrefix+subjectID)
}

// FindByEmail returns the profile recorded under the email index, or nil.
func (r *ProfileRepository) FindByEmail(ctx context.Context, email string) (*models.UserProfile, error) {
	return r.fetch(ctx, profileEmailKeyPrefix+email)
}

// Put overwrites the profile under both its keys.
func (r *ProfileRepository) Put(ctx context.Context, profile *models.UserProfile) error {
	raw, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal profile %s: %w", profile.ID, err)
	}
	return r.kv.SetMulti(ctx, map[string][]byte{
		profileKeyPrefix + profile.ID:         raw,
		profileEmailKeyPrefix + profile.Email: raw,
	})
}

// All returns every stored profile record. The scan covers both the primary
// and the email-index keys, so callers deduplicate by email.
func (r *ProfileRepository) All(ctx context.Context) ([]models.UserProfile, error) {
	values, err := r.kv.GetByPrefix(ctx, profileKeyPrefix)
	if err != nil {
		return nil, err
	}
	profiles := make([]models.UserProfile, 0, len(values))
	for _, raw := range values {
		var profile models.UserProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return nil, fmt.Errorf("unmarshal profile: %w", err)
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func (r *ProfileRepository) fetch(ctx context.Context, key string) (*models.UserProfile, error) {
	raw, err := r.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	var profile models.UserProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		return nil, fmt.Errorf("unmarshal profile at %s: %w", key, err)
	}
	return &profile, nil
}
