package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"rideshare/internal/domain"
	"rideshare/internal/repository"
)

// Key prefixes. Profiles and the name index live in disjoint namespaces so no
// principal can overwrite an index entry.
const (
	profilePrefix     = "profile:id:"
	profileNamePrefix = "profile:name:"
)

var _ repository.ProfileRepository = (*ProfileStore)(nil)

// ProfileStore keeps caller profiles in Redis as JSON, with a name index.
type ProfileStore struct {
	client *redis.Client
}

// NewProfileStore creates a new ProfileStore.
func NewProfileStore(client *redis.Client) *ProfileStore {
	return &ProfileStore{client: client}
}

// Get retrieves the profile of a principal.
func (s *ProfileStore) Get(ctx context.Context, principal string) (*domain.Profile, error) {
	data, err := s.client.Get(ctx, profilePrefix+principal).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var profile domain.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", principal, err)
	}
	return &profile, nil
}

// GetByName retrieves the profile indexed under name.
func (s *ProfileStore) GetByName(ctx context.Context, name string) (*domain.Profile, error) {
	principal, err := s.client.Get(ctx, profileNamePrefix+name).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	return s.Get(ctx, principal)
}

// Put stores the profile and re-points its name at principal in one transaction.
func (s *ProfileStore) Put(ctx context.Context, principal string, profile domain.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, profilePrefix+principal, data, 0)
		pipe.Set(ctx, profileNamePrefix+profile.Name, principal, 0)
		return nil
	})
	return err
}
