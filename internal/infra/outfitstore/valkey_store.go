package outfitstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

// ValkeyStore keeps the current suggestion set in a Valkey-compatible database.
// The set lives under one key per process, so a restart never sees an earlier set.
type ValkeyStore struct {
	client   valkey.Client
	prefix   string
	instance string
	ttl      time.Duration
}

// NewValkeyStore constructs a new store backed by Valkey.
func NewValkeyStore(client valkey.Client, prefix string, ttl time.Duration) *ValkeyStore {
	if prefix == "" {
		prefix = "outfits"
	}
	return &ValkeyStore{client: client, prefix: prefix, instance: uuid.NewString(), ttl: ttl}
}

// SaveOutfits replaces the stored set with outfits.
func (s *ValkeyStore) SaveOutfits(ctx context.Context, outfits []wardrobe.Outfit) error {
	set := make(map[string]wardrobe.Outfit, len(outfits))
	for _, outfit := range outfits {
		if outfit.ID == "" {
			continue
		}
		set[outfit.ID] = outfit
	}
	if len(set) == 0 {
		return s.client.Do(ctx, s.client.B().Del().Key(s.setKey()).Build()).Error()
	}
	payload, err := json.Marshal(set)
	if err != nil {
		return err
	}
	if err := s.setString(ctx, s.setKey(), string(payload)); err != nil {
		return fmt.Errorf("store suggestion set: %w", err)
	}
	return nil
}

// GetOutfit implements wardrobe.OutfitStore.
func (s *ValkeyStore) GetOutfit(ctx context.Context, id string) (wardrobe.Outfit, bool, error) {
	if id == "" {
		return wardrobe.Outfit{}, false, nil
	}
	payload, err := s.client.Do(ctx, s.client.B().Get().Key(s.setKey()).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return wardrobe.Outfit{}, false, nil
		}
		return wardrobe.Outfit{}, false, err
	}
	outfit, ok, err := lookupOutfit(payload, id)
	if err != nil {
		return wardrobe.Outfit{}, false, fmt.Errorf("decode suggestion set: %w", err)
	}
	return outfit, ok, nil
}

func lookupOutfit(payload, id string) (wardrobe.Outfit, bool, error) {
	var set map[string]wardrobe.Outfit
	if err := json.Unmarshal([]byte(payload), &set); err != nil {
		return wardrobe.Outfit{}, false, err
	}
	outfit, ok := set[id]
	return outfit, ok, nil
}

func (s *ValkeyStore) setString(ctx context.Context, key, value string) error {
	builder := s.client.B().Set().Key(key).Value(value)
	var cmd valkey.Completed
	if ttl := s.ttl; ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return s.client.Do(ctx, cmd).Error()
}

func (s *ValkeyStore) setKey() string {
	return fmt.Sprintf("%s:suggestions:%s", s.prefix, s.instance)
}

var _ wardrobe.OutfitStore = (*ValkeyStore)(nil)
