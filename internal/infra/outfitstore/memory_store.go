package outfitstore

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/yanqian/smart-wardrobe/internal/domain/wardrobe"
)

// MemoryStore keeps the current suggestion set in process memory until it expires.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore constructs a store whose entries live for ttl.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, 2*ttl)}
}

// SaveOutfits replaces the stored set with outfits.
func (s *MemoryStore) SaveOutfits(_ context.Context, outfits []wardrobe.Outfit) error {
	s.cache.Flush()
	for _, outfit := range outfits {
		if outfit.ID == "" {
			continue
		}
		s.cache.Set(outfit.ID, outfit, cache.DefaultExpiration)
	}
	return nil
}

// GetOutfit implements wardrobe.OutfitStore.
func (s *MemoryStore) GetOutfit(_ context.Context, id string) (wardrobe.Outfit, bool, error) {
	if x, found := s.cache.Get(id); found {
		return x.(wardrobe.Outfit), true, nil
	}
	return wardrobe.Outfit{}, false, nil
}

var _ wardrobe.OutfitStore = (*MemoryStore)(nil)
