package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// GenerationStateRepository tracks which chat sessions have a generation
// in flight. Entries expire so a crashed worker cannot lock a session
// forever.
type GenerationStateRepository struct {
	cache *cache.Cache
}

func NewGenerationStateRepository() *GenerationStateRepository {
	// Generations are bounded by the provider timeout; 5 minutes of
	// stale lock is the worst case after a crash.
	c := cache.New(5*time.Minute, time.Minute)
	return &GenerationStateRepository{
		cache: c,
	}
}

// TryAcquire marks a session as generating. Returns false when a
// generation is already in flight for that session.
func (r *GenerationStateRepository) TryAcquire(sessionID uuid.UUID) bool {
	err := r.cache.Add(sessionID.String(), true, cache.DefaultExpiration)
	return err == nil
}

// Release clears the in-flight mark.
func (r *GenerationStateRepository) Release(sessionID uuid.UUID) {
	r.cache.Delete(sessionID.String())
}

// IsGenerating reports whether a generation is in flight.
func (r *GenerationStateRepository) IsGenerating(sessionID uuid.UUID) bool {
	_, found := r.cache.Get(sessionID.String())
	return found
}
