package memory

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// CanvasState is the last known live scene for an open canvas.
type CanvasState struct {
	Name      string
	Data      string
	UpdatedAt time.Time
}

// CanvasStateRepository holds the live state of open canvases so an
// editor joining mid-session gets the current scene without waiting for
// the next mutation. Persistence happens separately through the canvas
// repository.
type CanvasStateRepository struct {
	cache *cache.Cache
}

func NewCanvasStateRepository() *CanvasStateRepository {
	c := cache.New(30*time.Minute, 5*time.Minute)
	return &CanvasStateRepository{
		cache: c,
	}
}

func (r *CanvasStateRepository) Save(canvasID uuid.UUID, state *CanvasState) {
	state.UpdatedAt = time.Now()
	r.cache.Set(canvasID.String(), state, cache.DefaultExpiration)
}

func (r *CanvasStateRepository) Get(canvasID uuid.UUID) (*CanvasState, bool) {
	if x, found := r.cache.Get(canvasID.String()); found {
		return x.(*CanvasState), true
	}
	return nil, false
}

func (r *CanvasStateRepository) Delete(canvasID uuid.UUID) {
	r.cache.Delete(canvasID.String())
}
