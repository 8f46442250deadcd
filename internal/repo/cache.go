package repo

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
)

// cachedRunRepo keeps recently saved or fetched runs in an LRU in front of
// another RunRepo. Runs are immutable once saved, so entries never go stale.
type cachedRunRepo struct {
	inner RunRepo
	cache *lru.Cache[string, model.Run]
}

func NewCachedRunRepo(inner RunRepo, size int) (RunRepo, error) {
	c, err := lru.New[string, model.Run](size)
	if err != nil {
		return nil, fmt.Errorf("run cache: %w", err)
	}
	return &cachedRunRepo{inner: inner, cache: c}, nil
}

func (r *cachedRunRepo) Save(run *model.Run) error {
	if err := r.inner.Save(run); err != nil {
		return err
	}
	r.cache.Add(run.ID, *run)
	return nil
}

func (r *cachedRunRepo) FindByID(id string) (*model.Run, error) {
	if run, ok := r.cache.Get(id); ok {
		return &run, nil
	}
	run, err := r.inner.FindByID(id)
	if err != nil {
		return nil, err
	}
	r.cache.Add(id, *run)
	return run, nil
}

func (r *cachedRunRepo) List() ([]*model.Run, error) { return r.inner.List() }
