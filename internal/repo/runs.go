package repo

import (
	"errors"
	"sort"
	"sync"

	"github.com/YashDixit26/File-Compression-and-Decompression-System/internal/model"
)

var ErrNotFound = errors.New("not found")

// RunRepo stores the history of compress/decompress runs.
type RunRepo interface {
	Save(r *model.Run) error
	FindByID(id string) (*model.Run, error)
	// List returns runs newest first.
	List() ([]*model.Run, error)
}

type runRepoInMemory struct {
	mu    sync.RWMutex
	store map[string]*model.Run
}

func NewRunRepoInMemory() RunRepo {
	return &runRepoInMemory{store: make(map[string]*model.Run)}
}

func (r *runRepoInMemory) Save(run *model.Run) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *run
	r.store[run.ID] = &cp
	return nil
}

func (r *runRepoInMemory) FindByID(id string) (*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.store[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (r *runRepoInMemory) List() ([]*model.Run, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*model.Run, 0, len(r.store))
	for _, run := range r.store {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
