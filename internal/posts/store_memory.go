package posts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"blogapi/internal/core"
)

// MemoryStore keeps posts in process memory.
// Data survives across requests but not process restarts.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]*core.Post
}

// NewMemoryStore creates an empty in-memory post store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		items: make(map[string]*core.Post),
	}
}

func clonePost(src *core.Post) *core.Post {
	c := *src
	return &c
}

// Insert stores one post.
func (s *MemoryStore) Insert(_ context.Context, input core.PostInput) (*core.Post, error) {
	post := &core.Post{
		ID:      uuid.New().String(),
		Title:   input.Title,
		Author:  input.Author,
		Content: input.Content,
		Created: time.Now().UTC().Truncate(time.Millisecond),
	}

	s.mu.Lock()
	s.items[post.ID] = post
	s.mu.Unlock()
	return clonePost(post), nil
}

// InsertMany stores a batch of posts.
func (s *MemoryStore) InsertMany(ctx context.Context, inputs []core.PostInput) ([]*core.Post, error) {
	inserted := make([]*core.Post, 0, len(inputs))
	for _, input := range inputs {
		post, err := s.Insert(ctx, input)
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, post)
	}
	return inserted, nil
}

// List returns every post ordered by creation time, then id for stability.
func (s *MemoryStore) List(_ context.Context) ([]*core.Post, error) {
	s.mu.RLock()
	all := make([]*core.Post, 0, len(s.items))
	for _, p := range s.items {
		all = append(all, clonePost(p))
	}
	s.mu.RUnlock()

	sort.Slice(all, func(i, j int) bool {
		if all[i].Created.Equal(all[j].Created) {
			return all[i].ID < all[j].ID
		}
		return all[i].Created.Before(all[j].Created)
	})
	return all, nil
}

// Count returns the number of stored posts.
func (s *MemoryStore) Count(_ context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.items)), nil
}

// FindByID returns the post with the given id, or nil if absent.
func (s *MemoryStore) FindByID(_ context.Context, id string) (*core.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if p, ok := s.items[id]; ok {
		return clonePost(p), nil
	}
	return nil, nil
}

// FindOne returns an arbitrary single post, or nil if the store is empty.
func (s *MemoryStore) FindOne(_ context.Context) (*core.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.items {
		return clonePost(p), nil
	}
	return nil, nil
}

// Update applies the set fields of the update to an existing post.
func (s *MemoryStore) Update(_ context.Context, id string, update core.PostUpdate) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return false, nil
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Author != nil {
		p.Author = *update.Author
	}
	if update.Content != nil {
		p.Content = *update.Content
	}
	return true, nil
}

// Delete removes the post with the given id.
func (s *MemoryStore) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[id]; !ok {
		return false, nil
	}
	delete(s.items, id)
	return true, nil
}
