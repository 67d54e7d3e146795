// Package posts provides persistence for blog posts.
package posts

import (
	"context"

	"blogapi/internal/core"
)

// Store defines persistence operations for posts.
//
// Lookup methods follow document-store semantics: a missing id yields a nil
// post and a nil error, never a sentinel. Mutating methods report whether a
// document matched so the HTTP layer can distinguish 204 from 404.
type Store interface {
	// Insert stores one post, assigning its id and creation timestamp.
	Insert(ctx context.Context, input core.PostInput) (*core.Post, error)

	// InsertMany stores a batch of posts in order and returns them with
	// their assigned ids. It returns only once every insert is durable.
	InsertMany(ctx context.Context, inputs []core.PostInput) ([]*core.Post, error)

	// List returns every post, oldest first.
	List(ctx context.Context) ([]*core.Post, error)

	// Count returns the number of stored posts.
	Count(ctx context.Context) (int64, error)

	// FindByID returns the post with the given id, or nil if absent.
	FindByID(ctx context.Context, id string) (*core.Post, error)

	// FindOne returns an arbitrary single post, or nil if the store is empty.
	FindOne(ctx context.Context) (*core.Post, error)

	// Update applies the set fields of the update to an existing post.
	// It reports whether a post with that id existed. Id and creation
	// timestamp are immutable and never touched.
	Update(ctx context.Context, id string, update core.PostUpdate) (bool, error)

	// Delete removes the post with the given id and reports whether it
	// existed. After a successful delete, FindByID yields nil for that id.
	Delete(ctx context.Context, id string) (bool, error)
}
