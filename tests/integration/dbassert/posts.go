//go:build integration

// Package dbassert provides database assertion helpers for integration tests.
// It queries the MongoDB posts collection directly, bypassing the HTTP layer,
// to verify that observed mutations were actually persisted.
package dbassert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

const postsCollection = "posts"

// PostDoc mirrors the stored post document for test assertions.
// We use a separate type to avoid coupling tests to internal implementation details.
type PostDoc struct {
	ID      string    `bson:"_id"`
	Title   string    `bson:"title"`
	Author  AuthorDoc `bson:"author"`
	Content string    `bson:"content"`
	Created time.Time `bson:"created"`
}

// AuthorDoc mirrors the stored author subdocument.
type AuthorDoc struct {
	FirstName string `bson:"first_name"`
	LastName  string `bson:"last_name"`
}

// FindPostByID queries the posts collection directly for one document.
// A missing id yields nil, matching document-store lookup semantics.
func FindPostByID(t *testing.T, db *mongo.Database, id string) *PostDoc {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var doc PostDoc
	err := db.Collection(postsCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil
	}
	require.NoError(t, err, "failed to query post by id")
	return &doc
}

// CountPosts returns the live document count of the posts collection.
func CountPosts(t *testing.T, db *mongo.Database) int64 {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := db.Collection(postsCollection).CountDocuments(ctx, bson.D{})
	require.NoError(t, err, "failed to count posts")
	return count
}

// ExpectedPost contains expected stored field values.
// Empty values are not checked, allowing partial matching.
type ExpectedPost struct {
	Title     string
	FirstName string
	LastName  string
	Content   string
}

// AssertPostMatches verifies that the stored document matches expected values.
// Only non-empty expected values are checked.
func AssertPostMatches(t *testing.T, expected ExpectedPost, actual *PostDoc) {
	t.Helper()
	require.NotNil(t, actual, "expected a stored post, found none")

	if expected.Title != "" {
		assert.Equal(t, expected.Title, actual.Title, "title mismatch")
	}
	if expected.FirstName != "" {
		assert.Equal(t, expected.FirstName, actual.Author.FirstName, "author first name mismatch")
	}
	if expected.LastName != "" {
		assert.Equal(t, expected.LastName, actual.Author.LastName, "author last name mismatch")
	}
	if expected.Content != "" {
		assert.Equal(t, expected.Content, actual.Content, "content mismatch")
	}
}

// AssertPostFieldCompleteness verifies that all required fields are populated.
func AssertPostFieldCompleteness(t *testing.T, doc *PostDoc) {
	t.Helper()
	require.NotNil(t, doc, "expected a stored post, found none")

	assert.NotEmpty(t, doc.ID, "post id should not be empty")
	assert.NotEmpty(t, doc.Title, "post title should not be empty")
	assert.NotEmpty(t, doc.Author.FirstName, "post author first name should not be empty")
	assert.NotEmpty(t, doc.Author.LastName, "post author last name should not be empty")
	assert.NotEmpty(t, doc.Content, "post content should not be empty")
	assert.False(t, doc.Created.IsZero(), "post created timestamp should not be zero")
}

// AssertPostAbsent verifies that no document with the given id exists.
// After a delete, this is the expected terminal state, not an error.
func AssertPostAbsent(t *testing.T, db *mongo.Database, id string) {
	t.Helper()

	doc := FindPostByID(t, db, id)
	assert.Nil(t, doc, "expected post %s to be absent, found %+v", id, doc)
}
