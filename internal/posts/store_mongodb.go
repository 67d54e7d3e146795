package posts

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"blogapi/internal/core"
)

const collectionName = "posts"

// Prometheus metric for failed post writes, so operators can detect data loss.
var postWriteFailures = promauto.NewCounter(
	prometheus.CounterOpts{
		Name: "blogapi_post_write_failures_total",
		Help: "Total number of failed post insert operations",
	},
)

// MongoStore implements Store on a MongoDB collection.
type MongoStore struct {
	collection *mongo.Collection
}

// NewMongoStore creates a post store on the given database.
// It creates the collection indexes if they don't exist.
func NewMongoStore(database *mongo.Database) (*MongoStore, error) {
	if database == nil {
		return nil, fmt.Errorf("database is required")
	}

	collection := database.Collection(collectionName)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "created", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "author.last_name", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		// Log warning but don't fail - indexes may already exist
		slog.Warn("failed to create some MongoDB indexes for posts", "error", err)
	}

	return &MongoStore{collection: collection}, nil
}

// newPost materializes an input into a stored document, assigning the id
// and creation timestamp.
func newPost(input core.PostInput) *core.Post {
	return &core.Post{
		ID:      uuid.New().String(),
		Title:   input.Title,
		Author:  input.Author,
		Content: input.Content,
		Created: time.Now().UTC().Truncate(time.Millisecond),
	}
}

// Insert stores one post.
func (s *MongoStore) Insert(ctx context.Context, input core.PostInput) (*core.Post, error) {
	post := newPost(input)

	if _, err := s.collection.InsertOne(ctx, post); err != nil {
		postWriteFailures.Inc()
		return nil, fmt.Errorf("failed to insert post: %w", err)
	}
	return post, nil
}

// InsertMany stores a batch of posts using a single ordered InsertMany.
func (s *MongoStore) InsertMany(ctx context.Context, inputs []core.PostInput) ([]*core.Post, error) {
	if len(inputs) == 0 {
		return nil, nil
	}

	inserted := make([]*core.Post, len(inputs))
	docs := make([]interface{}, len(inputs))
	for i, input := range inputs {
		post := newPost(input)
		inserted[i] = post
		docs[i] = post
	}

	// Ordered insert: a failure stops the batch, so the error reports the
	// first document that did not land.
	opts := options.InsertMany().SetOrdered(true)
	if _, err := s.collection.InsertMany(ctx, docs, opts); err != nil {
		postWriteFailures.Inc()
		return nil, fmt.Errorf("failed to insert %d posts: %w", len(inputs), err)
	}
	return inserted, nil
}

// List returns every post ordered by creation time.
func (s *MongoStore) List(ctx context.Context) ([]*core.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created", Value: 1}})
	cursor, err := s.collection.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer cursor.Close(ctx)

	var result []*core.Post
	if err := cursor.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("failed to decode posts: %w", err)
	}
	return result, nil
}

// Count returns the number of stored posts.
func (s *MongoStore) Count(ctx context.Context) (int64, error) {
	count, err := s.collection.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return count, nil
}

// FindByID returns the post with the given id, or nil if absent.
func (s *MongoStore) FindByID(ctx context.Context, id string) (*core.Post, error) {
	var post core.Post
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post %s: %w", id, err)
	}
	return &post, nil
}

// FindOne returns an arbitrary single post, or nil if the store is empty.
func (s *MongoStore) FindOne(ctx context.Context) (*core.Post, error) {
	var post core.Post
	err := s.collection.FindOne(ctx, bson.D{}).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post: %w", err)
	}
	return &post, nil
}

// Update applies the set fields of the update with $set.
func (s *MongoStore) Update(ctx context.Context, id string, update core.PostUpdate) (bool, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Author != nil {
		set["author"] = *update.Author
	}
	if update.Content != nil {
		set["content"] = *update.Content
	}
	if len(set) == 0 {
		// Nothing to change; still report whether the post exists.
		post, err := s.FindByID(ctx, id)
		return post != nil, err
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return false, fmt.Errorf("failed to update post %s: %w", id, err)
	}
	return result.MatchedCount > 0, nil
}

// Delete removes the post with the given id.
func (s *MongoStore) Delete(ctx context.Context, id string) (bool, error) {
	result, err := s.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete post %s: %w", id, err)
	}
	return result.DeletedCount > 0, nil
}
