// Package core provides the domain types shared by the store and the HTTP layer.
package core

import "time"

// Author is the composite name pair carried on every post.
// The HTTP layer serializes it as a single display string; the
// store keeps both parts so they can be verified independently.
type Author struct {
	FirstName string `json:"firstName" bson:"first_name"`
	LastName  string `json:"lastName" bson:"last_name"`
}

// Display returns the external representation: first and last name
// joined by exactly one space.
func (a Author) Display() string {
	return a.FirstName + " " + a.LastName
}

// Post is the stored document. ID and Created are assigned once at
// insert and never change afterwards.
type Post struct {
	ID      string    `bson:"_id"`
	Title   string    `bson:"title"`
	Author  Author    `bson:"author"`
	Content string    `bson:"content"`
	Created time.Time `bson:"created"`
}

// PostInput is the payload accepted by POST /posts. All fields are required.
type PostInput struct {
	Title   string `json:"title"`
	Author  Author `json:"author"`
	Content string `json:"content"`
}

// Validate checks that every required field is present.
func (in *PostInput) Validate() error {
	switch {
	case in.Title == "":
		return NewInvalidRequestError("title is required", nil)
	case in.Author.FirstName == "":
		return NewInvalidRequestError("author.firstName is required", nil)
	case in.Author.LastName == "":
		return NewInvalidRequestError("author.lastName is required", nil)
	case in.Content == "":
		return NewInvalidRequestError("content is required", nil)
	}
	return nil
}

// PostUpdate is the payload accepted by PUT /posts/{id}. Nil fields are
// left untouched, so a partial body updates only what it names.
type PostUpdate struct {
	Title   *string `json:"title"`
	Author  *Author `json:"author"`
	Content *string `json:"content"`
}

// Validate rejects updates that would blank out a required field.
func (u *PostUpdate) Validate() error {
	if u.Title == nil && u.Author == nil && u.Content == nil {
		return NewInvalidRequestError("update body must set at least one field", nil)
	}
	if u.Title != nil && *u.Title == "" {
		return NewInvalidRequestError("title must not be empty", nil)
	}
	if u.Author != nil && (u.Author.FirstName == "" || u.Author.LastName == "") {
		return NewInvalidRequestError("author.firstName and author.lastName are required", nil)
	}
	if u.Content != nil && *u.Content == "" {
		return NewInvalidRequestError("content must not be empty", nil)
	}
	return nil
}
