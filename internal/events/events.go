// Package events describes feed domain events and the sinks they are published to.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// Event types emitted after a successful feed mutation.
const (
	TypePostCreated    = "post_created"
	TypePostDeleted    = "post_deleted"
	TypeLikeToggled    = "like_toggled"
	TypeCommentCreated = "comment_created"
)

// Payload is the body of a feed event.
type Payload struct {
	PostID    uint      `json:"postId"`
	AccountID uint      `json:"accountId"`
	CommentID uint      `json:"commentId,omitempty"`
	Liked     *bool     `json:"liked,omitempty"`
	At        time.Time `json:"at"`
}

// Event is the envelope written to every sink.
type Event struct {
	Type    string  `json:"type"`
	Payload Payload `json:"payload"`
}

// Encode returns the wire form of e.
func (e Event) Encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }

// Multi fans an event out to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PostCreated builds the event for a new post.
func PostCreated(postID, accountID uint, at time.Time) Event {
	return Event{Type: TypePostCreated, Payload: Payload{PostID: postID, AccountID: accountID, At: at}}
}

// PostDeleted builds the event for a removed post.
func PostDeleted(postID, accountID uint, at time.Time) Event {
	return Event{Type: TypePostDeleted, Payload: Payload{PostID: postID, AccountID: accountID, At: at}}
}

// LikeToggled builds the event for a like flip.
func LikeToggled(postID, accountID uint, liked bool, at time.Time) Event {
	return Event{Type: TypeLikeToggled, Payload: Payload{PostID: postID, AccountID: accountID, Liked: &liked, At: at}}
}

// CommentCreated builds the event for a new comment.
func CommentCreated(postID, accountID, commentID uint, at time.Time) Event {
	return Event{Type: TypeCommentCreated, Payload: Payload{PostID: postID, AccountID: accountID, CommentID: commentID, At: at}}
}
