package models

import "time"

// FeedRow is one post joined with its author and like count.
type FeedRow struct {
	PostID           uint      `gorm:"column:post_id" json:"postId"`
	AuthorID         uint      `gorm:"column:author_id" json:"authorId"`
	AuthorName       string    `gorm:"column:author_name" json:"authorName"`
	AuthorProfession string    `gorm:"column:author_profession" json:"authorProfession"`
	AuthorImage      *string   `gorm:"column:author_image" json:"authorImage"`
	Content          string    `gorm:"column:content" json:"content"`
	Image            *string   `gorm:"column:image" json:"image"`
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	LikeCount        int64     `gorm:"column:like_count" json:"likeCount"`
}

// CommentView is a comment joined with its author name.
type CommentView struct {
	CommentID  uint      `gorm:"column:comment_id" json:"commentId"`
	PostID     uint      `gorm:"column:post_id" json:"-"`
	AuthorID   uint      `gorm:"column:author_id" json:"authorId"`
	AuthorName string    `gorm:"column:author_name" json:"authorName"`
	Content    string    `gorm:"column:content" json:"content"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"createdAt"`
}

// FeedEntry is the read-side view of a post. It is rebuilt on every read.
type FeedEntry struct {
	FeedRow
	Comments []CommentView `json:"comments"`
}
