package models

import "time"

// Post is authored content. Posts are never edited; deleting one removes its
// likes and comments through the foreign keys.
type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Account   *Account  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null;default:''" json:"content"`
	Image     *string   `json:"image"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// Like records that an account endorses a post. The composite key makes likes a set.
type Like struct {
	AccountID uint      `gorm:"primaryKey;autoIncrement:false" json:"account_id"`
	PostID    uint      `gorm:"primaryKey;autoIncrement:false;index" json:"post_id"`
	Account   *Account  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Comment is a remark on a post. Comments are append-only.
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index:idx_comments_post_created,priority:1" json:"post_id"`
	AccountID uint      `gorm:"not null;index" json:"account_id"`
	Post      *Post     `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Account   *Account  `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"-"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_comments_post_created,priority:2" json:"created_at"`
}
