package domain

import "time"

// Post is a text post owned by exactly one user. AccountID is fixed at
// creation time; ownership is the only authorization predicate in the system.
// The vote count is derived from the votes relation, never stored here.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"not null"`
	Text      string    `json:"text" gorm:"not null"`
	AccountID uint      `json:"account_id" gorm:"not null;index"`
	Account   User      `json:"-" gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}

func (Post) TableName() string { return "posts" }
