package domain

// Vote marks that a user has up-voted a post. The composite primary key
// (user_id, post_id) is what enforces "at most one vote per user per post";
// concurrent duplicate inserts are rejected by the database, not by the
// application.
type Vote struct {
	UserID uint `json:"user_id" gorm:"primaryKey"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	PostID uint `json:"post_id" gorm:"primaryKey"`
	Post   Post `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// Vote options accepted by the votes endpoint: add or withdraw.
const (
	VoteAdd      = 1
	VoteWithdraw = 0
)
