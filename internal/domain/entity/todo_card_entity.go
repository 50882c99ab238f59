package entity

import "time"

// TodoCard is owned by exactly one user, fixed at creation.
type TodoCard struct {
	ID          int64
	Title       string
	Description string
	Category    Category
	Completed   bool
	ImageURL    string
	UserID      int64
	User        *User
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// OwnedBy reports whether userID is the card owner.
func (t *TodoCard) OwnedBy(userID int64) bool {
	return t.UserID == userID
}

// TodoCardFilter holds the optional filters of a listing; nil means unconstrained.
type TodoCardFilter struct {
	Keyword   *string
	Category  *Category
	Completed *bool
}
