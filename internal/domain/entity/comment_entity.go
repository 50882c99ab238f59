package entity

import "time"

type Comment struct {
	ID         int64
	Content    string
	UserID     int64
	User       *User
	TodoCardID int64
	CreatedAt  time.Time
}
