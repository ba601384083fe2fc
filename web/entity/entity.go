package entity

import "time"

// Msg is the JSON envelope returned to XHR callers.
type Msg struct {
	Success bool   `json:"success"`
	Msg     string `json:"msg"`
	Obj     any    `json:"obj"`
}

// StreamPicture is a picture row joined with its owner's username for the
// stream views.
type StreamPicture struct {
	Id          int       `json:"id"`
	FileName    string    `json:"fileName"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserId      int       `json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
	Username    string    `json:"username"`
}
