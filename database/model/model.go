package model

import "time"

type User struct {
	Id       int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username string `json:"username" form:"username" gorm:"uniqueIndex;not null"`
	Password string `json:"-" form:"password" gorm:"not null"`
	Email    string `json:"email" form:"email" gorm:"uniqueIndex;not null"`
}

// SessionUser is the subset of User kept in the session. The password hash
// never leaves the database.
type SessionUser struct {
	Id       int    `json:"id"`
	Username string `json:"username"`
}

type Picture struct {
	Id          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	FileName    string    `json:"fileName" gorm:"uniqueIndex;not null"`
	Title       string    `json:"title" form:"title" gorm:"not null"`
	Description string    `json:"description" form:"description"`
	UserId      int       `json:"userId" gorm:"index"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type Favorite struct {
	Id         int  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserId     int  `json:"userId" gorm:"uniqueIndex:idx_favorites_user_picture"`
	PictureId  int  `json:"pictureId" gorm:"uniqueIndex:idx_favorites_user_picture"`
	IsFavorite bool `json:"isFavorite" gorm:"default:false"`
}

// TableName keeps the relation table name of the original schema.
func (Favorite) TableName() string {
	return "users_pictures_favorites"
}
