package session

import (
	"encoding/gob"

	"picturestream/database/model"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const loginUser = "LOGIN_USER"

// CookieName is the session cookie written by the sessions middleware.
const CookieName = "picturestream"

func init() {
	gob.Register(model.SessionUser{})
}

func SetLoginUser(c *gin.Context, user *model.SessionUser) error {
	s := sessions.Default(c)
	s.Set(loginUser, *user)
	return s.Save()
}

// SetMaxAge refreshes the inactivity window of the session cookie.
func SetMaxAge(c *gin.Context, maxAge int) {
	s := sessions.Default(c)
	s.Options(sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
	})
}

func GetLoginUser(c *gin.Context) *model.SessionUser {
	s := sessions.Default(c)
	if obj := s.Get(loginUser); obj != nil {
		if user, ok := obj.(model.SessionUser); ok {
			return &user
		}
	}
	return nil
}

func IsLogin(c *gin.Context) bool {
	return GetLoginUser(c) != nil
}

func ClearSession(c *gin.Context) error {
	s := sessions.Default(c)
	s.Clear()
	s.Options(sessions.Options{
		Path:   "/",
		MaxAge: -1,
	})
	if err := s.Save(); err != nil {
		return err
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}
