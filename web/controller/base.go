// Package controller provides the HTTP handlers for the picturestream web
// application: authentication, the picture streams, uploads and favorites.
package controller

import (
	"net/http"

	"picturestream/web/session"

	"github.com/gin-gonic/gin"
)

// BaseController provides the session guard shared by all authenticated
// routes.
type BaseController struct{}

// checkLogin lets authenticated requests pass and redirects everything else
// to the login page. XHR callers get a 401 envelope instead.
func (a *BaseController) checkLogin(c *gin.Context) {
	if !session.IsLogin(c) {
		if isAjax(c) {
			pureJsonMsg(c, http.StatusUnauthorized, false, I18nWeb(c, "pages.login.title"))
		} else {
			c.Redirect(http.StatusSeeOther, "/login")
		}
		c.Abort()
	} else {
		c.Next()
	}
}
