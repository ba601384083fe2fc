package controller

import (
	"errors"
	"net/http"

	"picturestream/config"
	"picturestream/database/model"
	"picturestream/logger"
	"picturestream/web/service"
	"picturestream/web/session"

	"github.com/gin-gonic/gin"
)

type LoginForm struct {
	Username string `json:"username" form:"username"`
	Password string `json:"password" form:"password"`
}

type RegisterForm struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

// IndexController handles the entry, login, registration and logout routes.
type IndexController struct {
	BaseController

	userService service.UserService
}

func NewIndexController(g *gin.RouterGroup) *IndexController {
	a := &IndexController{}
	a.initRouter(g)
	return a
}

func (a *IndexController) initRouter(g *gin.RouterGroup) {
	g.GET("/", a.index)
	g.GET("/login", a.loginPage)
	g.POST("/login", a.login)
	g.GET("/register", a.registerPage)
	g.POST("/register", a.register)
	g.GET("/logout", a.logout)
}

// index sends logged-in users to the stream and everyone else to the login
// page.
func (a *IndexController) index(c *gin.Context) {
	if session.IsLogin(c) {
		c.Redirect(http.StatusSeeOther, "/picturestream")
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

func (a *IndexController) loginPage(c *gin.Context) {
	html(c, "login.html", "pages.login.title", gin.H{
		"error": c.Query("error"),
	})
}

// login authenticates the user and establishes the session.
func (a *IndexController) login(c *gin.Context) {
	var form LoginForm

	if err := c.ShouldBind(&form); err != nil {
		a.loginError(c, I18nWeb(c, "pages.login.invalidCredentials"))
		return
	}
	if form.Username == "" {
		a.loginError(c, I18nWeb(c, "pages.login.emptyUsername"))
		return
	}
	if form.Password == "" {
		a.loginError(c, I18nWeb(c, "pages.login.emptyPassword"))
		return
	}

	user, err := a.userService.CheckUser(form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameNotFound):
			logger.Warningf("login with unknown username %q from %s", form.Username, getRemoteIp(c))
			a.loginError(c, I18nWeb(c, "pages.login.usernameNotFound"))
		case errors.Is(err, service.ErrInvalidCredentials):
			logger.Warningf("wrong password for %q from %s", form.Username, getRemoteIp(c))
			a.loginError(c, I18nWeb(c, "pages.login.invalidCredentials"))
		default:
			a.loginError(c, I18nWeb(c, "pages.login.serverError"))
		}
		return
	}

	session.SetMaxAge(c, config.GetSessionMaxAge()*60)
	sessionUser := &model.SessionUser{Id: user.Id, Username: user.Username}
	if err := session.SetLoginUser(c, sessionUser); err != nil {
		logger.Warning("unable to save session:", err)
		a.loginError(c, I18nWeb(c, "pages.login.serverError"))
		return
	}

	logger.Infof("%s logged in successfully, IP: %s", user.Username, getRemoteIp(c))
	if isAjax(c) {
		jsonObj(c, sessionUser, nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/picturestream")
}

func (a *IndexController) loginError(c *gin.Context, msg string) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusOK, false, msg)
		return
	}
	html(c, "login.html", "pages.login.title", gin.H{"error": msg})
}

func (a *IndexController) registerPage(c *gin.Context) {
	html(c, "register.html", "pages.register.title", gin.H{
		"error": c.Query("error"),
	})
}

// register validates the policy and creates the user, then sends them to the
// login page.
func (a *IndexController) register(c *gin.Context) {
	var form RegisterForm

	if err := c.ShouldBind(&form); err != nil {
		a.registerError(c, I18nWeb(c, "pages.register.serverError"))
		return
	}

	_, err := a.userService.Register(form.Username, form.Email, form.Password)
	if err != nil {
		a.registerError(c, a.registerErrorMessage(c, err))
		return
	}

	logger.Infof("user %s registered, IP: %s", form.Username, getRemoteIp(c))
	if isAjax(c) {
		jsonMsg(c, "", nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/login")
}

// registerErrorMessage maps a registration failure onto its localized
// user-facing message.
func (a *IndexController) registerErrorMessage(c *gin.Context, err error) string {
	switch {
	case errors.Is(err, service.ErrUsernameNotAlphanumeric):
		return I18nWeb(c, "pages.register.usernameAlphanum")
	case errors.Is(err, service.ErrUsernameTooShort):
		return I18nWeb(c, "pages.register.usernameMinLength")
	case errors.Is(err, service.ErrEmailInvalid):
		return I18nWeb(c, "pages.register.emailInvalid")
	case errors.Is(err, service.ErrPasswordTooShort):
		return I18nWeb(c, "pages.register.passwordMinLength")
	case errors.Is(err, service.ErrUsernameTaken):
		return I18nWeb(c, "pages.register.usernameTaken")
	case errors.Is(err, service.ErrEmailTaken):
		return I18nWeb(c, "pages.register.emailTaken")
	case errors.Is(err, service.ErrDuplicateUser):
		return I18nWeb(c, "pages.register.duplicate")
	default:
		return I18nWeb(c, "pages.register.serverError")
	}
}

func (a *IndexController) registerError(c *gin.Context, msg string) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusOK, false, msg)
		return
	}
	html(c, "register.html", "pages.register.title", gin.H{"error": msg})
}

// logout destroys the session and returns to the login page.
func (a *IndexController) logout(c *gin.Context) {
	if user := session.GetLoginUser(c); user != nil {
		logger.Infof("%s logged out", user.Username)
	}
	if err := session.ClearSession(c); err != nil {
		logger.Warning("unable to clear session:", err)
	}
	c.Redirect(http.StatusSeeOther, "/login")
}
