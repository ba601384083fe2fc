package controller

import (
	"net"
	"net/http"
	"strings"

	"picturestream/config"
	"picturestream/logger"
	"picturestream/web/entity"
	"picturestream/web/locale"
	"picturestream/web/session"

	"github.com/gin-gonic/gin"
)

// getRemoteIp extracts the real client IP from proxy headers or the remote
// address.
func getRemoteIp(c *gin.Context) string {
	value := c.GetHeader("X-Real-IP")
	if value != "" {
		return value
	}
	value = c.GetHeader("X-Forwarded-For")
	if value != "" {
		ips := strings.Split(value, ",")
		return ips[0]
	}
	addr := c.Request.RemoteAddr
	ip, _, _ := net.SplitHostPort(addr)
	return ip
}

// I18nWeb resolves a localized message through the function installed by the
// locale middleware.
func I18nWeb(c *gin.Context, key string, params ...string) string {
	anyfunc, funcExists := c.Get("I18n")
	if !funcExists {
		logger.Warning("I18n function not exists in gin context!")
		return key
	}
	i18nFunc, ok := anyfunc.(locale.I18nFunc)
	if !ok {
		return key
	}
	return i18nFunc(key, params...)
}

func jsonMsg(c *gin.Context, msg string, err error) {
	jsonMsgObj(c, msg, nil, err)
}

func jsonObj(c *gin.Context, obj any, err error) {
	jsonMsgObj(c, "", obj, err)
}

func jsonMsgObj(c *gin.Context, msg string, obj any, err error) {
	m := entity.Msg{
		Obj: obj,
	}
	if err == nil {
		m.Success = true
		if msg != "" {
			m.Msg = msg
		}
	} else {
		m.Success = false
		m.Msg = msg + " (" + err.Error() + ")"
		logger.Warning(msg+" "+I18nWeb(c, "fail")+": ", err)
	}
	c.JSON(http.StatusOK, m)
}

func pureJsonMsg(c *gin.Context, statusCode int, success bool, msg string) {
	c.JSON(statusCode, entity.Msg{
		Success: success,
		Msg:     msg,
	})
}

// html renders a template with the localized title and the logged-in user
// attached.
func html(c *gin.Context, name string, title string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["title"] = I18nWeb(c, title)
	if user := session.GetLoginUser(c); user != nil {
		data["user"] = user
	}
	data["cur_ver"] = config.GetVersion()
	c.HTML(http.StatusOK, name, data)
}

// isAjax checks if the request is an AJAX request.
func isAjax(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}
