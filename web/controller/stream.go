package controller

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"picturestream/config"
	"picturestream/logger"
	"picturestream/web/service"
	"picturestream/web/session"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadForm struct {
	Title       string `form:"title"`
	Description string `form:"description"`
}

// StreamController handles the authenticated picture routes: the shared
// stream, the favorites stream, uploads and favoriting.
type StreamController struct {
	BaseController

	pictureService  service.PictureService
	favoriteService service.FavoriteService
}

func NewStreamController(g *gin.RouterGroup) *StreamController {
	a := &StreamController{}
	a.initRouter(g)
	return a
}

func (a *StreamController) initRouter(g *gin.RouterGroup) {
	g.Use(a.checkLogin)

	g.GET("/picturestream", a.pictureStream)
	g.GET("/mypicturestream", a.myPictureStream)
	g.GET("/upload", a.uploadPage)
	g.POST("/upload", a.upload)
	g.POST("/favorite/:id", a.favorite)
}

// pictureStream renders every picture, newest first.
func (a *StreamController) pictureStream(c *gin.Context) {
	pictures, err := a.pictureService.GetAll()
	if err != nil {
		logger.Warning("load picture stream err:", err)
		html(c, "picturestream.html", "pages.stream.title", gin.H{
			"error": I18nWeb(c, "pages.stream.loadError"),
		})
		return
	}
	if isAjax(c) {
		jsonObj(c, pictures, nil)
		return
	}
	html(c, "picturestream.html", "pages.stream.title", gin.H{
		"pictures": pictures,
		"error":    c.Query("error"),
	})
}

// myPictureStream renders the caller's favorited pictures.
func (a *StreamController) myPictureStream(c *gin.Context) {
	user := session.GetLoginUser(c)
	pictures, err := a.pictureService.GetFavorites(user.Id)
	if err != nil {
		logger.Warning("load favorites err:", err)
		html(c, "mypicturestream.html", "pages.myStream.title", gin.H{
			"error": I18nWeb(c, "pages.myStream.loadError"),
		})
		return
	}
	if isAjax(c) {
		jsonObj(c, pictures, nil)
		return
	}
	html(c, "mypicturestream.html", "pages.myStream.title", gin.H{
		"pictures": pictures,
	})
}

func (a *StreamController) uploadPage(c *gin.Context) {
	html(c, "upload.html", "pages.upload.title", nil)
}

// upload receives the multipart file, stores it under a server-generated
// name and inserts the metadata row. A failed insert removes the stored file
// again so no orphan remains.
func (a *StreamController) upload(c *gin.Context) {
	var form UploadForm
	if err := c.ShouldBind(&form); err != nil {
		a.uploadError(c, I18nWeb(c, "pages.upload.saveError"))
		return
	}
	if strings.TrimSpace(form.Title) == "" {
		a.uploadError(c, I18nWeb(c, "pages.upload.titleRequired"))
		return
	}

	file, err := c.FormFile("picture")
	if err != nil {
		a.uploadError(c, I18nWeb(c, "pages.upload.fileMissing"))
		return
	}
	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		a.uploadError(c, I18nWeb(c, "pages.upload.notImage"))
		return
	}

	uploadDir := config.GetUploadFolderPath()
	if err := os.MkdirAll(uploadDir, 0o750); err != nil {
		logger.Error("create upload folder err:", err)
		a.uploadError(c, I18nWeb(c, "pages.upload.saveError"))
		return
	}

	fileName := uuid.NewString() + strings.ToLower(filepath.Ext(file.Filename))
	dst := filepath.Join(uploadDir, fileName)
	if err := c.SaveUploadedFile(file, dst); err != nil {
		logger.Error("save upload err:", err)
		a.uploadError(c, I18nWeb(c, "pages.upload.saveError"))
		return
	}

	user := session.GetLoginUser(c)
	if _, err := a.pictureService.Create(form.Title, form.Description, fileName, user.Id); err != nil {
		if removeErr := os.Remove(dst); removeErr != nil {
			logger.Warning("remove orphaned upload err:", removeErr)
		}
		a.uploadError(c, I18nWeb(c, "pages.upload.saveError"))
		return
	}

	logger.Infof("%s uploaded %s", user.Username, fileName)
	if isAjax(c) {
		jsonMsg(c, "", nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/picturestream")
}

func (a *StreamController) uploadError(c *gin.Context, msg string) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusOK, false, msg)
		return
	}
	html(c, "upload.html", "pages.upload.title", gin.H{"error": msg})
}

// favorite records the caller's favorite for the picture in the path.
func (a *StreamController) favorite(c *gin.Context) {
	pictureId, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		a.favoriteError(c, I18nWeb(c, "pages.stream.favoriteError"))
		return
	}

	user := session.GetLoginUser(c)
	if err := a.favoriteService.Add(user.Id, pictureId); err != nil {
		a.favoriteError(c, I18nWeb(c, "pages.stream.favoriteError"))
		return
	}

	if isAjax(c) {
		jsonMsg(c, "", nil)
		return
	}
	c.Redirect(http.StatusSeeOther, "/picturestream")
}

func (a *StreamController) favoriteError(c *gin.Context, msg string) {
	if isAjax(c) {
		pureJsonMsg(c, http.StatusOK, false, msg)
		return
	}
	c.Redirect(http.StatusSeeOther, "/picturestream?error="+url.QueryEscape(msg))
}
