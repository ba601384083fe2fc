package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"os"
	"strings"
	"testing"

	"picturestream/database"
	"picturestream/logger"
	"picturestream/web/entity"
	"picturestream/web/locale"
	"picturestream/web/service"
	"picturestream/web/session"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("PSTREAM_LOG_FOLDER", os.TempDir())
	logger.InitLogger(logging.ERROR)
	code := m.Run()
	logger.CloseLogger()
	os.Exit(code)
}

func setup() {
	dbPath := "test.db"
	os.Remove(dbPath)
	database.InitDB(dbPath)
}

func teardown() {
	db, _ := database.GetDB().DB()
	db.Close()
	os.Remove("test.db")
}

// newRouter builds the engine the way web.Server does, minus templates; the
// tests stay on redirect and XHR paths.
func newRouter() *gin.Engine {
	engine := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	engine.Use(sessions.Sessions(session.CookieName, store))
	engine.Use(func(c *gin.Context) {
		c.Set("I18n", locale.I18nFunc(func(key string, params ...string) string {
			return key
		}))
		c.Next()
	})

	g := engine.Group("/")
	NewIndexController(g)
	NewStreamController(g)
	return engine
}

func doForm(engine *gin.Engine, method, path, cookieHeader string, form url.Values) *httptest.ResponseRecorder {
	var body *strings.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	} else {
		body = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func doAjax(engine *gin.Engine, method, path, cookieHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) string {
	for _, sc := range w.Result().Cookies() {
		if sc.Name == session.CookieName {
			return sc.Name + "=" + sc.Value
		}
	}
	return ""
}

func TestGuardRedirectsWithoutSession(t *testing.T) {
	setup()
	defer teardown()

	engine := newRouter()

	for _, path := range []string{"/picturestream", "/mypicturestream", "/upload"} {
		w := doForm(engine, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusSeeOther, w.Code, path)
		assert.Equal(t, "/login", w.Header().Get("Location"), path)
	}

	// guarded writes never reach the store
	w := doForm(engine, http.MethodPost, "/favorite/1", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	pictureService := service.PictureService{}
	pictures, err := pictureService.GetAll()
	assert.NoError(t, err)
	assert.Empty(t, pictures)
}

func TestIndexRedirect(t *testing.T) {
	setup()
	defer teardown()

	engine := newRouter()

	w := doForm(engine, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func uploadRequest(t *testing.T, path, cookieHeader, title string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	assert.NoError(t, mw.WriteField("title", title))
	assert.NoError(t, mw.WriteField("description", "test upload"))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="picture"; filename="test.jpg"`)
	header.Set("Content-Type", "image/jpeg")
	part, err := mw.CreatePart(header)
	assert.NoError(t, err)
	_, err = part.Write([]byte("not really a jpeg"))
	assert.NoError(t, err)
	assert.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if cookieHeader != "" {
		req.Header.Set("Cookie", cookieHeader)
	}
	return req
}

func TestRegisterLoginUploadFavoriteScenario(t *testing.T) {
	setup()
	defer teardown()
	t.Setenv("PSTREAM_UPLOAD_FOLDER", t.TempDir())

	engine := newRouter()

	w := doForm(engine, http.MethodPost, "/register", "", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	w = doForm(engine, http.MethodPost, "/login", "", url.Values{
		"username": {"alice"},
		"password": {"secret1"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/picturestream", w.Header().Get("Location"))
	cookieHeader := sessionCookie(w)
	assert.NotEmpty(t, cookieHeader)

	req := uploadRequest(t, "/upload", cookieHeader, "sunset")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/picturestream", w.Header().Get("Location"))

	w = doAjax(engine, http.MethodGet, "/picturestream", cookieHeader)
	assert.Equal(t, http.StatusOK, w.Code)

	var streamMsg struct {
		Success bool                    `json:"success"`
		Obj     []*entity.StreamPicture `json:"obj"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &streamMsg))
	assert.True(t, streamMsg.Success)
	assert.Len(t, streamMsg.Obj, 1)
	assert.Equal(t, "sunset", streamMsg.Obj[0].Title)
	assert.Equal(t, "alice", streamMsg.Obj[0].Username)

	w = doForm(engine, http.MethodPost, fmt.Sprintf("/favorite/%d", streamMsg.Obj[0].Id), cookieHeader, nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/picturestream", w.Header().Get("Location"))

	w = doAjax(engine, http.MethodGet, "/mypicturestream", cookieHeader)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &streamMsg))
	assert.Len(t, streamMsg.Obj, 1)
	assert.Equal(t, "sunset", streamMsg.Obj[0].Title)
}

func TestLoginFailuresAjax(t *testing.T) {
	setup()
	defer teardown()

	engine := newRouter()

	w := doForm(engine, http.MethodPost, "/register", "", url.Values{
		"username": {"alice"},
		"email":    {"alice@example.com"},
		"password": {"secret1"},
	})
	assert.Equal(t, http.StatusSeeOther, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(url.Values{"username": {"alice"}, "password": {"wrong"}}.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	var msg entity.Msg
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &msg))
	assert.False(t, msg.Success)
	assert.Equal(t, "pages.login.invalidCredentials", msg.Msg)
}
