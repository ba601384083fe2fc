// Package web provides the picturestream web server: routing, templates,
// sessions, static upload serving and background job scheduling.
package web

import (
	"context"
	"embed"
	"html/template"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"strconv"

	"picturestream/config"
	"picturestream/logger"
	"picturestream/util/common"
	"picturestream/util/random"
	redisutil "picturestream/util/redis"
	"picturestream/web/cache"
	"picturestream/web/controller"
	"picturestream/web/job"
	"picturestream/web/locale"
	"picturestream/web/middleware"
	"picturestream/web/session"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

//go:embed html/*
var htmlFS embed.FS

//go:embed translation/*
var i18nFS embed.FS

// Server is the picturestream web server with its controllers and scheduled
// jobs.
type Server struct {
	httpServer *http.Server
	listener   net.Listener

	index  *controller.IndexController
	stream *controller.StreamController

	cron *cron.Cron

	ctx    context.Context
	cancel context.CancelFunc
}

func NewServer() *Server {
	ctx, cancel := context.WithCancel(context.Background())
	return &Server{ctx: ctx, cancel: cancel}
}

// getHtmlFiles walks the local `web/html` directory. Used only in
// debug/development mode so template edits apply without a rebuild.
func (s *Server) getHtmlFiles() ([]string, error) {
	files := make([]string, 0)
	dir, _ := os.Getwd()
	err := fs.WalkDir(os.DirFS(dir), "web/html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// getHtmlTemplate parses the embedded HTML templates.
func (s *Server) getHtmlTemplate(funcMap template.FuncMap) (*template.Template, error) {
	t := template.New("").Funcs(funcMap)
	err := fs.WalkDir(htmlFS, "html", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			newT, err := t.ParseFS(htmlFS, path+"/*.html")
			if err != nil {
				// ignore folders without matches
				return nil
			}
			t = newT
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// sessionStore picks the redis-backed store when redis is configured and the
// cookie store otherwise.
func (s *Server) sessionStore() sessions.Store {
	secret := config.GetSessionSecret()
	if secret == "" {
		secret = random.Seq(32)
		logger.Warning("PSTREAM_SESSION_SECRET not set, sessions will not survive a restart")
	}

	var store sessions.Store
	if redisutil.IsEnabled() {
		store = cache.NewRedisStore(redisutil.Client(), []byte(secret))
	} else {
		store = cookie.NewStore([]byte(secret))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   config.GetSessionMaxAge() * 60,
		HttpOnly: true,
	})
	return store
}

// initRouter initializes Gin, registers middleware, templates, the upload
// folder and the controllers.
func (s *Server) initRouter() (*gin.Engine, error) {
	if config.IsDebug() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.DefaultWriter = io.Discard
		gin.DefaultErrorWriter = io.Discard
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.Default()

	engine.Use(gzip.Gzip(
		gzip.DefaultCompression,
		gzip.WithExcludedPaths([]string{"/uploads/"}),
	))

	engine.Use(sessions.Sessions(session.CookieName, s.sessionStore()))

	if err := locale.InitLocalizer(i18nFS); err != nil {
		return nil, err
	}
	engine.Use(locale.LocalizerMiddleware())

	i18nWebFunc := func(key string, params ...string) string {
		return locale.I18n(key, params...)
	}
	funcMap := template.FuncMap{"i18n": i18nWebFunc}
	engine.SetFuncMap(funcMap)

	if config.IsDebug() {
		files, err := s.getHtmlFiles()
		if err != nil {
			return nil, err
		}
		engine.LoadHTMLFiles(files...)
	} else {
		tpl, err := s.getHtmlTemplate(funcMap)
		if err != nil {
			return nil, err
		}
		engine.SetHTMLTemplate(tpl)
	}

	uploadDir := config.GetUploadFolderPath()
	if err := os.MkdirAll(uploadDir, 0o750); err != nil {
		return nil, err
	}
	engine.Static("/uploads", uploadDir)

	engine.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig()))

	g := engine.Group("/")
	s.index = controller.NewIndexController(g)
	s.stream = controller.NewStreamController(g)

	engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	return engine, nil
}

// startTask schedules the background jobs.
func (s *Server) startTask() {
	s.cron.AddJob("@daily", job.NewOrphanUploadSweepJob())
}

// Start initializes and starts the web server.
func (s *Server) Start() (err error) {
	defer func() {
		if err != nil {
			_ = s.Stop()
		}
	}()

	s.cron = cron.New()
	s.cron.Start()

	engine, err := s.initRouter()
	if err != nil {
		return err
	}

	listenAddr := net.JoinHostPort(config.GetListen(), strconv.Itoa(config.GetPort()))
	listener, err := net.Listen("tcp", listenAddr)
	if err != nil {
		return err
	}
	logger.Info("web server running HTTP on", listener.Addr())

	s.listener = listener
	s.httpServer = &http.Server{Handler: engine}

	go func() {
		_ = s.httpServer.Serve(listener)
	}()

	s.startTask()

	return nil
}

// Stop gracefully shuts down the web server and the cron scheduler.
func (s *Server) Stop() error {
	s.cancel()
	if s.cron != nil {
		s.cron.Stop()
	}
	var err1, err2 error
	if s.httpServer != nil {
		err1 = s.httpServer.Shutdown(s.ctx)
	}
	if s.listener != nil {
		err2 = s.listener.Close()
	}
	return common.Combine(err1, err2)
}

func (s *Server) GetCtx() context.Context { return s.ctx }
