package global

import (
	"context"
)

var webServer WebServer

// WebServer is the handle background jobs use to observe the running
// server's lifetime without importing the web package.
type WebServer interface {
	GetCtx() context.Context
}

func SetWebServer(s WebServer) {
	webServer = s
}

func GetWebServer() WebServer {
	return webServer
}
