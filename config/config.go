package config

import (
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"strings"
)

//go:embed version
var version string

//go:embed name
var name string

type LogLevel string

const (
	Debug  LogLevel = "debug"
	Info   LogLevel = "info"
	Notice LogLevel = "notice"
	Warn   LogLevel = "warn"
	Error  LogLevel = "error"
)

const defaultPort = 3000

func GetVersion() string {
	return strings.TrimSpace(version)
}

func GetName() string {
	return strings.TrimSpace(name)
}

func GetLogLevel() LogLevel {
	if IsDebug() {
		return Debug
	}
	logLevel := os.Getenv("PSTREAM_LOG_LEVEL")
	if logLevel == "" {
		return Info
	}
	return LogLevel(logLevel)
}

func IsDebug() bool {
	return os.Getenv("PSTREAM_DEBUG") == "true"
}

func GetListen() string {
	return os.Getenv("PSTREAM_LISTEN")
}

func GetPort() int {
	portStr := os.Getenv("PSTREAM_PORT")
	if portStr == "" {
		return defaultPort
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return defaultPort
	}
	return port
}

func GetDBFolderPath() string {
	dbFolderPath := os.Getenv("PSTREAM_DB_FOLDER")
	if dbFolderPath == "" {
		dbFolderPath = "db"
	}
	return dbFolderPath
}

func GetDBPath() string {
	return fmt.Sprintf("%s/%s.db", GetDBFolderPath(), GetName())
}

func GetUploadFolderPath() string {
	uploadFolderPath := os.Getenv("PSTREAM_UPLOAD_FOLDER")
	if uploadFolderPath == "" {
		uploadFolderPath = "public/uploads"
	}
	return uploadFolderPath
}

func GetLogFolder() string {
	logFolderPath := os.Getenv("PSTREAM_LOG_FOLDER")
	if logFolderPath == "" {
		logFolderPath = "log"
	}
	return logFolderPath
}

func GetSessionSecret() string {
	return os.Getenv("PSTREAM_SESSION_SECRET")
}

// GetSessionMaxAge returns the session inactivity timeout in minutes.
func GetSessionMaxAge() int {
	maxAgeStr := os.Getenv("PSTREAM_SESSION_MAX_AGE")
	if maxAgeStr == "" {
		return 30
	}
	maxAge, err := strconv.Atoi(maxAgeStr)
	if err != nil || maxAge <= 0 {
		return 30
	}
	return maxAge
}

func GetRedisAddr() string {
	return os.Getenv("PSTREAM_REDIS_ADDR")
}

func GetRedisPassword() string {
	return os.Getenv("PSTREAM_REDIS_PASSWORD")
}
