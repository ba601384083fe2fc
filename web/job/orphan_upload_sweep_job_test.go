package job

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"picturestream/database"
	"picturestream/logger"
	"picturestream/web/global"
	"picturestream/web/service"

	"github.com/op/go-logging"
	"github.com/stretchr/testify/assert"
)

func TestMain(m *testing.M) {
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

type stoppedServer struct {
	ctx context.Context
}

func (s *stoppedServer) GetCtx() context.Context { return s.ctx }

func writeAgedFile(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte("x"), 0o640))
	stamp := time.Now().Add(-age)
	assert.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestSweepRemovesOnlyAgedOrphans(t *testing.T) {
	setup()
	defer teardown()

	uploadDir := t.TempDir()
	t.Setenv("PSTREAM_UPLOAD_FOLDER", uploadDir)

	userService := service.UserService{}
	pictureService := service.PictureService{}
	alice, err := userService.Register("alice", "alice@example.com", "secret1")
	assert.NoError(t, err)
	_, err = pictureService.Create("kept", "", "kept.jpg", alice.Id)
	assert.NoError(t, err)

	kept := writeAgedFile(t, uploadDir, "kept.jpg", 2*time.Hour)
	orphan := writeAgedFile(t, uploadDir, "orphan.jpg", 2*time.Hour)
	fresh := writeAgedFile(t, uploadDir, "fresh.jpg", time.Minute)

	NewOrphanUploadSweepJob().Run()

	assert.FileExists(t, kept)
	assert.FileExists(t, fresh)
	assert.NoFileExists(t, orphan)
}

func TestSweepStopsWithServer(t *testing.T) {
	setup()
	defer teardown()

	uploadDir := t.TempDir()
	t.Setenv("PSTREAM_UPLOAD_FOLDER", uploadDir)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	global.SetWebServer(&stoppedServer{ctx: ctx})
	defer global.SetWebServer(nil)

	orphan := writeAgedFile(t, uploadDir, "orphan.jpg", 2*time.Hour)

	NewOrphanUploadSweepJob().Run()

	// a stopped server means no sweeping
	assert.FileExists(t, orphan)
}
