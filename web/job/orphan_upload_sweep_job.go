package job

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"picturestream/config"
	"picturestream/logger"
	"picturestream/util/common"
	"picturestream/web/global"
	"picturestream/web/service"
)

// OrphanUploadSweepJob deletes files in the upload folder that have no
// picture row, covering crash windows between file write and metadata
// insert. Files younger than graceAge are left alone so an in-flight upload
// is never swept.
type OrphanUploadSweepJob struct {
	pictureService service.PictureService
}

const graceAge = time.Hour

func NewOrphanUploadSweepJob() *OrphanUploadSweepJob {
	return new(OrphanUploadSweepJob)
}

func (j *OrphanUploadSweepJob) Run() {
	defer common.Recover("orphan upload sweep")

	ctx := context.Background()
	if server := global.GetWebServer(); server != nil {
		ctx = server.GetCtx()
	}
	if ctx.Err() != nil {
		return
	}

	uploadDir := config.GetUploadFolderPath()
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warning("orphan sweep: read upload folder err:", err)
		}
		return
	}

	fileNames, err := j.pictureService.GetFileNames()
	if err != nil {
		logger.Warning("orphan sweep: list pictures err:", err)
		return
	}
	known := make(map[string]bool, len(fileNames))
	for _, name := range fileNames {
		known[name] = true
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			return
		}
		if entry.IsDir() || known[entry.Name()] {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if time.Since(info.ModTime()) < graceAge {
			continue
		}
		path := filepath.Join(uploadDir, entry.Name())
		if err := os.Remove(path); err != nil {
			logger.Warning("orphan sweep: remove err:", err)
		} else {
			logger.Infof("orphan sweep: removed %s", entry.Name())
		}
	}
}
