package database

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"
	"strings"

	"picturestream/config"
	"picturestream/database/model"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var db *gorm.DB

func initModels() error {
	models := []any{
		&model.User{},
		&model.Picture{},
		&model.Favorite{},
	}
	for _, m := range models {
		if err := db.AutoMigrate(m); err != nil {
			log.Printf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

func InitDB(dbPath string) error {
	dir := path.Dir(dbPath)
	err := os.MkdirAll(dir, fs.ModePerm)
	if err != nil {
		return err
	}

	var gormLogger logger.Interface

	if config.IsDebug() {
		gormLogger = logger.Default
	} else {
		gormLogger = logger.Discard
	}

	c := &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	}

	dsn := dbPath + "?cache=shared&_journal_mode=WAL&_synchronous=NORMAL"
	db, err = gorm.Open(sqlite.Open(dsn), c)
	if err != nil {
		return err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	_, err = sqlDB.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return err
	}

	return initModels()
}

func CloseDB() error {
	if db != nil {
		if err := Checkpoint(); err != nil {
			log.Printf("error executing checkpoint: %v", err)
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsDuplicate reports whether err is a uniqueness-constraint violation.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// DuplicateColumn extracts the colliding column from a uniqueness-constraint
// error ("UNIQUE constraint failed: users.username" -> "username"). Returns
// "" when the driver does not name the column.
func DuplicateColumn(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	marker := "UNIQUE constraint failed: "
	idx := strings.Index(msg, marker)
	if idx < 0 {
		return ""
	}
	column := msg[idx+len(marker):]
	if end := strings.IndexAny(column, ", "); end >= 0 {
		column = column[:end]
	}
	if dot := strings.LastIndex(column, "."); dot >= 0 {
		column = column[dot+1:]
	}
	return column
}

// Checkpoint flushes the sqlite WAL.
func Checkpoint() error {
	return db.Exec("PRAGMA wal_checkpoint;").Error
}
