package tester

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/emrgen/cms/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SqliteDSN returns a dsn whose transactions take the write lock on BEGIN, so
// concurrent writers queue behind each other instead of failing.
func SqliteDSN(path string) string {
	return fmt.Sprintf("file:%s?_busy_timeout=10000&_txlock=immediate&_foreign_keys=on", path)
}

// TestDB opens a migrated sqlite database in the test's temp dir. Every test gets
// its own file, so tests can run in parallel.
func TestDB(t testing.TB) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cms.db")
	db, err := gorm.Open(sqlite.Open(SqliteDSN(path)), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = model.Migrate(db)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err != nil {
			return
		}
		if err := sqlDB.Close(); err != nil {
			logrus.Warnf("close test db: %v", err)
		}
	})

	return db
}
