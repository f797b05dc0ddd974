package tester

import (
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/emrgen/cms/internal/model"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DockerEnv opts into tests that start containers.
const DockerEnv = "CMS_TEST_DOCKER"

// PostgresDB starts a throwaway postgres container and returns a migrated gorm
// handle on it. The test is skipped unless CMS_TEST_DOCKER is set and docker
// answers.
func PostgresDB(t testing.TB) *gorm.DB {
	t.Helper()

	if os.Getenv(DockerEnv) == "" {
		t.Skipf("set %s to run postgres tests", DockerEnv)
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("could not construct docker pool: %v", err)
	}

	// uses pool to try to connect to Docker
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("could not connect to docker: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=cms",
			"POSTGRES_PASSWORD=cms",
			"POSTGRES_DB=cms",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("could not start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			logrus.Warnf("could not purge postgres: %v", err)
		}
	})

	// hard stop for containers left behind by a killed test run
	if err := resource.Expire(300); err != nil {
		logrus.Warnf("could not set container expiry: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%s user=cms password=cms dbname=cms sslmode=disable", resource.GetPort("5432/tcp"))

	var db *gorm.DB
	pool.MaxWait = 60 * time.Second
	err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	})
	if err != nil {
		t.Fatalf("postgres did not come up: %v", err)
	}

	if err := model.Migrate(db); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}

	return db
}
