package services

import (
	"fmt"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/skanderbz/batitrack/internal/config"
	"github.com/skanderbz/batitrack/internal/models"
	"github.com/skanderbz/batitrack/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBCounter int64

func init() {
	utils.SetJWTSecret("test-secret-key-for-testing")
}

// setupTestDB opens an isolated in-memory sqlite database and migrates the
// schema into it.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, atomic.AddInt64(&testDBCounter, 1))

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.ProjectMember{},
		&models.Document{},
		&models.ConventionSignature{},
		&models.AuditLog{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

func strPtr(s string) *string { return &s }

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		Secret:     "test-secret-key-for-testing",
		ExpireHour: 8,
	}
}

// createUser registers a user directly through the auth service.
func createUser(t *testing.T, db *gorm.DB, email, password, role string) *models.User {
	t.Helper()

	auth := NewAuthService(db, testJWTConfig())
	user, err := auth.Register(&RegisterRequest{Email: email, Password: password, Role: role})
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

// createProject creates a project owned by the given MOA user.
func createProject(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Project {
	t.Helper()

	svc := NewProjectService(db, NewAccessService(db))
	project, err := svc.Create(owner.ID, owner.Role, &CreateProjectRequest{
		Name:     name,
		Location: "Tunis",
	})
	if err != nil {
		t.Fatalf("create project %s: %v", name, err)
	}
	return project
}
