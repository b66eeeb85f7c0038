package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/moodscribe/moodscribe/internal/config"
	"github.com/moodscribe/moodscribe/internal/database"
	"github.com/moodscribe/moodscribe/internal/models"
	"github.com/moodscribe/moodscribe/internal/testdb"
)

// TestConnectMariaDB exercises the mysql dialector against a real MariaDB
// container with the embedded DDL already applied.
func TestConnectMariaDB(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if !testdb.DockerAvailable(ctx) {
		t.Skip("docker is not available")
	}

	mdb, err := testdb.StartMariaDB(ctx, "moodscribe_test", "moodscribe", "testpassword")
	if err != nil {
		t.Fatalf("Failed to start mariadb: %v", err)
	}
	defer mdb.Terminate(context.Background())

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            mdb.Host,
		DBPort:            mdb.Port,
		DBDatabase:        mdb.Database,
		DBUser:            mdb.User,
		DBPassword:        mdb.Password,
		DBConnectionLimit: 4,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	// AutoMigrate against the DDL-created tables must be a no-op that succeeds
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	user := models.User{
		ID:      uuid.NewString(),
		ClerkID: "clerk_mariadb",
		Email:   "mariadb@example.com",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	entry := models.Journal{UserID: user.ID, Title: "t", Content: "c"}
	if err := db.Create(&entry).Error; err != nil {
		t.Fatalf("Failed to create entry: %v", err)
	}

	var got models.Journal
	if err := db.Where("user_id = ? AND id = ?", user.ID, entry.ID).First(&got).Error; err != nil {
		t.Fatalf("Failed to read entry back: %v", err)
	}
	if got.Title != "t" {
		t.Errorf("Expected title t, got %q", got.Title)
	}
}
