package db

import (
	"path/filepath"
	"testing"

	"github.com/terraincognita07/splitday/internal/models"
)

func TestOpenSQLiteCreatesCaseInsensitiveUserEmailUniqueIndex(t *testing.T) {
	database := openTestDatabase(t, filepath.Join(t.TempDir(), "splitday-email-index.db"))
	users := NewUserRepository(database)

	firstUser := models.User{Name: "Ada", Email: "Lifter@Splitday.Local", PasswordHash: "hash-1"}
	if err := users.Create(&firstUser); err != nil {
		t.Fatalf("create first user: %v", err)
	}

	secondUser := models.User{Name: "Bea", Email: "  lifter@splitday.local", PasswordHash: "hash-2"}
	if err := users.Create(&secondUser); err == nil {
		t.Fatal("expected duplicate normalized email insert to fail")
	}

	found, ok, err := users.FindByNormalizedEmail("lifter@splitday.local")
	if err != nil {
		t.Fatalf("find by normalized email: %v", err)
	}
	if !ok || found.ID != firstUser.ID {
		t.Fatalf("expected to find user %s, got %+v (found=%v)", firstUser.ID, found, ok)
	}

	exists, err := users.ExistsByNormalizedEmail("lifter@splitday.local")
	if err != nil {
		t.Fatalf("exists by normalized email: %v", err)
	}
	if !exists {
		t.Fatal("expected normalized email lookup to match")
	}
}
