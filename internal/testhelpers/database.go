package testhelpers

import (
	"context"
	"fmt"
	"os/exec"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/grocerease/backend/internal/database"
	"github.com/grocerease/backend/internal/model"
)

const (
	pgUser     = "grocer"
	pgPassword = "grocerpass"
	pgName     = "grocerease"
)

// SetupSQLiteDB returns a migrated in-memory database private to the test.
func SetupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite database: %v", err)
	}
	if err := database.RunMigrations(db, ""); err != nil {
		t.Fatalf("failed to migrate sqlite database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// RequireDocker skips the test when containers cannot be started.
func RequireDocker(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}
	if _, err := exec.LookPath("docker"); err != nil {
		t.Skip("docker not installed, skipping container-based test")
	}
}

// SetupPostgresDB starts a pgvector-enabled postgres container, applies the
// SQL migrations and returns the connection along with its DSN.
func SetupPostgresDB(t *testing.T) (*gorm.DB, string) {
	t.Helper()
	RequireDocker(t)

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "pgvector/pgvector:pg16",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgName,
			},
			WaitingFor: wait.ForAll(
				wait.ForListeningPort("5432/tcp"),
				wait.ForSQL("5432/tcp", "postgres", func(host string, port nat.Port) string {
					return postgresURL(host, port.Port())
				}),
			).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("failed to start container: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := container.Terminate(ctx); err != nil {
			t.Errorf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("failed to get container host: %v", err)
	}
	mappedPort, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("failed to get container port: %v", err)
	}

	dsn := postgresURL(host, mappedPort.Port())
	if err := database.MigrateUp(dsn); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to database: %v", err)
	}
	return db, dsn
}

func postgresURL(host, port string) string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", pgUser, pgPassword, host, port, pgName)
}

// CreateRecipes inserts the recipes in order and returns them with IDs set.
func CreateRecipes(t *testing.T, db *gorm.DB, recipes ...model.Recipe) []model.Recipe {
	t.Helper()
	for i := range recipes {
		if err := db.Create(&recipes[i]).Error; err != nil {
			t.Fatalf("failed to create recipe %q: %v", recipes[i].Name, err)
		}
	}
	return recipes
}

// CreateUser inserts a user with an unusable password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) model.User {
	t.Helper()
	user := model.User{Username: username, PasswordHash: "!"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %q: %v", username, err)
	}
	return user
}

// SampleRecipes is a small catalog covering every diet category and the
// qualifier cases the matcher cares about.
func SampleRecipes() []model.Recipe {
	return []model.Recipe{
		{Name: "Chicken Noodle Soup", Servings: 4, EstimatedCost: 12, Category: "Balanced",
			Ingredients: "2 cups chicken broth\n1 lb chicken breast\n2 carrots, diced\n200 g egg noodles"},
		{Name: "Veggie Soup", Servings: 4, EstimatedCost: 8, Category: "Plant-Based",
			Ingredients: "4 cups vegetable stock\n2 carrots\n1 onion\n1 tsp chicken bouillon"},
		{Name: "Tofu Stir Fry", Servings: 2, EstimatedCost: 9, Category: "Plant-Based",
			Ingredients: "1 lb tofu, cubed\n2 tbsp soy sauce\n1 head broccoli\n1 cup rice"},
		{Name: "Steak and Eggs", Servings: 1, EstimatedCost: 15, Category: "High-Protein",
			Ingredients: "8 oz steak\n3 eggs\n1 tbsp butter"},
		{Name: "Cauliflower Rice Bowl", Servings: 2, EstimatedCost: 10, Category: "Low-Carb",
			Ingredients: "1 head cauliflower\n1 avocado\n2 tbsp olive oil\n1 tsp garlic powder"},
	}
}
