package database_test

import (
	"context"
	"net/url"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocerease/backend/internal/database"
	"github.com/grocerease/backend/internal/model"
	"github.com/grocerease/backend/internal/testhelpers"
)

func TestSQLiteAutoMigrate(t *testing.T) {
	db := testhelpers.SetupSQLiteDB(t)

	for _, m := range model.All() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	require.NoError(t, database.HealthCheck(context.Background(), db))

	user := testhelpers.CreateUser(t, db, "alice")
	recipe := testhelpers.CreateRecipes(t, db, testhelpers.SampleRecipes()[0])[0]
	assert.NotZero(t, user.ID)
	assert.NotZero(t, recipe.ID)

	require.NoError(t, db.Create(&model.Favorite{UserID: user.ID, RecipeID: recipe.ID}).Error)
	assert.Error(t, db.Create(&model.Favorite{UserID: user.ID, RecipeID: recipe.ID}).Error,
		"duplicate favorite must violate the unique index")
}

func TestPostgresMigrations(t *testing.T) {
	db, dsn := testhelpers.SetupPostgresDB(t)

	version, dirty, err := database.MigrationVersion(dsn)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
	assert.False(t, dirty)

	// running again is a no-op
	require.NoError(t, database.RunMigrations(db, dsn))

	recipe := testhelpers.CreateRecipes(t, db, testhelpers.SampleRecipes()[2])[0]
	var got model.Recipe
	require.NoError(t, db.First(&got, "id = ?", recipe.ID).Error)
	assert.Equal(t, recipe.Ingredients, got.Ingredients)

	require.NoError(t, database.MigrateDown(dsn, 1))
	assert.False(t, db.Migrator().HasTable("recipes"))
	require.NoError(t, database.MigrateUp(dsn))
	assert.True(t, db.Migrator().HasTable("recipes"))
}

func TestMigrateDownRejectsNonPositiveSteps(t *testing.T) {
	assert.Error(t, database.MigrateDown("postgres://unused", 0))
}

func TestNewMigrateReleasesConnectionsOnFailure(t *testing.T) {
	db, dsn := testhelpers.SetupPostgresDB(t)

	badAuth, err := url.Parse(dsn)
	require.NoError(t, err)
	badAuth.User = url.UserPassword(badAuth.User.Username(), "wrong-password")

	connections := func() int64 {
		var n int64
		require.NoError(t, db.Raw("SELECT count(*) FROM pg_stat_activity WHERE datname = current_database()").Scan(&n).Error)
		return n
	}

	tests := []struct {
		name string
		fsys fstest.MapFS
		dir  string
		dsn  string
	}{
		{"missing source directory", fstest.MapFS{}, "migrations", dsn},
		{"rejected credentials", fstest.MapFS{
			"migrations/000001_x.up.sql":   {Data: []byte("SELECT 1;")},
			"migrations/000001_x.down.sql": {Data: []byte("SELECT 1;")},
		}, "migrations", badAuth.String()},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := connections()
			for i := 0; i < 5; i++ {
				m, err := database.NewMigrateFrom(tt.fsys, tt.dir, tt.dsn)
				require.Error(t, err)
				assert.Nil(t, m)
			}
			assert.LessOrEqual(t, connections(), before)
		})
	}
}
