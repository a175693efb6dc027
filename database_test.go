package labelens

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/labelens/labelens/core"
)

func TestNewDatabase(t *testing.T) {
	t.Run("create new database", func(t *testing.T) {
		tmpDir := filepath.Join(t.TempDir(), "test_db")
		db, err := NewDatabase(context.Background(), tmpDir)
		require.NoError(t, err)
		require.NotNil(t, db)
		defer db.Close()

		// Verify components are initialized
		assert.NotNil(t, db.IngredientRepository())
		assert.NotNil(t, db.Provider())
		assert.NotNil(t, db.backend)
		assert.NotNil(t, db.logger)
		assert.Nil(t, db.Provider().TextExtractor())
	})

	t.Run("error with invalid path", func(t *testing.T) {
		// Try to create a database at a file path instead of directory
		tmpFile := filepath.Join(t.TempDir(), "not_a_dir")
		err := os.WriteFile(tmpFile, []byte("test"), 0644)
		require.NoError(t, err)

		_, err = NewDatabase(context.Background(), tmpFile)
		assert.Error(t, err)
	})
}

func TestDatabaseInMemory(t *testing.T) {
	db, err := NewDatabase(context.Background(), "", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	repo := db.IngredientRepository()

	_, err = repo.Create(ctx, &core.Ingredient{
		Name:        "water",
		DisplayName: "Water",
		Source:      core.SourceCurated,
	})
	require.NoError(t, err)

	stored, err := repo.FindByIdentifier(ctx, "water")
	require.NoError(t, err)
	assert.Equal(t, "Water", stored.DisplayName)
}

func TestDatabaseBuildsComponents(t *testing.T) {
	db, err := NewDatabase(context.Background(), "", WithInMemory())
	require.NoError(t, err)
	defer db.Close()

	resolver, err := db.NewResolver()
	require.NoError(t, err)
	assert.NotNil(t, resolver)

	srv, err := db.NewServer()
	require.NoError(t, err)
	assert.NotNil(t, srv.Router())

	rerater := db.NewRerater(nil, os.Stderr)
	assert.NotNil(t, rerater)
}
