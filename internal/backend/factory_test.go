package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finboard/internal/config"
	"finboard/internal/store/memory"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", SeedFixtures: true})
	require.NoError(t, err)
	assert.Equal(t, SQLiteBackend, cfg.Type)
	assert.True(t, cfg.SeedFixtures)
	assert.Equal(t, []string{"memory", "sqlite"}, GetBackendTypeStrings())
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: "nope"}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: MemoryBackend, AMQPURL: "amqp://localhost/"}.Validate())
}

func TestCreateMemoryBackend(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)

	t.Run("seeded", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend, SeedFixtures: true})
		require.NoError(t, err)
		defer res.Cleanup()

		_, _, fixtureTxs, _ := memory.Fixtures()
		txs, err := res.Repositories.Transactions.Snapshot(ctx)
		require.NoError(t, err)
		assert.Len(t, txs, len(fixtureTxs))
		assert.Nil(t, res.Publisher)
	})

	t.Run("empty keeps category types", func(t *testing.T) {
		res, err := f.CreateBackend(ctx, Config{Type: MemoryBackend})
		require.NoError(t, err)

		types, err := res.Repositories.CategoryTypes.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, types, 2)
		assert.Equal(t, "ct_expense", types[0].ID)

		txs, err := res.Repositories.Transactions.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, txs)
	})
}

func TestCreateSQLiteBackendSeedsOnce(t *testing.T) {
	ctx := context.Background()
	f := NewFactory(nil)
	cfg := Config{
		Type:         SQLiteBackend,
		SQLiteDBPath: filepath.Join(t.TempDir(), "finboard.db"),
		SeedFixtures: true,
	}

	res, err := f.CreateBackend(ctx, cfg)
	require.NoError(t, err)

	_, fixtureCats, fixtureTxs, fixtureBills := memory.Fixtures()
	txs, err := res.Repositories.Transactions.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, txs, len(fixtureTxs))
	assert.Equal(t, fixtureTxs[0].ID, txs[0].ID)
	require.NoError(t, res.Cleanup())

	res, err = f.CreateBackend(ctx, cfg)
	require.NoError(t, err)
	defer res.Cleanup()

	cats, err := res.Repositories.Categories.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(fixtureCats))
	bills, err := res.Repositories.Bills.Snapshot(ctx)
	require.NoError(t, err)
	assert.Len(t, bills, len(fixtureBills))
}
