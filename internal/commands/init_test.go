package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/config"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

func TestRunInit(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	err := runInit(ctx, dir, "Green Valley School", "double", "INR", "default")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.DefaultFile))
	require.NoError(t, err)
	assert.Equal(t, "Green Valley School", cfg.Institution.Name)
	assert.Equal(t, "double", cfg.Ledger.AccountingModel)

	// The default chart was seeded with Cash as the cash account.
	db, err := store.OpenSQLite(cfg.Database.Path)
	require.NoError(t, err)
	defer db.Close()

	chart := coa.NewService(db, "default")
	cash, err := chart.Account(ctx, coa.CashAccountID)
	require.NoError(t, err)
	assert.Equal(t, "Cash", cash.Name)
}

func TestRunInit_RefusesExistingConfig(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.DefaultFile), []byte("institution:\n"), 0o644))

	err := runInit(ctx, dir, "Green Valley School", "simple", "INR", "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestRunInit_RejectsUnknownModel(t *testing.T) {
	err := runInit(context.Background(), t.TempDir(), "Green Valley School", "triple", "INR", "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accounting model")
}
