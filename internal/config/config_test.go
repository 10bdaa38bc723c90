package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Green Valley School")
	cfg.Ledger.AccountingModel = "double"

	path := filepath.Join(t.TempDir(), DefaultFile)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Institution.Name, got.Institution.Name)
	assert.Equal(t, cfg.Institution.Tenant, got.Institution.Tenant)
	assert.Equal(t, "double", got.Ledger.AccountingModel)
	assert.Equal(t, cfg.Ledger.Currency, got.Ledger.Currency)
	assert.Equal(t, cfg.Ledger.CashAccountID, got.Ledger.CashAccountID)
	assert.Equal(t, cfg.Database.Path, got.Database.Path)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Green Valley School")

	assert.Equal(t, "Green Valley School", cfg.Institution.Name)
	assert.Equal(t, "default", cfg.Institution.Tenant)
	assert.Equal(t, "simple", cfg.Ledger.AccountingModel)
	assert.Equal(t, "INR", cfg.Ledger.Currency)
	assert.Equal(t, 1, cfg.Ledger.CashAccountID)
	assert.Equal(t, "schoolbooks.db", cfg.Database.Path)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SCHOOLBOOKS_TENANT", "branch-2")
	t.Setenv("SCHOOLBOOKS_DB", "/var/lib/schoolbooks/books.db")

	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Save(path, Default("Green Valley School")))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "branch-2", got.Institution.Tenant)
	assert.Equal(t, "/var/lib/schoolbooks/books.db", got.Database.Path)
}

func TestYAMLFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFile)
	require.NoError(t, Save(path, Default("Green Valley School")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Green Valley School")
	assert.Contains(t, contents, "accounting_model: simple")
	assert.Contains(t, contents, "cash_account_id: 1")
	assert.Contains(t, contents, "path: schoolbooks.db")
}
