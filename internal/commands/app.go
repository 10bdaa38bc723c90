package commands

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/schoolbooks-dev/schoolbooks/internal/balance"
	"github.com/schoolbooks-dev/schoolbooks/internal/coa"
	"github.com/schoolbooks-dev/schoolbooks/internal/config"
	"github.com/schoolbooks-dev/schoolbooks/internal/ledger"
	"github.com/schoolbooks-dev/schoolbooks/internal/registry"
	"github.com/schoolbooks-dev/schoolbooks/internal/report"
	"github.com/schoolbooks-dev/schoolbooks/internal/store"
)

// app holds the configured services a subcommand works against. Close it
// when done.
type app struct {
	cfg      *config.Config
	db       *store.SQLite
	chart    *coa.Service
	ledger   *ledger.Service
	engine   *balance.Engine
	reports  *report.Generator
	registry *registry.Service
}

// openApp loads the config and wires the service graph on top of the SQLite
// store.
func openApp(configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	db, err := store.OpenSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tenant := cfg.Institution.Tenant
	cash := cfg.Ledger.CashAccountID
	chart := coa.NewService(db, tenant)
	led := ledger.NewService(db, tenant, chart)
	engine := balance.NewEngine(db, tenant, cash)

	return &app{
		cfg:      cfg,
		db:       db,
		chart:    chart,
		ledger:   led,
		engine:   engine,
		reports:  report.NewGenerator(db, tenant, engine, cash),
		registry: registry.NewService(db, tenant, chart, led, registry.AccountingModel(cfg.Ledger.AccountingModel), cash),
	}, nil
}

func (a *app) Close() error {
	return a.db.Close()
}

// amount renders a decimal in the configured currency, e.g. "₹1,200.00".
func (a *app) amount(v decimal.Decimal) string {
	m := money.New(v.Shift(2).IntPart(), a.cfg.Ledger.Currency)
	return m.Display()
}
