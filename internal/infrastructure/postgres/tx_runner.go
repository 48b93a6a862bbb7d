package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/backoffice-api/internal/application/inventory"
	"github.com/tu-usuario/backoffice-api/internal/application/revshare"
	"github.com/tu-usuario/backoffice-api/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner and revshare.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)
var _ revshare.TxRunner = (*RevshareTxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con los
// repositorios del ledger de inventario atados a esa tx.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.SiteStockRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	stockRepo := NewSiteStockRepository(tx)
	txRepo := NewTransactionRepository(tx)

	if err := fn(stockRepo, txRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RevshareTxRunner ejecuta callbacks con el repositorio de acuerdos atado a la
// tx: el reordenamiento renumera N filas y debe ser todo-o-nada.
type RevshareTxRunner struct {
	pool *pgxpool.Pool
}

// NewRevshareTxRunner construye el runner con el pool.
func NewRevshareTxRunner(pool *pgxpool.Pool) *RevshareTxRunner {
	return &RevshareTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *RevshareTxRunner) Run(ctx context.Context, fn func(
	agreementRepo repository.RevenueShareRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewRevenueShareRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
