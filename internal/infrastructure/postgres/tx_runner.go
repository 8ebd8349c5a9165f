package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/uniformes/expedicao-api/internal/application/packing"
	"github.com/uniformes/expedicao-api/internal/domain"
	"github.com/uniformes/expedicao-api/internal/domain/repository"
	"github.com/uniformes/expedicao-api/pkg/config"
)

// Ensure TxRunner implements packing.TxRunner.
var _ packing.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL serializable.
// QueueTimeout acota el inicio de la transacción; ExecTimeout se aplica como
// statement_timeout dentro de la tx. Un fallo de serialización (40001) se
// traduce a domain.ErrConflict para que el motor decida reintentar.
type TxRunner struct {
	pool *pgxpool.Pool
	cfg  config.TxConfig
}

// NewTxRunner construye el runner con el pool y los timeouts de transacción.
func NewTxRunner(pool *pgxpool.Pool, cfg config.TxConfig) *TxRunner {
	return &TxRunner{pool: pool, cfg: cfg}
}

// RunSerializable inicia una transacción SERIALIZABLE, ejecuta fn con repos
// atados a la tx y hace Commit o Rollback. Nunca se confirma un estado parcial.
func (r *TxRunner) RunSerializable(ctx context.Context, fn func(
	boxRepo repository.BoxRepository,
	orderRepo repository.OrderRepository,
	stockRepo repository.StockRepository,
	outputRepo repository.OutputRecordRepository,
	variantRepo repository.VariantRepository,
) error) error {
	beginCtx, cancelBegin := context.WithTimeout(ctx, r.cfg.QueueTimeout)
	defer cancelBegin()

	tx, err := r.pool.BeginTx(beginCtx, pgx.TxOptions{IsoLevel: pgx.Serializable})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	execCtx, cancelExec := context.WithTimeout(ctx, r.cfg.ExecTimeout)
	defer cancelExec()

	if _, err := tx.Exec(execCtx, fmt.Sprintf("SET LOCAL statement_timeout = %d", r.cfg.ExecTimeout.Milliseconds())); err != nil {
		return fmt.Errorf("set statement_timeout: %w", err)
	}

	boxRepo := NewBoxRepository(tx)
	orderRepo := NewOrderRepository(tx)
	stockRepo := NewStockRepository(tx)
	outputRepo := NewOutputRecordRepository(tx)
	variantRepo := NewVariantRepository(tx)

	if err := fn(boxRepo, orderRepo, stockRepo, outputRepo, variantRepo); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w (%v)", domain.ErrConflict, err)
		}
		return err
	}
	if err := tx.Commit(execCtx); err != nil {
		if isSerializationFailure(err) {
			return fmt.Errorf("%w (%v)", domain.ErrConflict, err)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
