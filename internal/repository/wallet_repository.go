package repository

import (
	"context"

	"sol-watchtower/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// WalletRepository persists the watchlist so it survives restarts.
// Trade history stays in memory and re-accumulates from polling.
type WalletRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewWalletRepository(pool PgxPool, tracer trace.Tracer) *WalletRepository {
	return &WalletRepository{pool: pool, tracer: tracer}
}

func (r *WalletRepository) InsertWallet(ctx context.Context, address, label string) error {
	_, span := r.tracer.Start(ctx, "wallet-repo.insert-wallet")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO wallets (address, label)
		 VALUES ($1, $2)
		 ON CONFLICT (address) DO UPDATE SET label = EXCLUDED.label`,
		address, label,
	)
	return err
}

func (r *WalletRepository) DeleteWallet(ctx context.Context, address string) error {
	_, span := r.tracer.Start(ctx, "wallet-repo.delete-wallet")
	defer span.End()

	_, err := r.pool.Exec(ctx, `DELETE FROM wallets WHERE address = $1`, address)
	return err
}

func (r *WalletRepository) ListWallets(ctx context.Context) ([]domain.WalletInfo, error) {
	_, span := r.tracer.Start(ctx, "wallet-repo.list-wallets")
	defer span.End()

	rows, err := r.pool.Query(ctx, `SELECT address, label FROM wallets ORDER BY address`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var infos []domain.WalletInfo
	for rows.Next() {
		var info domain.WalletInfo
		if err := rows.Scan(&info.Address, &info.Label); err != nil {
			return nil, err
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
