package repository

import (
	"context"

	"sol-watchtower/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.opentelemetry.io/otel/trace"
)

// AddressRepository archives every address the dedup ledger discovers.
// The in-memory ledger stays authoritative for the running process; the
// table is an audit trail.
type AddressRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewAddressRepository(pool PgxPool, tracer trace.Tracer) *AddressRepository {
	return &AddressRepository{pool: pool, tracer: tracer}
}

func (r *AddressRepository) InsertAddress(ctx context.Context, addr domain.TrackedAddress) error {
	_, span := r.tracer.Start(ctx, "address-repo.insert-address")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO tracked_addresses (address, source, first_seen, last_seen)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (address) DO UPDATE SET last_seen = EXCLUDED.last_seen`,
		addr.Address, addr.Source, addr.FirstSeen, addr.LastSeen,
	)
	return err
}

// InsertAddresses batches a cycle's discoveries in one round trip.
func (r *AddressRepository) InsertAddresses(ctx context.Context, addrs []domain.TrackedAddress) error {
	if len(addrs) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "address-repo.insert-addresses")
	defer span.End()

	batch := &pgx.Batch{}
	for _, a := range addrs {
		batch.Queue(
			`INSERT INTO tracked_addresses (address, source, first_seen, last_seen)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (address) DO UPDATE SET last_seen = EXCLUDED.last_seen`,
			a.Address, a.Source, a.FirstSeen, a.LastSeen,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range addrs {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *AddressRepository) CountAddresses(ctx context.Context) (int, error) {
	_, span := r.tracer.Start(ctx, "address-repo.count-addresses")
	defer span.End()

	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tracked_addresses`).Scan(&count)
	return count, err
}
