package repository

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SSHUser is an operator allowed to open the SSH dashboard, identified
// by public key fingerprint.
type SSHUser struct {
	ID          int64
	Username    string
	Fingerprint string
	CreatedAt   time.Time
	LastLoginAt *time.Time
}

type SSHUserRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewSSHUserRepository(pool PgxPool, tracer trace.Tracer) *SSHUserRepository {
	return &SSHUserRepository{pool: pool, tracer: tracer}
}

func (r *SSHUserRepository) FindByFingerprint(ctx context.Context, fingerprint string) (*SSHUser, error) {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.find-by-fingerprint")
	defer span.End()

	var u SSHUser
	err := r.pool.QueryRow(ctx,
		`SELECT id, username, fingerprint, created_at, last_login_at
		 FROM ssh_users WHERE fingerprint = $1`,
		fingerprint,
	).Scan(&u.ID, &u.Username, &u.Fingerprint, &u.CreatedAt, &u.LastLoginAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *SSHUserRepository) UpdateLastLogin(ctx context.Context, id int64) error {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.update-last-login")
	defer span.End()

	_, err := r.pool.Exec(ctx, `UPDATE ssh_users SET last_login_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *SSHUserRepository) InsertUser(ctx context.Context, username, fingerprint string) error {
	_, span := r.tracer.Start(ctx, "ssh-user-repo.insert-user")
	defer span.End()

	_, err := r.pool.Exec(ctx,
		`INSERT INTO ssh_users (username, fingerprint)
		 VALUES ($1, $2)
		 ON CONFLICT (fingerprint) DO NOTHING`,
		username, fingerprint,
	)
	return err
}
