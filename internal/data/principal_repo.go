package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/sb-patel/notification-system-backend/internal/data/pgxutil"
	domainauth "github.com/sb-patel/notification-system-backend/internal/domain/auth"
	"github.com/sb-patel/notification-system-backend/internal/domain/model"
)

// PrincipalRepo provides database operations for user and admin accounts.
type PrincipalRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewPrincipalRepo creates a new PrincipalRepo with real time provider.
func NewPrincipalRepo(db *sql.DB) *PrincipalRepo {
	return &PrincipalRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewPrincipalRepoWithTimeProvider creates a new PrincipalRepo with a custom time provider (useful for tests).
func NewPrincipalRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *PrincipalRepo {
	return &PrincipalRepo{DB: db, timeProvider: tp}
}

// CreatePrincipalParams groups inputs for Create. The password hash is
// produced by the caller; this layer never sees plaintext.
type CreatePrincipalParams struct {
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
	Role         domainauth.Role
}

// Create inserts a new principal. A duplicate email within the same role
// yields ErrEmailExists.
func (r *PrincipalRepo) Create(ctx context.Context, params CreatePrincipalParams) (*model.Principal, error) {
	if params.Email == "" {
		return nil, errors.New("email is required")
	}
	if params.PasswordHash == "" {
		return nil, errors.New("password hash is required")
	}
	if !params.Role.Valid() {
		return nil, fmt.Errorf("invalid role %q", params.Role)
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO principals (id, email, password_hash, first_name, last_name, role, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, email, password_hash, first_name, last_name, role, created_at
		`,
			uuid.NewString(),
			strings.ToLower(strings.TrimSpace(params.Email)),
			params.PasswordHash,
			params.FirstName,
			params.LastName,
			params.Role.String(),
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		return nil, mapPrincipalWriteErr(err)
	}
	return &out, nil
}

// GetByEmail retrieves a principal by email within the given role namespace.
func (r *PrincipalRepo) GetByEmail(ctx context.Context, email string, role domainauth.Role) (*model.Principal, error) {
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, email, password_hash, first_name, last_name, role, created_at
			FROM principals
			WHERE email = $1 AND role = $2
		`, strings.ToLower(strings.TrimSpace(email)), role.String())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to get principal by email: %w", err)
	}
	return &out, nil
}

// GetByID retrieves a principal by id.
func (r *PrincipalRepo) GetByID(ctx context.Context, id string) (*model.Principal, error) {
	var out model.Principal
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, email, password_hash, first_name, last_name, role, created_at
			FROM principals
			WHERE id = $1
		`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Principal])
		return err
	}); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("failed to get principal by id: %w", err)
	}
	return &out, nil
}

func mapPrincipalWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrEmailExists
	}
	return err
}
