package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ekovaleva/procurement-assist/internal/storage"
	"github.com/ekovaleva/procurement-assist/internal/types/request"
	"github.com/ekovaleva/procurement-assist/internal/types/user"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresStorage struct {
	db *sql.DB
}

func NewPostgresStorage(dsn string) (*PostgresStorage, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	s := &PostgresStorage{db: db}

	if err := s.db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *PostgresStorage) initSchema() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS procurement_requests (
            id TEXT PRIMARY KEY,
            requestor_name TEXT NOT NULL,
            title TEXT NOT NULL,
            vendor_name TEXT NOT NULL,
            vat_id TEXT NOT NULL DEFAULT '',
            commodity_group_id TEXT NOT NULL,
            total_cost NUMERIC(14,2) NOT NULL,
            department TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL DEFAULT 'Open',
            created_at TIMESTAMPTZ NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS order_lines (
            id SERIAL PRIMARY KEY,
            request_id TEXT NOT NULL REFERENCES procurement_requests(id),
            description TEXT NOT NULL,
            unit_price NUMERIC(14,2) NOT NULL,
            amount INT NOT NULL,
            unit TEXT NOT NULL,
            total_price NUMERIC(14,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS status_history (
            id SERIAL PRIMARY KEY,
            request_id TEXT NOT NULL REFERENCES procurement_requests(id),
            status TEXT NOT NULL,
            changed_at TIMESTAMPTZ NOT NULL
        )`,
	}
	for _, q := range stmts {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}

func (s *PostgresStorage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *PostgresStorage) Close() error {
	return s.db.Close()
}

func (s *PostgresStorage) CreateUser(ctx context.Context, u *user.User) error {
	q := `INSERT INTO users (login,password_hash,created_at) VALUES($1,$2,$3) RETURNING id`
	err := s.db.QueryRowContext(ctx, q, u.Login, u.PasswordHash, u.CreatedAt).Scan(&u.ID)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return storage.ErrUserExists
	}
	return err
}

func (s *PostgresStorage) FindByLogin(ctx context.Context, login string) (*user.User, error) {
	u := &user.User{}
	q := `SELECT id,login,password_hash,created_at FROM users WHERE login=$1`
	if err := s.db.QueryRowContext(ctx, q, login).
		Scan(&u.ID, &u.Login, &u.PasswordHash, &u.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user not found")
		}
		return nil, err
	}
	return u, nil
}

func (s *PostgresStorage) CreateRequest(ctx context.Context, r *request.Request) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
        INSERT INTO procurement_requests
            (id, requestor_name, title, vendor_name, vat_id, commodity_group_id, total_cost, department, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		r.ID, r.Data.RequestorName, r.Data.Title, r.Data.VendorName, r.Data.VatID,
		r.Data.CommodityGroupID, r.Data.TotalCost, r.Data.Department, r.Status, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}

	for _, line := range r.Data.OrderLines {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO order_lines (request_id, description, unit_price, amount, unit, total_price)
            VALUES ($1,$2,$3,$4,$5,$6)`,
			r.ID, line.Description, line.UnitPrice, line.Amount, line.Unit, line.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line: %w", err)
		}
	}

	for _, h := range r.StatusHistory {
		_, err = tx.ExecContext(ctx, `
            INSERT INTO status_history (request_id, status, changed_at) VALUES ($1,$2,$3)`,
			r.ID, h.Status, h.Timestamp,
		)
		if err != nil {
			return fmt.Errorf("insert status history: %w", err)
		}
	}

	return tx.Commit()
}

func (s *PostgresStorage) GetRequest(ctx context.Context, id string) (*request.Request, error) {
	r := &request.Request{}
	q := `
        SELECT id, requestor_name, title, vendor_name, vat_id, commodity_group_id, total_cost, department, status, created_at
        FROM procurement_requests WHERE id = $1`
	err := s.db.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.Data.RequestorName, &r.Data.Title, &r.Data.VendorName, &r.Data.VatID,
		&r.Data.CommodityGroupID, &r.Data.TotalCost, &r.Data.Department, &r.Status, &r.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	lines, err := s.requestLines(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Data.OrderLines = lines

	// Serial id preserves insertion order, which is the history order.
	rows, err := s.db.QueryContext(ctx,
		`SELECT status, changed_at FROM status_history WHERE request_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var h request.StatusChange
		if err := rows.Scan(&h.Status, &h.Timestamp); err != nil {
			return nil, err
		}
		r.StatusHistory = append(r.StatusHistory, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *PostgresStorage) requestLines(ctx context.Context, id string) ([]request.OrderLine, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT description, unit_price, amount, unit, total_price
        FROM order_lines WHERE request_id = $1 ORDER BY id`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lines []request.OrderLine
	for rows.Next() {
		var l request.OrderLine
		if err := rows.Scan(&l.Description, &l.UnitPrice, &l.Amount, &l.Unit, &l.TotalPrice); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}
	return lines, rows.Err()
}

func (s *PostgresStorage) ListRequests(ctx context.Context) ([]request.Request, error) {
	rows, err := s.db.QueryContext(ctx, `
        SELECT id, requestor_name, title, vendor_name, vat_id, commodity_group_id, total_cost, department, status, created_at
        FROM procurement_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []request.Request
	for rows.Next() {
		var r request.Request
		err := rows.Scan(
			&r.ID, &r.Data.RequestorName, &r.Data.Title, &r.Data.VendorName, &r.Data.VatID,
			&r.Data.CommodityGroupID, &r.Data.TotalCost, &r.Data.Department, &r.Status, &r.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		requests = append(requests, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range requests {
		lines, err := s.requestLines(ctx, requests[i].ID)
		if err != nil {
			return nil, err
		}
		requests[i].Data.OrderLines = lines
	}
	return requests, nil
}

func (s *PostgresStorage) AppendStatus(ctx context.Context, id string, st request.Status, at time.Time) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE procurement_requests SET status = $1 WHERE id = $2`, st, id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return storage.ErrNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO status_history (request_id, status, changed_at) VALUES ($1,$2,$3)`, id, st, at)
	if err != nil {
		return fmt.Errorf("insert status history: %w", err)
	}
	return tx.Commit()
}

func (s *PostgresStorage) CountRequests(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM procurement_requests`).Scan(&count)
	return count, err
}
