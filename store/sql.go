package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
)

const (
	Dialect_Postgres = "postgres"
	Dialect_MySQL    = "mysql"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS tournaments (
	id               VARCHAR(64)  PRIMARY KEY,
	owner_id         VARCHAR(64)  NOT NULL,
	name             VARCHAR(255) NOT NULL,
	settings         TEXT         NOT NULL,
	levels           TEXT         NOT NULL,
	payout_structure TEXT         NOT NULL,
	players          TEXT         NOT NULL,
	state            TEXT         NOT NULL,
	created_at       BIGINT       NOT NULL,
	updated_at       BIGINT       NOT NULL
)`

type SQLStore struct {
	db      *sql.DB
	dialect string
}

func NewSQLStore(db *sql.DB, dialect string) (*SQLStore, error) {
	switch dialect {
	case Dialect_Postgres, Dialect_MySQL:
	default:
		return nil, ErrUnknownDriver
	}
	return &SQLStore{
		db:      db,
		dialect: dialect,
	}, nil
}

func ConnectPostgres(dsn string, timeout time.Duration) (*sql.DB, error) {
	return connectSQL(Dialect_Postgres, dsn, timeout)
}

func ConnectMySQL(dsn string, timeout time.Duration) (*sql.DB, error) {
	return connectSQL(Dialect_MySQL, dsn, timeout)
}

func connectSQL(driver, dsn string, timeout time.Duration) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create database handle: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database within %v: %w", timeout, err)
	}

	return db, nil
}

func (s *SQLStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

func (s *SQLStore) Create(ctx context.Context, rec Record) (*Record, error) {
	rec = prepareCreate(rec)

	query := s.rebind(`
		INSERT INTO tournaments (
			id, owner_id, name, settings, levels, payout_structure, players, state, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

	_, err := s.db.ExecContext(ctx, query,
		rec.ID, rec.OwnerID, rec.Name, rec.Settings, rec.Levels,
		rec.PayoutStructure, rec.Players, rec.State, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return nil, ErrRecordExists
		}
		return nil, fmt.Errorf("store: create %s: %w", rec.ID, err)
	}

	return &rec, nil
}

func (s *SQLStore) Update(ctx context.Context, id string, patch RecordPatch) error {
	columns, args := patchColumns(patch)
	columns = append(columns, "updated_at = ?")
	args = append(args, time.Now().Unix(), id)

	query := s.rebind(fmt.Sprintf("UPDATE tournaments SET %s WHERE id = ?", strings.Join(columns, ", ")))
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err == nil && affected > 0 {
		return nil
	}

	// mysql reports zero affected rows when nothing changed
	var exists int
	err = s.db.QueryRowContext(ctx, s.rebind("SELECT 1 FROM tournaments WHERE id = ?"), id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRecordNotFound
	}
	if err != nil {
		return fmt.Errorf("store: update %s: %w", id, err)
	}
	return nil
}

func (s *SQLStore) Get(ctx context.Context, id string) (*Record, error) {
	query := s.rebind(`
		SELECT id, owner_id, name, settings, levels, payout_structure, players, state, created_at, updated_at
		FROM tournaments
		WHERE id = ?`)

	var rec Record
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&rec.ID, &rec.OwnerID, &rec.Name, &rec.Settings, &rec.Levels,
		&rec.PayoutStructure, &rec.Players, &rec.State, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get %s: %w", id, err)
	}

	return &rec, nil
}

// rebind rewrites ? placeholders into $n for postgres.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != Dialect_Postgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func patchColumns(patch RecordPatch) ([]string, []interface{}) {
	columns := make([]string, 0, 7)
	args := make([]interface{}, 0, 8)

	add := func(column string, value *string) {
		if value != nil {
			columns = append(columns, column+" = ?")
			args = append(args, *value)
		}
	}
	add("name", patch.Name)
	add("settings", patch.Settings)
	add("levels", patch.Levels)
	add("payout_structure", patch.PayoutStructure)
	add("players", patch.Players)
	add("state", patch.State)

	return columns, args
}

func isDuplicateKey(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	return false
}
