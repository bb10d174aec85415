package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// defaultPragmas are appended to DSNs that do not set their own. Foreign keys
// are per connection in SQLite so they have to live in the DSN for every pooled
// connection. Transactions take the write lock up front so read-then-write
// units of work queue on busy_timeout instead of failing to upgrade.
var defaultPragmas = []string{
	"_pragma=foreign_keys(1)",
	"_pragma=busy_timeout(5000)",
	"_pragma=journal_mode(WAL)",
	"_txlock=immediate",
}

type Store struct {
	db  *sql.DB
	dsn string
}

// dbtx is satisfied by both *sql.DB and *sql.Tx so repos work in and out of a
// transaction.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func NewStore(dsn string) (*Store, error) {
	dsn = withPragmas(dsn)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: open %q: %w", dsn, err)
	}

	return &Store{db: db, dsn: dsn}, nil
}

func withPragmas(dsn string) string {
	if strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(defaultPragmas, "&")
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &txStore{tx: tx}, nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *Store) Users() store.Users                     { return &usersRepo{q: s.db} }
func (s *Store) Roles() store.Roles                     { return &rolesRepo{q: s.db} }
func (s *Store) Permissions() store.Permissions         { return &permissionsRepo{q: s.db} }
func (s *Store) Modules() store.Modules                 { return &modulesRepo{q: s.db} }
func (s *Store) Routes() store.Routes                   { return &routesRepo{q: s.db} }
func (s *Store) Access() store.Access                   { return &accessRepo{q: s.db} }
func (s *Store) Sessions() store.Sessions               { return &sessionsRepo{q: s.db} }
func (s *Store) ActivationCodes() store.ActivationCodes { return &activationCodesRepo{q: s.db} }

func (s *Store) Assignments(rel domain.Relation) store.Assignments {
	return newRelationRepo(s.db, rel)
}

type scanner interface {
	Scan(dest ...any) error
}

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

// mapWriteErr turns unique and primary key violations into ErrAlreadyExists.
func mapWriteErr(err error) error {
	var serr *msqlite.Error
	if errors.As(err, &serr) {
		switch serr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return fmt.Errorf("%w: %s", store.ErrAlreadyExists, serr.Error())
		}
	}
	return err
}

// expectOne reports ErrNotFound when a targeted write matched nothing.
func expectOne(res sql.Result, err error) error {
	if err != nil {
		return mapWriteErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func rowsAffected(res sql.Result, err error) (int64, error) {
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func toMS(t time.Time) int64 { return t.UTC().UnixMilli() }

func fromMS(v int64) time.Time { return time.UnixMilli(v).UTC() }

func mapOptionalTime(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: toMS(*t), Valid: true}
}

func mapNullTimePtr(v sql.NullInt64) *time.Time {
	if !v.Valid {
		return nil
	}
	t := fromMS(v.Int64)
	return &t
}

func mapOptionalString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func mapNullStringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	v := ns.String
	return &v
}

const auditColumns = "created_at, created_by, last_modified_at, last_modified_by, is_active"

// auditScan collects the millisecond columns of an Audit block during Scan.
type auditScan struct {
	createdAt  int64
	modifiedAt int64
}

func (s *auditScan) dest(a *domain.Audit) []any {
	return []any{&s.createdAt, &a.CreatedBy, &s.modifiedAt, &a.LastModifiedBy, &a.IsActive}
}

func (s *auditScan) apply(a *domain.Audit) {
	a.CreatedAt = fromMS(s.createdAt)
	a.LastModifiedAt = fromMS(s.modifiedAt)
}

func auditArgs(a domain.Audit) []any {
	return []any{toMS(a.CreatedAt), a.CreatedBy, toMS(a.LastModifiedAt), a.LastModifiedBy, a.IsActive}
}

// qualify prefixes every column of a comma separated list with alias.
func qualify(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

// placeholders returns "?, ?, ?" for n values.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

const (
	defaultListLimit = 50
	maxListLimit     = 500
)

// list runs a paged SELECT plus its COUNT over table using the shared
// ListOptions filter.
func list[T any](
	ctx context.Context,
	q dbtx,
	table, columns, searchColumn, orderBy string,
	opts store.ListOptions,
	scan func(scanner) (T, error),
) ([]T, int, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	limit = min(limit, maxListLimit)
	offset := max(opts.Offset, 0)

	where := ` WHERE (is_active = 1 OR ?) AND (? = '' OR ` + searchColumn + ` LIKE '%' || ? || '%')`
	args := []any{opts.IncludeInactive, opts.Search, opts.Search}

	var total int
	if err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM `+table+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := q.QueryContext(ctx,
		`SELECT `+columns+` FROM `+table+where+` ORDER BY `+orderBy+` LIMIT ? OFFSET ?`,
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, err
	}

	out, err := collect(rows, scan)
	return out, total, err
}

// collect drains rows through scan and closes them.
func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

func softDelete(ctx context.Context, q dbtx, table, id, actor string, now time.Time) error {
	return expectOne(q.ExecContext(ctx,
		`UPDATE `+table+` SET is_active = 0, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		toMS(now), actor, id,
	))
}

var (
	_ store.Store = (*Store)(nil)
	_ store.Tx    = (*txStore)(nil)
)
