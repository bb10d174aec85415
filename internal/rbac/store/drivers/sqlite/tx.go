package sqlite

import (
	"context"
	"database/sql"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
	"github.com/aussiebroadwan/warden/internal/rbac/store"
)

type txStore struct {
	tx *sql.Tx
}

func (t *txStore) Commit() error   { return t.tx.Commit() }
func (t *txStore) Rollback() error { return t.tx.Rollback() }

func (t *txStore) Close() error { return nil } // the outer DB stays open

// Ping is a no-op, the connection is held by the transaction.
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	// Nested tx not supported; could emulate with SAVEPOINT if needed
	return nil, sql.ErrTxDone
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return sql.ErrTxDone
}

func (t *txStore) Users() store.Users                     { return &usersRepo{q: t.tx} }
func (t *txStore) Roles() store.Roles                     { return &rolesRepo{q: t.tx} }
func (t *txStore) Permissions() store.Permissions         { return &permissionsRepo{q: t.tx} }
func (t *txStore) Modules() store.Modules                 { return &modulesRepo{q: t.tx} }
func (t *txStore) Routes() store.Routes                   { return &routesRepo{q: t.tx} }
func (t *txStore) Access() store.Access                   { return &accessRepo{q: t.tx} }
func (t *txStore) Sessions() store.Sessions               { return &sessionsRepo{q: t.tx} }
func (t *txStore) ActivationCodes() store.ActivationCodes { return &activationCodesRepo{q: t.tx} }

func (t *txStore) Assignments(rel domain.Relation) store.Assignments {
	return newRelationRepo(t.tx, rel)
}

func (t *txStore) ApplyMigrations() error { return nil } // migrations run before any tx
