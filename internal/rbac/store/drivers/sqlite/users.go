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
)

const userColumns = `id, username, email, password_hash, user_type, email_confirmed,
	lockout_enabled, lockout_end, access_failed_count, security_stamp, user_status, version, ` + auditColumns

type usersRepo struct {
	q dbtx
}

func scanUser(sc scanner) (domain.User, error) {
	var (
		u          domain.User
		hash       sql.NullString
		lockoutEnd sql.NullInt64
		audit      auditScan
	)
	dest := append([]any{
		&u.ID, &u.Username, &u.Email, &hash, &u.UserType, &u.EmailConfirmed,
		&u.LockoutEnabled, &lockoutEnd, &u.AccessFailedCount, &u.SecurityStamp, &u.UserStatus, &u.Version,
	}, audit.dest(&u.Audit)...)

	if err := sc.Scan(dest...); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.PasswordHash = mapNullStringPtr(hash)
	u.LockoutEnd = mapNullTimePtr(lockoutEnd)
	audit.apply(&u.Audit)
	return u, nil
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? AND is_active = 1`, username))
}

func (r *usersRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? AND is_active = 1`, email))
}

func (r *usersRepo) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	// A username match wins over somebody else's e-mail.
	return scanUser(r.q.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users
		 WHERE is_active = 1 AND (username = ?1 OR email = ?1)
		 ORDER BY (username = ?1) DESC
		 LIMIT 1`, login))
}

func (r *usersRepo) List(ctx context.Context, opts store.ListOptions) ([]domain.User, int, error) {
	return list(ctx, r.q, "users", userColumns, "username", "username, id", opts, scanUser)
}

func (r *usersRepo) Create(ctx context.Context, u domain.User) error {
	if u.Version == 0 {
		u.Version = 1
	}
	args := append([]any{
		u.ID, u.Username, u.Email, mapOptionalString(u.PasswordHash), u.UserType, u.EmailConfirmed,
		u.LockoutEnabled, mapOptionalTime(u.LockoutEnd), u.AccessFailedCount, u.SecurityStamp, u.UserStatus, u.Version,
	}, auditArgs(u.Audit)...)

	_, err := r.q.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapUserWriteErr(err)
}

// mapUserWriteErr tells an email collision apart from a username one.
func mapUserWriteErr(err error) error {
	err = mapWriteErr(err)
	if !errors.Is(err, store.ErrAlreadyExists) {
		return err
	}
	if msg := err.Error(); strings.Contains(msg, "users.email") || strings.Contains(msg, "ux_users_email") {
		return fmt.Errorf("%w: %s", store.ErrEmailExists, strings.TrimPrefix(msg, store.ErrAlreadyExists.Error()+": "))
	}
	return err
}

func (r *usersRepo) Update(ctx context.Context, u domain.User) (domain.User, error) {
	var version int64
	err := r.q.QueryRowContext(ctx,
		`UPDATE users SET
			username = ?, email = ?, user_type = ?, email_confirmed = ?, lockout_enabled = ?,
			user_status = ?, version = version + 1, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND version = ? AND is_active = 1
		 RETURNING version`,
		u.Username, u.Email, u.UserType, u.EmailConfirmed, u.LockoutEnabled,
		u.UserStatus, toMS(u.LastModifiedAt), u.LastModifiedBy,
		u.ID, u.Version,
	).Scan(&version)

	switch {
	case errors.Is(err, sql.ErrNoRows):
		if _, gerr := r.GetByID(ctx, u.ID); gerr != nil {
			return domain.User{}, gerr
		}
		return domain.User{}, store.ErrStaleVersion
	case err != nil:
		return domain.User{}, mapUserWriteErr(err)
	}

	u.Version = version
	return u, nil
}

func (r *usersRepo) SoftDelete(ctx context.Context, id, actor string, now time.Time) error {
	return softDelete(ctx, r.q, "users", id, actor, now)
}

func (r *usersRepo) RecordFailedAccess(
	ctx context.Context,
	id string,
	threshold int,
	lockUntil time.Time,
	actor string,
	now time.Time,
) (int, *time.Time, error) {
	// SET expressions all read the pre-update row, so the increment and the
	// lock decision see the same counter value.
	var (
		count int
		end   sql.NullInt64
	)
	err := r.q.QueryRowContext(ctx,
		`UPDATE users SET
			access_failed_count = CASE
				WHEN lockout_enabled = 1 AND access_failed_count + 1 >= ?1 THEN 0
				ELSE access_failed_count + 1 END,
			lockout_end = CASE
				WHEN lockout_enabled = 1 AND access_failed_count + 1 >= ?1 THEN ?2
				ELSE lockout_end END,
			last_modified_at = ?3,
			last_modified_by = ?4
		 WHERE id = ?5 AND is_active = 1
		 RETURNING access_failed_count, lockout_end`,
		threshold, toMS(lockUntil), toMS(now), actor, id,
	).Scan(&count, &end)
	if err != nil {
		return 0, nil, mapNotFound(err)
	}
	return count, mapNullTimePtr(end), nil
}

func (r *usersRepo) ResetAccessFailed(ctx context.Context, id, actor string, now time.Time) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET access_failed_count = 0, lockout_end = NULL,
			last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		toMS(now), actor, id,
	))
}

func (r *usersRepo) Activate(ctx context.Context, id, actor string, now time.Time) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET email_confirmed = 1, user_status = 'active', version = version + 1,
			last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		toMS(now), actor, id,
	))
}

func (r *usersRepo) UpdateCredentials(
	ctx context.Context,
	id, passwordHash, securityStamp, actor string,
	now time.Time,
) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, security_stamp = ?, version = version + 1,
			last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_active = 1`,
		passwordHash, securityStamp, toMS(now), actor, id,
	))
}

func (r *usersRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE is_active = 1`).Scan(&n)
	return n, err
}
