package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
)

const activationCodeColumns = `id, user_id, code, expires_at, is_used, is_resend, ` + auditColumns

type activationCodesRepo struct {
	q dbtx
}

func scanActivationCode(sc scanner) (domain.ActivationCode, error) {
	var (
		c       domain.ActivationCode
		expires int64
		audit   auditScan
	)
	dest := append([]any{&c.ID, &c.UserID, &c.Code, &expires, &c.IsUsed, &c.IsResend}, audit.dest(&c.Audit)...)
	if err := sc.Scan(dest...); err != nil {
		return domain.ActivationCode{}, mapNotFound(err)
	}
	c.ExpiresAt = fromMS(expires)
	audit.apply(&c.Audit)
	return c, nil
}

func (r *activationCodesRepo) Create(ctx context.Context, c domain.ActivationCode) error {
	args := append([]any{c.ID, c.UserID, c.Code, toMS(c.ExpiresAt), c.IsUsed, c.IsResend}, auditArgs(c.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO activation_codes (`+activationCodeColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *activationCodesRepo) FindUnusedByCode(
	ctx context.Context,
	code, preferUserID string,
) (domain.ActivationCode, error) {
	return scanActivationCode(r.q.QueryRowContext(ctx,
		`SELECT `+activationCodeColumns+` FROM activation_codes
		 WHERE code = ? AND is_used = 0 AND is_active = 1
		 ORDER BY (user_id = ?) DESC, created_at DESC
		 LIMIT 1`,
		code, preferUserID,
	))
}

func (r *activationCodesRepo) ListActiveForUser(ctx context.Context, userID string) ([]domain.ActivationCode, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+activationCodeColumns+` FROM activation_codes
		 WHERE user_id = ? AND is_used = 0 AND is_active = 1
		 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanActivationCode)
}

func (r *activationCodesRepo) MarkUsed(ctx context.Context, id string, now time.Time) (bool, error) {
	n, err := rowsAffected(r.q.ExecContext(ctx,
		`UPDATE activation_codes SET is_used = 1, last_modified_at = ?, last_modified_by = ?
		 WHERE id = ? AND is_used = 0 AND is_active = 1`,
		toMS(now), domain.ActorSystem, id,
	))
	return n == 1, err
}

func (r *activationCodesRepo) InvalidateForUser(ctx context.Context, userID string, now time.Time) error {
	_, err := r.q.ExecContext(ctx,
		`UPDATE activation_codes SET is_active = 0, last_modified_at = ?, last_modified_by = ?
		 WHERE user_id = ? AND is_used = 0 AND is_active = 1`,
		toMS(now), domain.ActorSystem, userID,
	)
	return err
}

func (r *activationCodesRepo) CountResendsSince(ctx context.Context, userID string, since time.Time) (int, error) {
	var n int
	err := r.q.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM activation_codes WHERE user_id = ? AND is_resend = 1 AND created_at >= ?`,
		userID, toMS(since),
	).Scan(&n)
	return n, err
}

func (r *activationCodesRepo) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx,
		`DELETE FROM activation_codes
		 WHERE expires_at <= ?1 OR ((is_used = 1 OR is_active = 0) AND last_modified_at <= ?1)`,
		toMS(cutoff)))
}
