package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
)

const sessionColumns = `id, user_id, refresh_token_hash, expires_at, ip_address, device_info, last_activity, ` +
	auditColumns

type sessionsRepo struct {
	q dbtx
}

func scanSession(sc scanner) (domain.UserSession, error) {
	var (
		s                   domain.UserSession
		expires, lastActive int64
		audit               auditScan
	)
	dest := append([]any{&s.ID, &s.UserID, &s.RefreshTokenHash, &expires, &s.IPAddress, &s.DeviceInfo, &lastActive},
		audit.dest(&s.Audit)...)
	if err := sc.Scan(dest...); err != nil {
		return domain.UserSession{}, mapNotFound(err)
	}
	s.ExpiresAt = fromMS(expires)
	s.LastActivity = fromMS(lastActive)
	audit.apply(&s.Audit)
	return s, nil
}

func (r *sessionsRepo) Create(ctx context.Context, s domain.UserSession) error {
	args := append([]any{
		s.ID, s.UserID, s.RefreshTokenHash, toMS(s.ExpiresAt), s.IPAddress, s.DeviceInfo, toMS(s.LastActivity),
	}, auditArgs(s.Audit)...)
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO user_sessions (`+sessionColumns+`) VALUES (`+placeholders(len(args))+`)`, args...)
	return mapWriteErr(err)
}

func (r *sessionsRepo) GetByTokenHash(ctx context.Context, hash string) (domain.UserSession, error) {
	return scanSession(r.q.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM user_sessions WHERE refresh_token_hash = ?`, hash))
}

func (r *sessionsRepo) ListActiveForUser(ctx context.Context, userID string, now time.Time) ([]domain.UserSession, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+sessionColumns+` FROM user_sessions
		 WHERE user_id = ? AND is_active = 1 AND expires_at > ?
		 ORDER BY created_at DESC`,
		userID, toMS(now),
	)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanSession)
}

func (r *sessionsRepo) Deactivate(ctx context.Context, id string, now time.Time) error {
	return expectOne(r.q.ExecContext(ctx,
		`UPDATE user_sessions SET is_active = 0, last_activity = ?1, last_modified_at = ?1
		 WHERE id = ?2 AND is_active = 1`,
		toMS(now), id,
	))
}

func (r *sessionsRepo) DeleteForUser(ctx context.Context, hash, userID string) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE refresh_token_hash = ? AND user_id = ?`, hash, userID))
}

func (r *sessionsRepo) DeleteAllForUser(ctx context.Context, userID string) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = ?`, userID))
}

func (r *sessionsRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	return rowsAffected(r.q.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE expires_at <= ?1 OR (is_active = 0 AND last_modified_at <= ?1)`,
		toMS(cutoff)))
}
