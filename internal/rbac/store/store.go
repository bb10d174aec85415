package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aussiebroadwan/warden/internal/rbac/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
	ErrStaleVersion  = errors.New("store: stale row version")

	// ErrEmailExists is the ErrAlreadyExists of the users email index.
	ErrEmailExists = fmt.Errorf("%w: email", ErrAlreadyExists)
)

// Store is the root data access interface. Concrete drivers implement it and
// expose sub-repositories so a Tx can hand out the same repos bound to the
// transaction.
type Store interface {
	Users() Users
	Roles() Roles
	Permissions() Permissions
	Modules() Modules
	Routes() Routes
	Assignments(rel domain.Relation) Assignments
	Access() Access
	Sessions() Sessions
	ActivationCodes() ActivationCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. A non-nil error from fn rolls
	// back, nil commits.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

// ListOptions pages list queries. Zero Limit means the driver default.
type ListOptions struct {
	Limit           int
	Offset          int
	Search          string // substring match on the entity's name column
	IncludeInactive bool
}

type Users interface {
	GetByID(ctx context.Context, id string) (domain.User, error)
	GetByUsername(ctx context.Context, username string) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// GetByLogin matches an active user by username or email.
	GetByLogin(ctx context.Context, login string) (domain.User, error)

	List(ctx context.Context, opts ListOptions) ([]domain.User, int, error)
	Create(ctx context.Context, u domain.User) error

	// Update writes profile and status fields when u.Version matches the stored
	// row, bumping the version. A mismatch returns ErrStaleVersion.
	Update(ctx context.Context, u domain.User) (domain.User, error)

	SoftDelete(ctx context.Context, id, actor string, now time.Time) error

	// RecordFailedAccess increments the failure counter in a single statement.
	// When the new count reaches threshold on a lockout enabled user the
	// counter restarts at zero and lockout_end becomes lockUntil.
	RecordFailedAccess(ctx context.Context, id string, threshold int, lockUntil time.Time, actor string, now time.Time) (count int, lockoutEnd *time.Time, err error)

	// ResetAccessFailed clears the counter and lockout_end.
	ResetAccessFailed(ctx context.Context, id, actor string, now time.Time) error

	// Activate confirms the e-mail and moves the user to active.
	Activate(ctx context.Context, id, actor string, now time.Time) error

	// UpdateCredentials swaps the password hash and security stamp.
	UpdateCredentials(ctx context.Context, id, passwordHash, securityStamp, actor string, now time.Time) error

	Count(ctx context.Context) (int, error)
}

type Roles interface {
	GetByID(ctx context.Context, id string) (domain.Role, error)
	GetByName(ctx context.Context, name string) (domain.Role, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Role, int, error)
	Create(ctx context.Context, r domain.Role) error
	Update(ctx context.Context, r domain.Role) error
	SoftDelete(ctx context.Context, id, actor string, now time.Time) error
}

type Permissions interface {
	GetByID(ctx context.Context, id string) (domain.Permission, error)
	GetByName(ctx context.Context, name string) (domain.Permission, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Permission, int, error)
	Create(ctx context.Context, p domain.Permission) error
	Update(ctx context.Context, p domain.Permission) error
	SoftDelete(ctx context.Context, id, actor string, now time.Time) error
}

type Modules interface {
	GetByID(ctx context.Context, id string) (domain.Module, error)
	GetByName(ctx context.Context, name string) (domain.Module, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Module, int, error)

	// ListActive returns every active module, unpaged, for tree building.
	ListActive(ctx context.Context) ([]domain.Module, error)

	// ParentMap maps every active module id to its parent id (nil for roots).
	ParentMap(ctx context.Context) (map[string]*string, error)

	CountActiveChildren(ctx context.Context, id string) (int, error)
	Create(ctx context.Context, m domain.Module) error
	Update(ctx context.Context, m domain.Module) error
	SoftDelete(ctx context.Context, id, actor string, now time.Time) error
}

type Routes interface {
	GetByID(ctx context.Context, id string) (domain.Route, error)
	List(ctx context.Context, opts ListOptions) ([]domain.Route, int, error)
	Create(ctx context.Context, r domain.Route) error
	Update(ctx context.Context, r domain.Route) error
	SoftDelete(ctx context.Context, id, actor string, now time.Time) error
}

// Assignments is one join table. Rows are never deleted, only flipped.
type Assignments interface {
	// Get returns the row for the pair, active or not.
	Get(ctx context.Context, ownerID, targetID string) (domain.Assignment, error)
	Create(ctx context.Context, a domain.Assignment) error
	SetActive(ctx context.Context, id string, active bool, actor string, now time.Time) error
}

// Access answers the resolver's questions. Every query only follows edges
// whose assignment rows and entity rows are all active.
type Access interface {
	RolesForUser(ctx context.Context, userID string) ([]domain.Role, error)
	PermissionsForUser(ctx context.Context, userID string) ([]domain.Permission, error)
	PermissionsForRole(ctx context.Context, roleID string) ([]domain.Permission, error)
	ModulesForRole(ctx context.Context, roleID string) ([]domain.Module, error)
	ModulesForUser(ctx context.Context, userID string) ([]domain.Module, error)

	// RoutesForRole is the union of direct role routes and routes reached
	// through the role's permissions.
	RoutesForRole(ctx context.Context, roleID string) ([]domain.Route, error)

	RoleHasPermission(ctx context.Context, roleID, permissionName string) (bool, error)
	RoleGrantsModule(ctx context.Context, roleID, moduleID string) (bool, error)
}

type Sessions interface {
	Create(ctx context.Context, s domain.UserSession) error
	GetByTokenHash(ctx context.Context, hash string) (domain.UserSession, error)
	ListActiveForUser(ctx context.Context, userID string, now time.Time) ([]domain.UserSession, error)

	// Deactivate marks a session spent. Returns ErrNotFound when it was not active.
	Deactivate(ctx context.Context, id string, now time.Time) error

	// DeleteForUser removes the session with hash only if it belongs to userID.
	DeleteForUser(ctx context.Context, hash, userID string) (int64, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)

	// DeleteExpired removes sessions that expired or were deactivated before cutoff.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type ActivationCodes interface {
	Create(ctx context.Context, c domain.ActivationCode) error

	// FindUnusedByCode returns an active, unused code with that value,
	// preferring one owned by preferUserID.
	FindUnusedByCode(ctx context.Context, code, preferUserID string) (domain.ActivationCode, error)

	ListActiveForUser(ctx context.Context, userID string) ([]domain.ActivationCode, error)

	// MarkUsed flips is_used only when it is still unused. Returns false when
	// no row changed.
	MarkUsed(ctx context.Context, id string, now time.Time) (bool, error)

	// InvalidateForUser retires every unused code of the user.
	InvalidateForUser(ctx context.Context, userID string, now time.Time) error

	CountResendsSince(ctx context.Context, userID string, since time.Time) (int, error)

	// DeleteStale removes used, invalidated or expired codes older than cutoff.
	DeleteStale(ctx context.Context, cutoff time.Time) (int64, error)
}
