package service

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// stubUserRepo is an in-memory ports.UserRepository shared by the service tests.
type stubUserRepo struct {
	mu          sync.Mutex
	users       map[uuid.UUID]*domain.User
	createCalls int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Roles = append([]domain.Role(nil), u.Roles...)
	return &clone
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.createCalls++
	for _, u := range r.users {
		if u.Username == user.Username {
			return nil, domain.ErrUserExists
		}
	}
	stored := cloneUser(user)
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	r.users[stored.ID] = cloneUser(stored)
	return cloneUser(stored), nil
}

func (r *stubUserRepo) ReplaceRoles(_ context.Context, userID uuid.UUID, roles []domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Roles = append([]domain.Role(nil), roles...)
	return nil
}

// stubRoleRepo is an in-memory ports.RoleRepository.
type stubRoleRepo struct {
	mu    sync.Mutex
	roles []domain.Role
}

func (r *stubRoleRepo) FindAll(_ context.Context) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Role(nil), r.roles...), nil
}

func (r *stubRoleRepo) FindAllByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Role
	for _, id := range ids {
		for _, role := range r.roles {
			if role.ID == id {
				out = append(out, role)
			}
		}
	}
	return out, nil
}

func (r *stubRoleRepo) Create(_ context.Context, role *domain.Role) (*domain.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.roles {
		if existing.Title == role.Title {
			existing := existing
			return &existing, nil
		}
	}
	r.roles = append(r.roles, *role)
	clone := *role
	return &clone, nil
}

// stubRefreshRepo mimics the transactional replace semantics of the real
// adapter: delete-plus-insert is atomic under one mutex.
type stubRefreshRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]*domain.RefreshToken // keyed by user id, one row per user
}

func newStubRefreshRepo() *stubRefreshRepo {
	return &stubRefreshRepo{rows: make(map[uuid.UUID]*domain.RefreshToken)}
}

func (r *stubRefreshRepo) FindByToken(_ context.Context, token string) (*domain.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.Token == token {
			clone := *row
			return &clone, nil
		}
	}
	return nil, domain.ErrRefreshTokenInvalid
}

func (r *stubRefreshRepo) Replace(_ context.Context, token *domain.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *token
	r.rows[token.UserID] = &clone
	return nil
}

func (r *stubRefreshRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, row := range r.rows {
		if row.ID == id {
			delete(r.rows, userID)
		}
	}
	return nil
}

func (r *stubRefreshRepo) DeleteByUserID(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, userID)
	return nil
}

func (r *stubRefreshRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// stubThrottle denies once a fixed number of attempts is reached.
type stubThrottle struct {
	mu       sync.Mutex
	attempts map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{attempts: make(map[string]int), limit: limit}
}

func (t *stubThrottle) Allow(_ context.Context, username string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.attempts[username]++
	return t.attempts[username] <= t.limit, nil
}

func (t *stubThrottle) Reset(_ context.Context, username string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.attempts, username)
	return nil
}

var _ ports.UserRepository = (*stubUserRepo)(nil)
var _ ports.RoleRepository = (*stubRoleRepo)(nil)
var _ ports.RefreshTokenRepository = (*stubRefreshRepo)(nil)
var _ ports.LoginThrottle = (*stubThrottle)(nil)

// mustCreateUser seeds the stub repo with a bcrypt-hashed account.
func mustCreateUser(repo *stubUserRepo, username, password string, roles ...domain.Role) *domain.User {
	hash, err := HashPassword(password)
	if err != nil {
		panic(err)
	}
	user, err := repo.Create(context.Background(), &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: hash,
		FirstName:    strings.Split(username, "@")[0],
		LastName:     "Test",
		Enabled:      true,
		Roles:        roles,
	})
	if err != nil {
		panic(err)
	}
	return user
}
