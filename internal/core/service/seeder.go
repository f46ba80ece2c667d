package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
	"github.com/goals-course/authenticator/internal/core/ports"
)

// AdminSeed holds the credentials of the bootstrap admin account.
type AdminSeed struct {
	Username  string
	Password  string
	FirstName string
	LastName  string
}

// Seeder ensures the fixed role set and the default admin account exist.
// It runs once at startup, before the server accepts traffic.
type Seeder struct {
	users ports.UserRepository
	roles ports.RoleRepository
	log   zerolog.Logger
}

// NewSeeder returns a startup seeder.
func NewSeeder(users ports.UserRepository, roles ports.RoleRepository, log zerolog.Logger) *Seeder {
	return &Seeder{users: users, roles: roles, log: log}
}

// Run seeds roles then the admin user. Safe under concurrent first boot of
// multiple replicas: unique-constraint violations from a sibling replica are
// treated as the row already existing.
func (s *Seeder) Run(ctx context.Context, seed AdminSeed) error {
	roles, err := s.seedRoles(ctx)
	if err != nil {
		return err
	}
	return s.seedAdmin(ctx, seed, roles)
}

func (s *Seeder) seedRoles(ctx context.Context) ([]domain.Role, error) {
	existing, err := s.roles.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	byTitle := make(map[string]domain.Role, len(existing))
	for _, r := range existing {
		byTitle[r.Title] = r
	}

	all := make([]domain.Role, 0, len(domain.SeedRoleTitles()))
	for _, title := range domain.SeedRoleTitles() {
		if r, ok := byTitle[title]; ok {
			all = append(all, r)
			continue
		}
		created, err := s.roles.Create(ctx, &domain.Role{ID: uuid.New(), Title: title})
		if err != nil {
			return nil, err
		}
		s.log.Info().Str("role", title).Msg("role seeded")
		all = append(all, *created)
	}
	return all, nil
}

func (s *Seeder) seedAdmin(ctx context.Context, seed AdminSeed, roles []domain.Role) error {
	_, err := s.users.FindByUsername(ctx, seed.Username)
	if err == nil {
		s.log.Info().Msg("admin already exists")
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	hash, err := HashPassword(seed.Password)
	if err != nil {
		return err
	}

	admin, err := s.users.Create(ctx, &domain.User{
		ID:           uuid.New(),
		Username:     seed.Username,
		PasswordHash: hash,
		FirstName:    seed.FirstName,
		LastName:     seed.LastName,
		Enabled:      true,
		Roles:        roles,
	})
	if errors.Is(err, domain.ErrUserExists) {
		// A sibling replica won the race. Benign.
		s.log.Info().Msg("admin already exists")
		return nil
	}
	if err != nil {
		return err
	}

	s.log.Info().Str("user_id", admin.ID.String()).Msg("admin added successfully")
	return nil
}
