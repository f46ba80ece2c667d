package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/goals-course/authenticator/internal/core/domain"
)

func TestSeeder_CreatesRolesAndAdmin(t *testing.T) {
	users := newStubUserRepo()
	roles := &stubRoleRepo{}
	seeder := NewSeeder(users, roles, zerolog.Nop())

	seed := AdminSeed{
		Username:  "admin@example.com",
		Password:  "Adm1n.Pass",
		FirstName: "Default",
		LastName:  "Admin",
	}
	if err := seeder.Run(context.Background(), seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	all, _ := roles.FindAll(context.Background())
	if len(all) != len(domain.SeedRoleTitles()) {
		t.Fatalf("expected %d roles, got %d", len(domain.SeedRoleTitles()), len(all))
	}

	admin, err := users.FindByUsername(context.Background(), "admin@example.com")
	if err != nil {
		t.Fatalf("admin missing after seed: %v", err)
	}
	if !admin.HasRole(domain.RoleAdmin) || !admin.HasRole(domain.RoleUser) {
		t.Fatalf("admin must carry all seeded roles, got %v", admin.RoleTitles())
	}
	if !admin.Enabled {
		t.Fatalf("admin must be enabled")
	}
}

func TestSeeder_RunTwiceIsIdempotent(t *testing.T) {
	users := newStubUserRepo()
	roles := &stubRoleRepo{}
	seeder := NewSeeder(users, roles, zerolog.Nop())
	seed := AdminSeed{Username: "admin@example.com", Password: "Adm1n.Pass"}

	if err := seeder.Run(context.Background(), seed); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := seeder.Run(context.Background(), seed); err != nil {
		t.Fatalf("second run: %v", err)
	}

	all, _ := roles.FindAll(context.Background())
	if len(all) != len(domain.SeedRoleTitles()) {
		t.Fatalf("roles duplicated on reseed: %d", len(all))
	}
	if users.createCalls != 1 {
		t.Fatalf("admin must be created exactly once, saw %d creates", users.createCalls)
	}
}

func TestSeeder_AdminLoginCarriesAdminRole(t *testing.T) {
	users := newStubUserRepo()
	roles := &stubRoleRepo{}
	if err := NewSeeder(users, roles, zerolog.Nop()).Run(context.Background(), AdminSeed{
		Username: "admin@example.com",
		Password: "Adm1n.Pass",
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	refreshRepo := newStubRefreshRepo()
	tokens := newTestTokenService()
	sessions := NewSessionService(
		users,
		NewAuthenticator(users),
		tokens,
		NewRefreshTokenService(refreshRepo, users, tokens, zerolog.Nop()),
		nil,
		zerolog.Nop(),
	)

	session, err := sessions.Login(context.Background(), "admin@example.com", "Adm1n.Pass")
	if err != nil {
		t.Fatalf("admin login: %v", err)
	}
	if !session.User.HasRole(domain.RoleAdmin) {
		t.Fatalf("admin login response missing ADMIN role: %v", session.User.RoleTitles())
	}
}
