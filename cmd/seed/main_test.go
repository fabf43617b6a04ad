package main

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
)

func TestParseFlags_Defaults(t *testing.T) {
	o, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if o.pages != 1 || o.destroy || o.resetUser {
		t.Fatalf("unexpected defaults: %+v", o)
	}
	if o.email != "admin@lucero.com" || o.password != "admin123" {
		t.Fatalf("unexpected account defaults: %+v", o)
	}
}

func TestParseFlags_Validation(t *testing.T) {
	if _, err := parseFlags([]string{"-destroy", "-reset-user"}); err == nil {
		t.Fatalf("expected conflicting modes to fail")
	}
	if _, err := parseFlags([]string{"-pages", "0"}); err == nil {
		t.Fatalf("expected -pages 0 to fail")
	}
	o, err := parseFlags([]string{"-reset-user", "-email", "ana@example.com", "-password", "s3cret!"})
	if err != nil || !o.resetUser || o.email != "ana@example.com" {
		t.Fatalf("unexpected result %+v %v", o, err)
	}
}

type stubProfiles struct {
	existing []*domain.Profile
	created  []ports.CreateProfileInput
}

func (s *stubProfiles) List(context.Context, domain.Identity) ([]*domain.Profile, error) {
	return s.existing, nil
}

func (s *stubProfiles) Create(_ context.Context, owner domain.Identity, in ports.CreateProfileInput) (*domain.Profile, error) {
	s.created = append(s.created, in)
	return &domain.Profile{ID: "p1", UserID: owner.UserID, Name: in.Name}, nil
}

func (s *stubProfiles) Update(context.Context, domain.Identity, string, ports.UpdateProfileInput) (*domain.Profile, error) {
	return nil, nil
}

func (s *stubProfiles) Delete(context.Context, domain.Identity, string) error { return nil }

func TestEnsureDefaultProfile(t *testing.T) {
	owner := domain.Identity{UserID: "u1", Role: domain.RoleOwner}

	empty := &stubProfiles{}
	if err := ensureDefaultProfile(context.Background(), empty, owner, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(empty.created) != 1 || empty.created[0].Name != "Adulto" {
		t.Fatalf("expected default profile, got %+v", empty.created)
	}

	populated := &stubProfiles{existing: []*domain.Profile{{ID: "p0"}}}
	if err := ensureDefaultProfile(context.Background(), populated, owner, zerolog.Nop()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(populated.created) != 0 {
		t.Fatalf("no profile should be created when one exists")
	}
}
