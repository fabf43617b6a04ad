package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/catalog"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/domain"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/core/ports"
	"github.com/Lorenacollante/sprintfinal-nodo-cine-backend/internal/pkg/metrics"
)

type ProfileService struct {
	repo   ports.ProfileRepository
	logger zerolog.Logger
	now    func() time.Time
}

func NewProfileService(repo ports.ProfileRepository, logger zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger, now: time.Now}
}

func (s *ProfileService) List(ctx context.Context, owner domain.Identity) ([]*domain.Profile, error) {
	profiles, err := s.repo.ListByUser(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if profiles == nil {
		profiles = []*domain.Profile{}
	}
	return profiles, nil
}

// Create enforces the per-user quota with a count followed by an insert.
// Two concurrent creates at the limit may both succeed.
func (s *ProfileService) Create(ctx context.Context, owner domain.Identity, in ports.CreateProfileInput) (*domain.Profile, error) {
	count, err := s.repo.CountByUser(ctx, owner.UserID)
	if err != nil {
		return nil, err
	}
	if count >= domain.MaxProfilesPerUser {
		return nil, domain.ErrProfileLimit
	}

	p := &domain.Profile{
		UserID:       owner.UserID,
		Name:         strings.TrimSpace(in.Name),
		Avatar:       strings.TrimSpace(in.Avatar),
		MaxAgeRating: domain.AgeRating(strings.TrimSpace(in.MaxAgeRating)),
	}
	if p.Avatar == "" {
		p.Avatar = domain.DefaultAvatar
	}
	if p.MaxAgeRating == "" {
		p.MaxAgeRating = domain.DefaultMaxAgeRating
	}

	fields := make(map[string]string)
	if p.Name == "" {
		fields["name"] = "name is required"
	}
	checkProfileFields(fields, p.Avatar, p.MaxAgeRating)
	if len(fields) > 0 {
		return nil, domain.Validation("invalid profile data", fields)
	}

	now := s.now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	metrics.ProfilesCreatedTotal.Inc()
	s.logger.Info().Str("profile_id", created.ID).Str("user_id", owner.UserID).Msg("profile created")
	return created, nil
}

func (s *ProfileService) Update(ctx context.Context, owner domain.Identity, id string, in ports.UpdateProfileInput) (*domain.Profile, error) {
	var changes ports.ProfileChanges
	fields := make(map[string]string)
	avatar := domain.DefaultAvatar
	rating := domain.DefaultMaxAgeRating

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			fields["name"] = "name is required"
		}
		changes.Name = &name
	}
	if in.Avatar != nil {
		avatar = strings.TrimSpace(*in.Avatar)
		if avatar == "" {
			avatar = domain.DefaultAvatar
		}
		changes.Avatar = &avatar
	}
	if in.MaxAgeRating != nil {
		rating = domain.AgeRating(strings.TrimSpace(*in.MaxAgeRating))
		changes.MaxAgeRating = &rating
	}
	checkProfileFields(fields, avatar, rating)
	if len(fields) > 0 {
		return nil, domain.Validation("invalid profile data", fields)
	}

	return s.repo.UpdateOwned(ctx, id, owner.UserID, changes)
}

func (s *ProfileService) Delete(ctx context.Context, owner domain.Identity, id string) error {
	if err := s.repo.DeleteOwned(ctx, id, owner.UserID); err != nil {
		return err
	}
	s.logger.Info().Str("profile_id", id).Str("user_id", owner.UserID).Msg("profile deleted")
	return nil
}

func checkProfileFields(fields map[string]string, avatar string, rating domain.AgeRating) {
	if !catalog.IsMediaRef(avatar) {
		fields["avatar"] = "avatar must be an http(s) URL or start with /"
	}
	if !rating.Valid() {
		fields["maxAgeRating"] = "maxAgeRating must be one of: " + domain.AgeRatingNames()
	}
}
