package directory

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/telemedika/teleconsult-api/internal/model"
	"github.com/telemedika/teleconsult-api/internal/repository"
)

const doctorsKey = "doctors"

// Service serves the doctor directory shown on the booking form. Listings
// change rarely and are requested on every booking page load, so they are
// held in a short-lived in-process cache.
type Service struct {
	repo  repository.DoctorRepository
	cache *gocache.Cache
}

func NewService(repo repository.DoctorRepository, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	return &Service{
		repo:  repo,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.DoctorListing, error) {
	if cached, ok := s.cache.Get(doctorsKey); ok {
		return cached.([]*model.DoctorListing), nil
	}

	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}

	s.cache.SetDefault(doctorsKey, doctors)
	return doctors, nil
}
