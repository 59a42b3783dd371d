package film

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"filmorate/internal/domain"
	"filmorate/internal/pkg/validator"
	"filmorate/internal/repository"
)

const (
	maxDescriptionLen = 200
	defaultPopular    = 10
)

// cinemaBirthday — день рождения кино: релиз не может быть раньше первого
// киносеанса братьев Люмьер.
var cinemaBirthday = time.Date(1895, time.December, 28, 0, 0, 0, 0, time.UTC)

type Service struct {
	films repository.FilmStorage
}

func NewService(films repository.FilmStorage) *Service {
	return &Service{films: films}
}

// validateFilm is the business-rule gate. Any violation blocks the write
// entirely; nothing reaches the store.
func validateFilm(f *domain.Film) error {
	if strings.TrimSpace(f.Name) == "" {
		return fmt.Errorf("%w: film name must not be blank", ErrValidation)
	}
	if utf8.RuneCountInString(f.Description) > maxDescriptionLen {
		return fmt.Errorf("%w: description is longer than %d characters", ErrValidation, maxDescriptionLen)
	}
	if f.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive", ErrValidation)
	}
	if f.ReleaseDate.Before(cinemaBirthday) {
		return fmt.Errorf("%w: release date must not be before %s",
			ErrValidation, cinemaBirthday.Format(dateLayout))
	}
	if f.Mpa.ID <= 0 {
		return fmt.Errorf("%w: mpa rating is required", ErrValidation)
	}
	return nil
}

func parseReleaseDate(value string) (time.Time, error) {
	release, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release date must look like %s", ErrValidation, dateLayout)
	}
	return release, nil
}

func (s *Service) FindAll(ctx context.Context) ([]domain.Film, error) {
	return s.films.FindAll(ctx)
}

func (s *Service) Find(ctx context.Context, id int64) (*domain.Film, error) {
	return s.films.FindByID(ctx, id)
}

func (s *Service) Add(ctx context.Context, req CreateFilmRequest) (*domain.Film, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(fields))
	}

	release, err := parseReleaseDate(req.ReleaseDate)
	if err != nil {
		return nil, err
	}

	f := &domain.Film{
		Name:        req.Name,
		Description: req.Description,
		ReleaseDate: release,
		Duration:    req.Duration,
		Mpa:         domain.Rating{ID: req.Mpa.ID},
		Genres:      refsToGenres(req.Genres),
	}
	if err := validateFilm(f); err != nil {
		return nil, err
	}
	return s.films.Create(ctx, f)
}

// Update reads the current aggregate, lays the provided fields over it and
// stores the merged record. Fields the caller left out keep their stored
// values.
func (s *Service) Update(ctx context.Context, req UpdateFilmRequest) (*domain.Film, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(fields))
	}

	current, err := s.films.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Description != nil {
		merged.Description = *req.Description
	}
	if req.ReleaseDate != nil {
		release, err := parseReleaseDate(*req.ReleaseDate)
		if err != nil {
			return nil, err
		}
		merged.ReleaseDate = release
	}
	if req.Duration != nil {
		merged.Duration = *req.Duration
	}
	if req.Mpa != nil {
		merged.Mpa = domain.Rating{ID: req.Mpa.ID}
	}
	if req.Genres != nil {
		merged.Genres = refsToGenres(*req.Genres)
	}

	if err := validateFilm(&merged); err != nil {
		return nil, err
	}
	return s.films.Update(ctx, &merged)
}

func (s *Service) Like(ctx context.Context, filmID, userID int64) (*domain.Film, error) {
	return s.films.AddLike(ctx, filmID, userID)
}

func (s *Service) Unlike(ctx context.Context, filmID, userID int64) (*domain.Film, error) {
	return s.films.RemoveLike(ctx, filmID, userID)
}

// Popular returns the count most liked films; count must be positive.
func (s *Service) Popular(ctx context.Context, count int) ([]domain.Film, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: count must be positive, got %d", ErrValidation, count)
	}
	return s.films.FindPopular(ctx, count)
}
