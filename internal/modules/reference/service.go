// Package reference exposes the read-only MPA rating and genre dictionaries.
package reference

import (
	"context"

	"filmorate/internal/domain"
	"filmorate/internal/repository"
)

type Service struct {
	ratings repository.RatingStorage
	genres  repository.GenreStorage
}

func NewService(ratings repository.RatingStorage, genres repository.GenreStorage) *Service {
	return &Service{ratings: ratings, genres: genres}
}

func (s *Service) Ratings(ctx context.Context) ([]domain.Rating, error) {
	return s.ratings.FindAll(ctx)
}

func (s *Service) Rating(ctx context.Context, id int64) (*domain.Rating, error) {
	return s.ratings.FindByID(ctx, id)
}

func (s *Service) Genres(ctx context.Context) ([]domain.Genre, error) {
	return s.genres.FindAll(ctx)
}

func (s *Service) Genre(ctx context.Context, id int64) (*domain.Genre, error) {
	return s.genres.FindByID(ctx, id)
}
