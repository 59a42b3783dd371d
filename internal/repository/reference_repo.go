package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"filmorate/internal/domain"
)

// RatingStorage — справочник рейтингов MPA. Только чтение: строки создаёт
// сид, ядро их не меняет.
type RatingStorage interface {
	FindAll(ctx context.Context) ([]domain.Rating, error)
	FindByID(ctx context.Context, id int64) (*domain.Rating, error)
}

// GenreStorage — справочник жанров, тоже read-only.
type GenreStorage interface {
	FindAll(ctx context.Context) ([]domain.Genre, error)
	FindByID(ctx context.Context, id int64) (*domain.Genre, error)
}

type ratingRow struct {
	ID   int64  `gorm:"column:rating_id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

func (ratingRow) TableName() string { return "rating" }

type genreRow struct {
	ID   int64  `gorm:"column:genre_id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}

func (genreRow) TableName() string { return "genre" }

type RatingRepository struct {
	db *gorm.DB
}

func NewRatingRepository(db *gorm.DB) *RatingRepository {
	return &RatingRepository{db: db}
}

func (r *RatingRepository) FindAll(ctx context.Context) ([]domain.Rating, error) {
	var rows []ratingRow
	if err := r.db.WithContext(ctx).Order("rating_id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	ratings := make([]domain.Rating, 0, len(rows))
	for _, row := range rows {
		ratings = append(ratings, domain.Rating{ID: row.ID, Name: row.Name})
	}
	return ratings, nil
}

func (r *RatingRepository) FindByID(ctx context.Context, id int64) (*domain.Rating, error) {
	var row ratingRow
	if err := r.db.WithContext(ctx).Where("rating_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: mpa rating %d", ErrNotFound, id)
		}
		return nil, translate(err)
	}
	return &domain.Rating{ID: row.ID, Name: row.Name}, nil
}

type GenreRepository struct {
	db *gorm.DB
}

func NewGenreRepository(db *gorm.DB) *GenreRepository {
	return &GenreRepository{db: db}
}

func (r *GenreRepository) FindAll(ctx context.Context) ([]domain.Genre, error) {
	var rows []genreRow
	if err := r.db.WithContext(ctx).Order("genre_id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	genres := make([]domain.Genre, 0, len(rows))
	for _, row := range rows {
		genres = append(genres, domain.Genre{ID: row.ID, Name: row.Name})
	}
	return genres, nil
}

func (r *GenreRepository) FindByID(ctx context.Context, id int64) (*domain.Genre, error) {
	var row genreRow
	if err := r.db.WithContext(ctx).Where("genre_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: genre %d", ErrNotFound, id)
		}
		return nil, translate(err)
	}
	return &domain.Genre{ID: row.ID, Name: row.Name}, nil
}
