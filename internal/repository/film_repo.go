package repository

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"filmorate/internal/domain"
)

// FilmStorage is the polymorphic film store: one relational implementation
// and one in-memory implementation, selected at composition time. Every
// method that returns a *domain.Film returns the fully assembled aggregate
// (rating resolved, genre and like sets loaded).
type FilmStorage interface {
	FindAll(ctx context.Context) ([]domain.Film, error)
	FindByID(ctx context.Context, id int64) (*domain.Film, error)
	Create(ctx context.Context, film *domain.Film) (*domain.Film, error)
	Update(ctx context.Context, film *domain.Film) (*domain.Film, error)
	AddLike(ctx context.Context, filmID, userID int64) (*domain.Film, error)
	RemoveLike(ctx context.Context, filmID, userID int64) (*domain.Film, error)
	FindPopular(ctx context.Context, count int) ([]domain.Film, error)
}

/* ---------- row models (persisted schema) ---------- */

type filmRow struct {
	ID          int64     `gorm:"column:film_id;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Description string    `gorm:"column:description;size:200"`
	ReleaseDate time.Time `gorm:"column:release_date"`
	Duration    int       `gorm:"column:duration;not null"`
	RatingID    int64     `gorm:"column:rating_id;not null;index"`
}

func (filmRow) TableName() string { return "film" }

type filmGenreRow struct {
	FilmID  int64 `gorm:"column:film_id;primaryKey;autoIncrement:false"`
	GenreID int64 `gorm:"column:genre_id;primaryKey;autoIncrement:false"`
}

func (filmGenreRow) TableName() string { return "film_genre" }

type likeRow struct {
	FilmID int64 `gorm:"column:film_id;primaryKey;autoIncrement:false"`
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
}

func (likeRow) TableName() string { return "likes" }

/* ---------- relational implementation ---------- */

type FilmRepository struct {
	db *gorm.DB
}

func NewFilmRepository(db *gorm.DB) *FilmRepository {
	return &FilmRepository{db: db}
}

// assemble builds the Film aggregate from the base row plus the rating,
// like and genre relations. A film whose rating row has disappeared is a
// data-integrity failure, not a user error.
func (r *FilmRepository) assemble(tx *gorm.DB, row filmRow) (*domain.Film, error) {
	var rating ratingRow
	if err := tx.Where("rating_id = ?", row.RatingID).First(&rating).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: film %d references missing rating %d",
				ErrInternal, row.ID, row.RatingID)
		}
		return nil, translate(err)
	}

	likes := make([]int64, 0)
	if err := tx.Model(&likeRow{}).
		Where("film_id = ?", row.ID).
		Order("user_id").
		Pluck("user_id", &likes).Error; err != nil {
		return nil, translate(err)
	}

	// genre_id order keeps the set deterministic
	genreRows := make([]genreRow, 0)
	if err := tx.Table("genre").
		Select("genre.genre_id, genre.name").
		Joins("INNER JOIN film_genre ON genre.genre_id = film_genre.genre_id").
		Where("film_genre.film_id = ?", row.ID).
		Order("genre.genre_id").
		Scan(&genreRows).Error; err != nil {
		return nil, translate(err)
	}

	genres := make([]domain.Genre, 0, len(genreRows))
	for _, g := range genreRows {
		genres = append(genres, domain.Genre{ID: g.ID, Name: g.Name})
	}

	return &domain.Film{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		ReleaseDate: row.ReleaseDate,
		Duration:    row.Duration,
		Mpa:         domain.Rating{ID: rating.ID, Name: rating.Name},
		Genres:      genres,
		Likes:       likes,
	}, nil
}

func (r *FilmRepository) findByID(tx *gorm.DB, id int64) (*domain.Film, error) {
	var row filmRow
	if err := tx.Where("film_id = ?", id).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: film %d", ErrNotFound, id)
		}
		return nil, translate(err)
	}
	return r.assemble(tx, row)
}

// checkReferences verifies that the rating id and every genre id resolve to
// existing reference rows before anything is written.
func (r *FilmRepository) checkReferences(tx *gorm.DB, film *domain.Film) error {
	var n int64
	if err := tx.Model(&ratingRow{}).Where("rating_id = ?", film.Mpa.ID).Count(&n).Error; err != nil {
		return translate(err)
	}
	if n == 0 {
		return fmt.Errorf("%w: mpa rating %d", ErrNotFound, film.Mpa.ID)
	}
	for _, g := range film.Genres {
		if err := tx.Model(&genreRow{}).Where("genre_id = ?", g.ID).Count(&n).Error; err != nil {
			return translate(err)
		}
		if n == 0 {
			return fmt.Errorf("%w: genre %d", ErrNotFound, g.ID)
		}
	}
	return nil
}

// replaceGenres rewrites the film_genre rows for the film. Duplicate genre
// ids in the input collapse to a single link.
func (r *FilmRepository) replaceGenres(tx *gorm.DB, filmID int64, genres []domain.Genre) error {
	if err := tx.Where("film_id = ?", filmID).Delete(&filmGenreRow{}).Error; err != nil {
		return translate(err)
	}
	seen := make(map[int64]bool, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		if err := tx.Create(&filmGenreRow{FilmID: filmID, GenreID: g.ID}).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}

func (r *FilmRepository) FindAll(ctx context.Context) ([]domain.Film, error) {
	var rows []filmRow
	if err := r.db.WithContext(ctx).Order("film_id").Find(&rows).Error; err != nil {
		return nil, translate(err)
	}

	films := make([]domain.Film, 0, len(rows))
	for _, row := range rows {
		film, err := r.assemble(r.db.WithContext(ctx), row)
		if err != nil {
			return nil, err
		}
		films = append(films, *film)
	}
	return films, nil
}

func (r *FilmRepository) FindByID(ctx context.Context, id int64) (*domain.Film, error) {
	return r.findByID(r.db.WithContext(ctx), id)
}

func (r *FilmRepository) Create(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	var created *domain.Film
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.checkReferences(tx, film); err != nil {
			return err
		}

		row := filmRow{
			Name:        film.Name,
			Description: film.Description,
			ReleaseDate: film.ReleaseDate,
			Duration:    film.Duration,
			RatingID:    film.Mpa.ID,
		}
		if err := tx.Create(&row).Error; err != nil {
			return translate(err)
		}
		if row.ID == 0 {
			return fmt.Errorf("%w: film insert returned no id", ErrInternal)
		}
		if err := r.replaceGenres(tx, row.ID, film.Genres); err != nil {
			return err
		}

		var err error
		created, err = r.findByID(tx, row.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the stored record with the (already merged) film. The
// partial-update merge happens in the service layer; by the time the record
// reaches the store every field carries its final value.
func (r *FilmRepository) Update(ctx context.Context, film *domain.Film) (*domain.Film, error) {
	var updated *domain.Film
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := r.findByID(tx, film.ID); err != nil {
			return err
		}
		if err := r.checkReferences(tx, film); err != nil {
			return err
		}

		res := tx.Model(&filmRow{}).Where("film_id = ?", film.ID).Updates(map[string]interface{}{
			"name":         film.Name,
			"description":  film.Description,
			"release_date": film.ReleaseDate,
			"duration":     film.Duration,
			"rating_id":    film.Mpa.ID,
		})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: film %d update affected no rows", ErrInternal, film.ID)
		}
		if err := r.replaceGenres(tx, film.ID, film.Genres); err != nil {
			return err
		}

		var err error
		updated, err = r.findByID(tx, film.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// AddLike записывает лайк пользователя. Повторный лайк той же пары не
// создаёт дубликата и не считается ошибкой.
func (r *FilmRepository) AddLike(ctx context.Context, filmID, userID int64) (*domain.Film, error) {
	var film *domain.Film
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if _, err := r.findByID(tx, filmID); err != nil {
			return err
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&likeRow{FilmID: filmID, UserID: userID}).Error; err != nil {
			return translate(err)
		}

		var err error
		film, err = r.findByID(tx, filmID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return film, nil
}

// RemoveLike deletes the like fact. Removing a like that was never set is a
// NotFound, mirroring AddLike's existence requirements.
func (r *FilmRepository) RemoveLike(ctx context.Context, filmID, userID int64) (*domain.Film, error) {
	var film *domain.Film
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requireUser(tx, userID); err != nil {
			return err
		}
		if _, err := r.findByID(tx, filmID); err != nil {
			return err
		}

		res := tx.Where("film_id = ? AND user_id = ?", filmID, userID).Delete(&likeRow{})
		if res.Error != nil {
			return translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: user %d has not liked film %d", ErrNotFound, userID, filmID)
		}

		var err error
		film, err = r.findByID(tx, filmID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return film, nil
}

// FindPopular returns films ordered by descending like count, truncated to
// count entries. Ties break arbitrarily.
func (r *FilmRepository) FindPopular(ctx context.Context, count int) ([]domain.Film, error) {
	films, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByLikes(films)
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

func sortByLikes(films []domain.Film) {
	sort.SliceStable(films, func(i, j int) bool {
		return len(films[i].Likes) > len(films[j].Likes)
	})
}
