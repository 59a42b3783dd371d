package film

import (
	"filmorate/internal/domain"
)

// Dates travel as plain "2006-01-02" strings on the wire.
const dateLayout = "2006-01-02"

type RatingRef struct {
	ID int64 `json:"id" validate:"required"`
}

type GenreRef struct {
	ID int64 `json:"id" validate:"required"`
}

type CreateFilmRequest struct {
	Name        string     `json:"name" validate:"required"`
	Description string     `json:"description" validate:"max=200"`
	ReleaseDate string     `json:"release_date" validate:"required"`
	Duration    int        `json:"duration" validate:"gt=0"`
	Mpa         RatingRef  `json:"mpa"`
	Genres      []GenreRef `json:"genres"`
}

// UpdateFilmRequest is a field-level partial update: nil means "field not
// provided, keep the stored value". Zero values are never used as absent
// markers.
type UpdateFilmRequest struct {
	ID          int64       `json:"id" validate:"required"`
	Name        *string     `json:"name" validate:"omitempty,min=1"`
	Description *string     `json:"description" validate:"omitempty,max=200"`
	ReleaseDate *string     `json:"release_date"`
	Duration    *int        `json:"duration" validate:"omitempty,gt=0"`
	Mpa         *RatingRef  `json:"mpa"`
	Genres      *[]GenreRef `json:"genres"`
}

type FilmResponse struct {
	ID          int64          `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	ReleaseDate string         `json:"release_date"`
	Duration    int            `json:"duration"`
	Mpa         domain.Rating  `json:"mpa"`
	Genres      []domain.Genre `json:"genres"`
	Likes       []int64        `json:"likes"`
}

func toFilmResponse(f *domain.Film) FilmResponse {
	genres := f.Genres
	if genres == nil {
		genres = []domain.Genre{}
	}
	likes := f.Likes
	if likes == nil {
		likes = []int64{}
	}
	return FilmResponse{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		ReleaseDate: f.ReleaseDate.Format(dateLayout),
		Duration:    f.Duration,
		Mpa:         f.Mpa,
		Genres:      genres,
		Likes:       likes,
	}
}

func toFilmResponseList(films []domain.Film) []FilmResponse {
	out := make([]FilmResponse, 0, len(films))
	for i := range films {
		out = append(out, toFilmResponse(&films[i]))
	}
	return out
}

func refsToGenres(refs []GenreRef) []domain.Genre {
	genres := make([]domain.Genre, 0, len(refs))
	for _, ref := range refs {
		genres = append(genres, domain.Genre{ID: ref.ID})
	}
	return genres
}
