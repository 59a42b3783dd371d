package domain

import "time"

// Rating — возрастной рейтинг фильма по классификации MPA (G, PG, PG-13, R, NC-17).
// Справочные данные, создаются только сидом, ядро их не изменяет.
type Rating struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Genre — жанр фильма. Как и Rating, read-only справочник.
type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
}

// Film is the composite aggregate: the base film row plus its resolved
// rating, genre set (ordered by genre id) and like set (user ids).
type Film struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	ReleaseDate time.Time `json:"release_date"`
	Duration    int       `json:"duration"` // minutes
	Mpa         Rating    `json:"mpa"`
	Genres      []Genre   `json:"genres"`
	Likes       []int64   `json:"likes"`
}

// LikedBy reports whether the user id is in the film's like set.
func (f *Film) LikedBy(userID int64) bool {
	for _, id := range f.Likes {
		if id == userID {
			return true
		}
	}
	return false
}
