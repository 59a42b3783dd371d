package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Migrate creates the relational schema:
// film, rating, genre, film_genre, likes, users, friend.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&ratingRow{},
		&genreRow{},
		&filmRow{},
		&filmGenreRow{},
		&userRow{},
		&likeRow{},
		&friendRow{},
	)
}

// DefaultRatings is the MPA classification scale the catalog ships with.
func DefaultRatings() []string {
	return []string{"G", "PG", "PG-13", "R", "NC-17"}
}

// DefaultGenres is the initial genre reference set.
func DefaultGenres() []string {
	return []string{"Комедия", "Драма", "Мультфильм", "Триллер", "Документальный", "Боевик"}
}

// SeedReference inserts the default rating and genre rows, keeping existing
// rows untouched so the seed can run repeatedly.
func SeedReference(db *gorm.DB) error {
	for i, name := range DefaultRatings() {
		row := ratingRow{ID: int64(i + 1), Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return translate(err)
		}
	}
	for i, name := range DefaultGenres() {
		row := genreRow{ID: int64(i + 1), Name: name}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			return translate(err)
		}
	}
	return nil
}
