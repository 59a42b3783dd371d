package main

import (
	"context"
	"log"
	"os"
	"time"

	"filmorate/internal/database"
	"filmorate/internal/domain"
	"filmorate/internal/repository"
)

// Seed creates the schema, fills the reference dictionaries and, for local
// development, a handful of demo films and users.
func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "filmorate.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("seed: connect failed:", err)
	}

	log.Println("seed: migrating schema")
	if err := repository.Migrate(db); err != nil {
		log.Fatal("seed: migrate failed:", err)
	}
	if err := repository.SeedReference(db); err != nil {
		log.Fatal("seed: reference data failed:", err)
	}

	ctx := context.Background()
	films := repository.NewFilmRepository(db)
	users := repository.NewUserRepository(db)

	demoUsers := []domain.User{
		{Email: "alice@example.com", Login: "alice", Name: "Алиса", Birthday: date(1994, 3, 12)},
		{Email: "bob@example.com", Login: "bob", Name: "Боб", Birthday: date(1988, 11, 2)},
	}
	for i := range demoUsers {
		created, err := users.Create(ctx, &demoUsers[i])
		if err != nil {
			log.Fatal("seed: user failed:", err)
		}
		log.Printf("seed: user %d (%s)", created.ID, created.Login)
	}

	demoFilms := []domain.Film{
		{
			Name:        "Прибытие поезда на вокзал Ла-Сьота",
			Description: "Тот самый первый сеанс.",
			ReleaseDate: date(1896, 1, 6),
			Duration:    1,
			Mpa:         domain.Rating{ID: 1},
			Genres:      []domain.Genre{{ID: 5}},
		},
		{
			Name:        "Безумный Макс: Дорога ярости",
			Description: "Постапокалиптическая погоня.",
			ReleaseDate: date(2015, 5, 14),
			Duration:    120,
			Mpa:         domain.Rating{ID: 4},
			Genres:      []domain.Genre{{ID: 6}, {ID: 4}},
		},
	}
	for i := range demoFilms {
		created, err := films.Create(ctx, &demoFilms[i])
		if err != nil {
			log.Fatal("seed: film failed:", err)
		}
		log.Printf("seed: film %d (%s)", created.ID, created.Name)
	}

	log.Println("seed: done")
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
