package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"

	"filmorate/internal/config"
	"filmorate/internal/database"
	"filmorate/internal/middleware"
	"filmorate/internal/modules/film"
	"filmorate/internal/modules/reference"
	"filmorate/internal/modules/user"
	"filmorate/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var (
		filmStorage   repository.FilmStorage
		userStorage   repository.UserStorage
		ratingStorage repository.RatingStorage
		genreStorage  repository.GenreStorage
	)

	// Storage variant is a composition-time decision; nothing below this
	// switch knows which backend it is talking to.
	switch cfg.Storage {
	case config.StorageMemory:
		store := repository.NewMemoryStore()
		filmStorage = store.Films()
		userStorage = store.Users()
		ratingStorage = store.Ratings()
		genreStorage = store.Genres()
	default:
		db, err := database.Connect(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		if err := repository.Migrate(db); err != nil {
			log.Fatal(err)
		}
		if err := repository.SeedReference(db); err != nil {
			log.Fatal(err)
		}
		filmStorage = repository.NewFilmRepository(db)
		userStorage = repository.NewUserRepository(db)
		ratingStorage = repository.NewRatingRepository(db)
		genreStorage = repository.NewGenreRepository(db)
	}

	filmHandler := film.NewHandler(film.NewService(filmStorage))
	userHandler := user.NewHandler(user.NewService(userStorage))
	referenceHandler := reference.NewHandler(reference.NewService(ratingStorage, genreStorage))

	r := gin.New()
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	root := r.Group("")
	{
		filmHandler.RegisterRoutes(root)
		userHandler.RegisterRoutes(root)
		referenceHandler.RegisterRoutes(root)
	}

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	log.Printf("api: listening on %s (storage=%s)", addr, cfg.Storage)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
