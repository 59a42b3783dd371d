package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"filmorate/internal/domain"
)

// MemoryStore is the in-memory storage variant. It keeps the same normalized
// relations as the relational schema (base rows, like facts, directed
// friendship edges) behind one RWMutex, so every public operation reads or
// writes a single consistent snapshot. The friendship semantics follow the
// relational confirm model, not a symmetric mutable set.
type MemoryStore struct {
	mu sync.RWMutex

	films   map[int64]memFilm
	users   map[int64]memUser
	ratings map[int64]string
	genres  map[int64]string
	likes   map[[2]int64]struct{} // (film id, user id)
	friends map[[2]int64]bool     // (owner id, target id) -> confirmed

	nextFilmID int64
	nextUserID int64
}

type memFilm struct {
	name        string
	description string
	releaseDate time.Time
	duration    int
	ratingID    int64
	genreIDs    []int64
}

type memUser struct {
	email    string
	login    string
	name     string
	birthday time.Time
}

// NewMemoryStore builds an empty store pre-seeded with the default rating
// and genre reference data.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		films:   make(map[int64]memFilm),
		users:   make(map[int64]memUser),
		ratings: make(map[int64]string),
		genres:  make(map[int64]string),
		likes:   make(map[[2]int64]struct{}),
		friends: make(map[[2]int64]bool),
	}
	for i, name := range DefaultRatings() {
		s.ratings[int64(i+1)] = name
	}
	for i, name := range DefaultGenres() {
		s.genres[int64(i+1)] = name
	}
	return s
}

func (s *MemoryStore) Films() FilmStorage     { return &memoryFilmStorage{s} }
func (s *MemoryStore) Users() UserStorage     { return &memoryUserStorage{s} }
func (s *MemoryStore) Ratings() RatingStorage { return &memoryRatingStorage{s} }
func (s *MemoryStore) Genres() GenreStorage   { return &memoryGenreStorage{s} }

/* ---------- assembly helpers (caller holds the lock) ---------- */

func (s *MemoryStore) assembleFilm(id int64) (*domain.Film, error) {
	row, ok := s.films[id]
	if !ok {
		return nil, fmt.Errorf("%w: film %d", ErrNotFound, id)
	}
	ratingName, ok := s.ratings[row.ratingID]
	if !ok {
		return nil, fmt.Errorf("%w: film %d references missing rating %d", ErrInternal, id, row.ratingID)
	}

	likes := make([]int64, 0)
	for key := range s.likes {
		if key[0] == id {
			likes = append(likes, key[1])
		}
	}
	sort.Slice(likes, func(i, j int) bool { return likes[i] < likes[j] })

	genreIDs := append([]int64(nil), row.genreIDs...)
	sort.Slice(genreIDs, func(i, j int) bool { return genreIDs[i] < genreIDs[j] })
	genres := make([]domain.Genre, 0, len(genreIDs))
	for _, gid := range genreIDs {
		genres = append(genres, domain.Genre{ID: gid, Name: s.genres[gid]})
	}

	return &domain.Film{
		ID:          id,
		Name:        row.name,
		Description: row.description,
		ReleaseDate: row.releaseDate,
		Duration:    row.duration,
		Mpa:         domain.Rating{ID: row.ratingID, Name: ratingName},
		Genres:      genres,
		Likes:       likes,
	}, nil
}

func (s *MemoryStore) assembleUser(id int64) (*domain.User, error) {
	row, ok := s.users[id]
	if !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	return &domain.User{
		ID:       id,
		Email:    row.email,
		Login:    row.login,
		Name:     row.name,
		Birthday: row.birthday,
		Friends:  s.confirmedFriendIDs(id),
	}, nil
}

func (s *MemoryStore) confirmedFriendIDs(id int64) []int64 {
	ids := make([]int64, 0)
	for edge, confirmed := range s.friends {
		if edge[0] == id && confirmed {
			ids = append(ids, edge[1])
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func (s *MemoryStore) checkFilmReferences(f *domain.Film) error {
	if _, ok := s.ratings[f.Mpa.ID]; !ok {
		return fmt.Errorf("%w: mpa rating %d", ErrNotFound, f.Mpa.ID)
	}
	for _, g := range f.Genres {
		if _, ok := s.genres[g.ID]; !ok {
			return fmt.Errorf("%w: genre %d", ErrNotFound, g.ID)
		}
	}
	return nil
}

func dedupGenreIDs(genres []domain.Genre) []int64 {
	seen := make(map[int64]bool, len(genres))
	ids := make([]int64, 0, len(genres))
	for _, g := range genres {
		if seen[g.ID] {
			continue
		}
		seen[g.ID] = true
		ids = append(ids, g.ID)
	}
	return ids
}

/* ---------- film storage ---------- */

type memoryFilmStorage struct {
	store *MemoryStore
}

func (m *memoryFilmStorage) FindAll(_ context.Context) ([]domain.Film, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.films))
	for id := range s.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	films := make([]domain.Film, 0, len(ids))
	for _, id := range ids {
		f, err := s.assembleFilm(id)
		if err != nil {
			return nil, err
		}
		films = append(films, *f)
	}
	return films, nil
}

func (m *memoryFilmStorage) FindByID(_ context.Context, id int64) (*domain.Film, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.assembleFilm(id)
}

func (m *memoryFilmStorage) Create(_ context.Context, film *domain.Film) (*domain.Film, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFilmReferences(film); err != nil {
		return nil, err
	}

	s.nextFilmID++
	id := s.nextFilmID
	s.films[id] = memFilm{
		name:        film.Name,
		description: film.Description,
		releaseDate: film.ReleaseDate,
		duration:    film.Duration,
		ratingID:    film.Mpa.ID,
		genreIDs:    dedupGenreIDs(film.Genres),
	}
	return s.assembleFilm(id)
}

func (m *memoryFilmStorage) Update(_ context.Context, film *domain.Film) (*domain.Film, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[film.ID]; !ok {
		return nil, fmt.Errorf("%w: film %d", ErrNotFound, film.ID)
	}
	if err := s.checkFilmReferences(film); err != nil {
		return nil, err
	}

	s.films[film.ID] = memFilm{
		name:        film.Name,
		description: film.Description,
		releaseDate: film.ReleaseDate,
		duration:    film.Duration,
		ratingID:    film.Mpa.ID,
		genreIDs:    dedupGenreIDs(film.Genres),
	}
	return s.assembleFilm(film.ID)
}

func (m *memoryFilmStorage) AddLike(_ context.Context, filmID, userID int64) (*domain.Film, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if _, ok := s.films[filmID]; !ok {
		return nil, fmt.Errorf("%w: film %d", ErrNotFound, filmID)
	}

	s.likes[[2]int64{filmID, userID}] = struct{}{}
	return s.assembleFilm(filmID)
}

func (m *memoryFilmStorage) RemoveLike(_ context.Context, filmID, userID int64) (*domain.Film, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	if _, ok := s.films[filmID]; !ok {
		return nil, fmt.Errorf("%w: film %d", ErrNotFound, filmID)
	}

	key := [2]int64{filmID, userID}
	if _, ok := s.likes[key]; !ok {
		return nil, fmt.Errorf("%w: user %d has not liked film %d", ErrNotFound, userID, filmID)
	}
	delete(s.likes, key)
	return s.assembleFilm(filmID)
}

func (m *memoryFilmStorage) FindPopular(ctx context.Context, count int) ([]domain.Film, error) {
	films, err := m.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sortByLikes(films)
	if count < len(films) {
		films = films[:count]
	}
	return films, nil
}

/* ---------- user storage ---------- */

type memoryUserStorage struct {
	store *MemoryStore
}

func (m *memoryUserStorage) FindAll(_ context.Context) ([]domain.User, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.users))
	for id := range s.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		u, err := s.assembleUser(id)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (m *memoryUserStorage) FindByID(_ context.Context, id int64) (*domain.User, error) {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return m.store.assembleUser(id)
}

func (m *memoryUserStorage) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextUserID++
	id := s.nextUserID
	s.users[id] = memUser{
		email:    user.Email,
		login:    user.Login,
		name:     user.Name,
		birthday: user.Birthday,
	}
	return s.assembleUser(id)
}

func (m *memoryUserStorage) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.ID]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, user.ID)
	}
	s.users[user.ID] = memUser{
		email:    user.Email,
		login:    user.Login,
		name:     user.Name,
		birthday: user.Birthday,
	}
	return s.assembleUser(user.ID)
}

func (m *memoryUserStorage) AddFriend(_ context.Context, id, friendID int64) (*domain.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if _, ok := s.users[friendID]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, friendID)
	}

	edge := [2]int64{id, friendID}
	if _, ok := s.friends[edge]; !ok {
		s.friends[edge] = false
	}
	if _, ok := s.friends[[2]int64{friendID, id}]; ok {
		s.friends[edge] = true
		s.friends[[2]int64{friendID, id}] = true
	}
	return s.assembleUser(id)
}

func (m *memoryUserStorage) DeleteFriend(_ context.Context, id, friendID int64) (*domain.User, error) {
	s := m.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}
	if _, ok := s.users[friendID]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, friendID)
	}

	edge := [2]int64{id, friendID}
	if _, ok := s.friends[edge]; !ok {
		return nil, fmt.Errorf("%w: user %d has no friendship edge to user %d", ErrNotFound, id, friendID)
	}
	delete(s.friends, edge)

	// обратное ребро становится снова «заявкой», но не удаляется
	reverse := [2]int64{friendID, id}
	if _, ok := s.friends[reverse]; ok {
		s.friends[reverse] = false
	}
	return s.assembleUser(id)
}

func (m *memoryUserStorage) FindFriends(_ context.Context, id int64) ([]domain.User, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.users[id]; !ok {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
	}

	friends := make([]domain.User, 0)
	for _, fid := range s.confirmedFriendIDs(id) {
		u, err := s.assembleUser(fid)
		if err != nil {
			return nil, err
		}
		friends = append(friends, *u)
	}
	return friends, nil
}

func (m *memoryUserStorage) FindMutuals(_ context.Context, id, otherID int64) ([]domain.User, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	otherSet := make(map[int64]bool)
	for _, fid := range s.confirmedFriendIDs(otherID) {
		otherSet[fid] = true
	}

	mutuals := make([]domain.User, 0)
	for _, fid := range s.confirmedFriendIDs(id) {
		if !otherSet[fid] {
			continue
		}
		u, err := s.assembleUser(fid)
		if err != nil {
			return nil, err
		}
		mutuals = append(mutuals, *u)
	}
	return mutuals, nil
}

/* ---------- reference storage ---------- */

type memoryRatingStorage struct {
	store *MemoryStore
}

func (m *memoryRatingStorage) FindAll(_ context.Context) ([]domain.Rating, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.ratings))
	for id := range s.ratings {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	ratings := make([]domain.Rating, 0, len(ids))
	for _, id := range ids {
		ratings = append(ratings, domain.Rating{ID: id, Name: s.ratings[id]})
	}
	return ratings, nil
}

func (m *memoryRatingStorage) FindByID(_ context.Context, id int64) (*domain.Rating, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.ratings[id]
	if !ok {
		return nil, fmt.Errorf("%w: mpa rating %d", ErrNotFound, id)
	}
	return &domain.Rating{ID: id, Name: name}, nil
}

type memoryGenreStorage struct {
	store *MemoryStore
}

func (m *memoryGenreStorage) FindAll(_ context.Context) ([]domain.Genre, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]int64, 0, len(s.genres))
	for id := range s.genres {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	genres := make([]domain.Genre, 0, len(ids))
	for _, id := range ids {
		genres = append(genres, domain.Genre{ID: id, Name: s.genres[id]})
	}
	return genres, nil
}

func (m *memoryGenreStorage) FindByID(_ context.Context, id int64) (*domain.Genre, error) {
	s := m.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	name, ok := s.genres[id]
	if !ok {
		return nil, fmt.Errorf("%w: genre %d", ErrNotFound, id)
	}
	return &domain.Genre{ID: id, Name: name}, nil
}
