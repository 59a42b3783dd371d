package user

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"filmorate/internal/domain"
	"filmorate/internal/pkg/validator"
	"filmorate/internal/repository"
)

type Service struct {
	users repository.UserStorage
}

func NewService(users repository.UserStorage) *Service {
	return &Service{users: users}
}

// validateUser blocks the write on any business-rule violation.
func validateUser(u *domain.User) error {
	if strings.TrimSpace(u.Email) == "" || !strings.Contains(u.Email, "@") {
		return fmt.Errorf("%w: email must not be blank and must contain @", ErrValidation)
	}
	if strings.TrimSpace(u.Login) == "" {
		return fmt.Errorf("%w: login must not be blank", ErrValidation)
	}
	if strings.ContainsFunc(u.Login, unicode.IsSpace) {
		return fmt.Errorf("%w: login must not contain whitespace", ErrValidation)
	}
	if u.Birthday.After(time.Now()) {
		return fmt.Errorf("%w: birthday must not be in the future", ErrValidation)
	}
	return nil
}

func parseBirthday(value string) (time.Time, error) {
	birthday, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: birthday must look like %s", ErrValidation, dateLayout)
	}
	return birthday, nil
}

func (s *Service) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

func (s *Service) Find(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

func (s *Service) Add(ctx context.Context, req CreateUserRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(fields))
	}

	birthday, err := parseBirthday(req.Birthday)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		Email:    req.Email,
		Login:    req.Login,
		Name:     req.Name,
		Birthday: birthday,
	}
	// отображаемое имя по умолчанию — логин
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
	if err := validateUser(u); err != nil {
		return nil, err
	}
	return s.users.Create(ctx, u)
}

// Update merges provided fields over the stored record; omitted fields keep
// their previous values.
func (s *Service) Update(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	if fields := validator.Validate(req); fields != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, validator.Describe(fields))
	}

	current, err := s.users.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	merged := *current
	if req.Email != nil {
		merged.Email = *req.Email
	}
	if req.Login != nil {
		merged.Login = *req.Login
	}
	if req.Name != nil {
		merged.Name = *req.Name
	}
	if req.Birthday != nil {
		birthday, err := parseBirthday(*req.Birthday)
		if err != nil {
			return nil, err
		}
		merged.Birthday = birthday
	}
	if strings.TrimSpace(merged.Name) == "" {
		merged.Name = merged.Login
	}

	if err := validateUser(&merged); err != nil {
		return nil, err
	}
	return s.users.Update(ctx, &merged)
}

// AddFriend sends (or reciprocates) a friend request. Befriending yourself
// is rejected before the store is touched.
func (s *Service) AddFriend(ctx context.Context, id, friendID int64) (*domain.User, error) {
	if id == friendID {
		return nil, fmt.Errorf("%w: user %d cannot befriend themselves", ErrValidation, id)
	}
	return s.users.AddFriend(ctx, id, friendID)
}

func (s *Service) DeleteFriend(ctx context.Context, id, friendID int64) (*domain.User, error) {
	return s.users.DeleteFriend(ctx, id, friendID)
}

func (s *Service) FindFriends(ctx context.Context, id int64) ([]domain.User, error) {
	return s.users.FindFriends(ctx, id)
}

func (s *Service) FindMutuals(ctx context.Context, id, otherID int64) ([]domain.User, error) {
	return s.users.FindMutuals(ctx, id, otherID)
}
