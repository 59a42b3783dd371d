package user

import "filmorate/internal/domain"

const dateLayout = "2006-01-02"

type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Login    string `json:"login" validate:"required"`
	Name     string `json:"name"`
	Birthday string `json:"birthday" validate:"required"`
}

// UpdateUserRequest: nil указатель значит «поле не передано, оставить как
// есть». Слияние выполняет сервис поверх текущей записи.
type UpdateUserRequest struct {
	ID       int64   `json:"id" validate:"required"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Login    *string `json:"login" validate:"omitempty,min=1"`
	Name     *string `json:"name"`
	Birthday *string `json:"birthday"`
}

type UserResponse struct {
	ID       int64   `json:"id"`
	Email    string  `json:"email"`
	Login    string  `json:"login"`
	Name     string  `json:"name"`
	Birthday string  `json:"birthday"`
	Friends  []int64 `json:"friends"`
}

func toUserResponse(u *domain.User) UserResponse {
	friends := u.Friends
	if friends == nil {
		friends = []int64{}
	}
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		Login:    u.Login,
		Name:     u.Name,
		Birthday: u.Birthday.Format(dateLayout),
		Friends:  friends,
	}
}

func toUserResponseList(users []domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}
