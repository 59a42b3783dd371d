package domain

import "time"

// User — пользователь сервиса. Friends содержит только подтверждённые
// дружбы (см. FriendStatus): id пользователей, с которыми связь взаимна.
type User struct {
	ID       int64     `json:"id"`
	Email    string    `json:"email"`
	Login    string    `json:"login"`
	Name     string    `json:"name"`
	Birthday time.Time `json:"birthday"`
	Friends  []int64   `json:"friends"`
}

// FriendStatus is one directed friendship edge. An edge exists as soon as the
// owner sends a request; Confirmed flips to true on both edges once the
// target reciprocates. A lone unconfirmed edge is a pending request.
type FriendStatus struct {
	UserID    int64 `json:"user_id"`
	FriendID  int64 `json:"friend_id"`
	Confirmed bool  `json:"confirmed"`
}
