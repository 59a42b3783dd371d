package user

import "errors"

// ErrValidation — нарушение бизнес-правила при записи (плохой email, логин
// с пробелами, день рождения в будущем, заявка в друзья самому себе).
var ErrValidation = errors.New("validation_error")
