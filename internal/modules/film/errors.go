package film

import "errors"

// ErrValidation — нарушение бизнес-правила при записи; запись полностью
// блокируется. Ошибки отсутствия данных приходят из хранилища как
// repository.ErrNotFound.
var ErrValidation = errors.New("validation_error")
