package apperrors

import (
	"github.com/pkg/errors"
)

// Типовые ошибки бизнес-логики, по ним контроллер выбирает код ответа
var (
	ErrValidation = errors.New("ошибка валидации")
	ErrNotFound   = errors.New("запись не найдена")
	ErrConflict   = errors.New("конфликт состояния")
	ErrForbidden  = errors.New("операция недоступна")
)

type kindError struct {
	kind error
	msg  string
}

func (e kindError) Error() string {
	return e.msg
}

func (e kindError) Is(target error) bool {
	return target == e.kind
}

func Validation(msg string) error {
	return kindError{kind: ErrValidation, msg: msg}
}

func Validationf(format string, args ...interface{}) error {
	return kindError{kind: ErrValidation, msg: errors.Errorf(format, args...).Error()}
}

func NotFound(msg string) error {
	return kindError{kind: ErrNotFound, msg: msg}
}

func Conflict(msg string) error {
	return kindError{kind: ErrConflict, msg: msg}
}

func Conflictf(format string, args ...interface{}) error {
	return kindError{kind: ErrConflict, msg: errors.Errorf(format, args...).Error()}
}

func Forbidden() error {
	return kindError{kind: ErrForbidden, msg: ErrForbidden.Error()}
}

// IsBusiness ошибка, текст которой можно показать пользователю
func IsBusiness(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrConflict) ||
		errors.Is(err, ErrForbidden)
}
