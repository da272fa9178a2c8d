package apperrors

import (
	"errors"
	"net/http"
)

var (
	ErrValidation = errors.New("некорректные данные запроса")
	ErrAuth       = errors.New("неверный логин или пароль")
	ErrConflict   = errors.New("такой логин или email уже занят")
	ErrNotFound   = errors.New("ресурс не найден")
	ErrForbidden  = errors.New("доступ запрещен")
	ErrStorage    = errors.New("ошибка хранилища")
)

// HTTPStatus maps domain errors to HTTP status codes.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrStorage):
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}
