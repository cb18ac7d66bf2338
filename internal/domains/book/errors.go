package book

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	ErrBookNotFound  = errors.New("book not found")
	ErrUnknownAuthor = errors.New("referenced author does not exist")
)

var (
	errInvalidAuthor = validation.NewError("validation_book_author_invalid", "Autor no válido")
	errMissingAuthor = validation.NewError("validation_book_author_missing", "Autor no encontrado")
	errTooFewPages   = validation.NewError("validation_book_pages_min", "Un libro tiene que tener mínimo una página.")
	errTooManyPages  = validation.NewError("validation_book_pages_max", "No están permitidos libros de más de 1000 pag.")
)

// UnknownAuthorError is the validation failure reported for ErrUnknownAuthor
func UnknownAuthorError() validation.Errors {
	return validation.Errors{"author": errMissingAuthor}
}
