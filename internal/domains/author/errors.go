package author

import "errors"

var (
	ErrAuthorNotFound     = errors.New("author not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrMissingCredentials = errors.New("email and password are required")
	ErrImageRequired      = errors.New("image file is required")
)

// Client facing messages
const (
	MissingCredentialsMessage  = "Se deben especificar los campos email y password"
	InvalidCredentialsMessage  = "Email y/o contraseña incorrectos"
	ImageTargetNotFoundMessage = "Marca no encontrada"
)
