package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

const (
	emailMessage        = "Email incorrecto"
	passwordMessage     = "La contraseña debe tener al menos 8 caracteres"
	nameTooShortMessage = "Al menos 3 letras para el nombre."
	nameTooLongMessage  = "Máximo 20 letras para el nombre."
	countryMessage      = "País no permitido"
)

// CreateAuthorRequest - POST /author
type CreateAuthorRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Country  string `json:"country"`
	Image    string `json:"image"`
}

// Normalize applies the trims and casing the store expects
func (r *CreateAuthorRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Password = strings.TrimSpace(r.Password)
	r.Name = strings.TrimSpace(r.Name)
	r.Country = NormalizeCountry(r.Country)
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.EmailFormat.Error(emailMessage)),
		validation.Field(&r.Password, validation.Required, validation.RuneLength(8, 0).Error(passwordMessage)),
		validation.Field(&r.Name,
			validation.Required,
			validation.RuneLength(3, 0).Error(nameTooShortMessage),
			validation.RuneLength(0, 20).Error(nameTooLongMessage),
		),
		validation.Field(&r.Country, validation.Required, validation.In(CountryRule()...).Error(countryMessage)),
	)
}

// UpdateAuthorRequest - PUT /author/:id
// Merge-patch: only fields present in the body are applied.
type UpdateAuthorRequest struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	Name     *string `json:"name,omitempty"`
	Country  *string `json:"country,omitempty"`
	Image    *string `json:"image,omitempty"`
}

func (r *UpdateAuthorRequest) Normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(r.Email)
	trim(r.Password)
	trim(r.Name)
	if r.Country != nil {
		*r.Country = NormalizeCountry(*r.Country)
	}
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.NilOrNotEmpty, is.EmailFormat.Error(emailMessage)),
		validation.Field(&r.Password, validation.NilOrNotEmpty, validation.RuneLength(8, 0).Error(passwordMessage)),
		validation.Field(&r.Name,
			validation.NilOrNotEmpty,
			validation.RuneLength(3, 0).Error(nameTooShortMessage),
			validation.RuneLength(0, 20).Error(nameTooLongMessage),
		),
		validation.Field(&r.Country, validation.NilOrNotEmpty, validation.In(CountryRule()...).Error(countryMessage)),
	)
}

// LoginRequest - POST /author/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Normalize trims the email the same way create does before it is stored
func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// Complete reports whether both credentials were sent
func (r LoginRequest) Complete() bool {
	return r.Email != "" && r.Password != ""
}

// TokenResponse is the only body a successful login returns
type TokenResponse struct {
	Token string `json:"token"`
}
