package author

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Countries accepted for authors and publishers, stored uppercase
var Countries = []string{"SPAIN", "ITALY", "USA", "GERMANY", "JAPAN", "FRANCE"}

// Author is the public projection. The password hash never leaves the
// repository through this type.
type Author struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Country   string    `json:"country"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthorWithCredential is only produced for login and insert
type AuthorWithCredential struct {
	Author
	PasswordHash string `json:"-"`
}

// AuthorPatch carries the columns an update touches; nil means unchanged.
// PasswordHash is already hashed when set.
type AuthorPatch struct {
	Email        *string
	PasswordHash *string
	Name         *string
	Country      *string
	Image        *string
}

// IsEmpty reports whether the patch changes nothing
func (p AuthorPatch) IsEmpty() bool {
	return p.Email == nil && p.PasswordHash == nil && p.Name == nil && p.Country == nil && p.Image == nil
}

// NormalizeCountry trims and uppercases a country code
func NormalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// CountryRule values for validation.In
func CountryRule() []interface{} {
	values := make([]interface{}, len(Countries))
	for i, c := range Countries {
		values[i] = c
	}
	return values
}
