package book

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"

	"book-catalog-api/internal/domains/author"
)

const (
	titleTooShortMessage = "Al menos 3 letras para el título."
	titleTooLongMessage  = "Máximo 20 letras para el título."
	countryMessage       = "País no permitido"
)

// PublisherRequest is the embedded publisher object on create and update
type PublisherRequest struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

func (p *PublisherRequest) normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Country = author.NormalizeCountry(p.Country)
}

func (p PublisherRequest) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name,
			validation.Required,
			validation.RuneLength(3, 0).Error(titleTooShortMessage),
			validation.RuneLength(0, 20).Error(titleTooLongMessage),
		),
		validation.Field(&p.Country, validation.Required, validation.In(author.CountryRule()...).Error(countryMessage)),
	)
}

func (p *PublisherRequest) toPublisher() *Publisher {
	if p == nil {
		return nil
	}
	return &Publisher{Name: p.Name, Country: p.Country}
}

// CreateBookRequest - POST /book
type CreateBookRequest struct {
	Title     string            `json:"title"`
	Author    *string           `json:"author,omitempty"`
	Pages     *int              `json:"pages,omitempty"`
	Publisher *PublisherRequest `json:"publisher,omitempty"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Author != nil {
		*r.Author = strings.TrimSpace(*r.Author)
	}
	if r.Publisher != nil {
		r.Publisher.normalize()
	}
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required,
			validation.RuneLength(3, 0).Error(titleTooShortMessage),
			validation.RuneLength(0, 20).Error(titleTooLongMessage),
		),
		validation.Field(&r.Author, is.UUID.ErrorObject(errInvalidAuthor)),
		validation.Field(&r.Pages, validation.By(pagesInRange)),
		validation.Field(&r.Publisher),
	)
}

// Record builds the row to insert. Call after Validate.
func (r CreateBookRequest) Record() Record {
	return Record{
		ID:        uuid.New(),
		Title:     r.Title,
		AuthorID:  parseAuthorID(r.Author),
		Pages:     r.Pages,
		Publisher: r.Publisher.toPublisher(),
	}
}

// UpdateBookRequest - PUT /book/:id
// Merge-patch: only fields present in the body are applied.
type UpdateBookRequest struct {
	Title     *string           `json:"title,omitempty"`
	Author    *string           `json:"author,omitempty"`
	Pages     *int              `json:"pages,omitempty"`
	Publisher *PublisherRequest `json:"publisher,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
	}
	if r.Author != nil {
		*r.Author = strings.TrimSpace(*r.Author)
	}
	if r.Publisher != nil {
		r.Publisher.normalize()
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.NilOrNotEmpty,
			validation.RuneLength(3, 0).Error(titleTooShortMessage),
			validation.RuneLength(0, 20).Error(titleTooLongMessage),
		),
		validation.Field(&r.Author, validation.NilOrNotEmpty, is.UUID.ErrorObject(errInvalidAuthor)),
		validation.Field(&r.Pages, validation.By(pagesInRange)),
		validation.Field(&r.Publisher),
	)
}

// Patch builds the update. Call after Validate.
func (r UpdateBookRequest) Patch() BookPatch {
	return BookPatch{
		Title:     r.Title,
		AuthorID:  parseAuthorID(r.Author),
		Pages:     r.Pages,
		Publisher: r.Publisher.toPublisher(),
	}
}

// pagesInRange checks 1..1000. Threshold rules treat 0 as empty, so they
// cannot be used here.
func pagesInRange(value interface{}) error {
	pages, _ := value.(*int)
	if pages == nil {
		return nil
	}
	switch {
	case *pages < MinPages:
		return errTooFewPages
	case *pages > MaxPages:
		return errTooManyPages
	}
	return nil
}

func parseAuthorID(raw *string) *uuid.UUID {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil
	}
	return &id
}
