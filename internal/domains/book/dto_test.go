package book

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func strPtr(s string) *string { return &s }

func TestCreateBookRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		req       CreateBookRequest
		wantField string
		wantMsg   string
	}{
		{name: "title only", req: CreateBookRequest{Title: "Dune"}},
		{
			name: "everything",
			req: CreateBookRequest{
				Title:     "Dune",
				Author:    strPtr(uuid.NewString()),
				Pages:     intPtr(412),
				Publisher: &PublisherRequest{Name: "Chilton", Country: "USA"},
			},
		},
		{name: "missing title", req: CreateBookRequest{}, wantField: "title"},
		{name: "short title", req: CreateBookRequest{Title: "It"}, wantField: "title", wantMsg: titleTooShortMessage},
		{name: "long title", req: CreateBookRequest{Title: "A Very Long Title Indeed"}, wantField: "title", wantMsg: titleTooLongMessage},
		{name: "zero pages", req: CreateBookRequest{Title: "Dune", Pages: intPtr(0)}, wantField: "pages", wantMsg: errTooFewPages.Error()},
		{name: "negative pages", req: CreateBookRequest{Title: "Dune", Pages: intPtr(-3)}, wantField: "pages", wantMsg: errTooFewPages.Error()},
		{name: "too many pages", req: CreateBookRequest{Title: "Dune", Pages: intPtr(1001)}, wantField: "pages", wantMsg: errTooManyPages.Error()},
		{name: "boundary pages", req: CreateBookRequest{Title: "Dune", Pages: intPtr(1000)}},
		{name: "author not a uuid", req: CreateBookRequest{Title: "Dune", Author: strPtr("abc")}, wantField: "author", wantMsg: errInvalidAuthor.Error()},
		{
			name:      "publisher country",
			req:       CreateBookRequest{Title: "Dune", Publisher: &PublisherRequest{Name: "Chilton", Country: "MARS"}},
			wantField: "publisher",
		},
		{
			name:      "publisher name",
			req:       CreateBookRequest{Title: "Dune", Publisher: &PublisherRequest{Name: "Ch", Country: "USA"}},
			wantField: "publisher",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs validation.Errors
			require.ErrorAs(t, err, &errs)
			require.Contains(t, errs, tt.wantField)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, errs[tt.wantField].Error())
			}
		})
	}
}

func TestCreateBookRequest_NormalizeAndRecord(t *testing.T) {
	authorID := uuid.New()
	req := CreateBookRequest{
		Title:     "  Dune ",
		Author:    strPtr(" " + authorID.String() + " "),
		Publisher: &PublisherRequest{Name: " Chilton ", Country: "usa"},
	}
	req.Normalize()
	require.NoError(t, req.Validate())

	rec := req.Record()
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, "Dune", rec.Title)
	require.NotNil(t, rec.AuthorID)
	assert.Equal(t, authorID, *rec.AuthorID)
	assert.Equal(t, &Publisher{Name: "Chilton", Country: "USA"}, rec.Publisher)
	assert.Nil(t, rec.Pages)
}

func TestUpdateBookRequest(t *testing.T) {
	assert.NoError(t, UpdateBookRequest{}.Validate())
	assert.True(t, UpdateBookRequest{}.Patch().IsEmpty())

	assert.Error(t, UpdateBookRequest{Title: strPtr("")}.Validate())
	assert.Error(t, UpdateBookRequest{Pages: intPtr(0)}.Validate())
	assert.Error(t, UpdateBookRequest{Author: strPtr("nope")}.Validate())

	patch := UpdateBookRequest{Pages: intPtr(10)}.Patch()
	assert.False(t, patch.IsEmpty())
	assert.Equal(t, 10, *patch.Pages)
	assert.Nil(t, patch.Title)
}
