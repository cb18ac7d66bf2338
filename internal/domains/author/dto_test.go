package author

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreate() CreateAuthorRequest {
	return CreateAuthorRequest{
		Email:    "a@b.com",
		Password: "12345678",
		Name:     "Ann",
		Country:  "SPAIN",
	}
}

func TestCreateAuthorRequest_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *CreateAuthorRequest)
		wantField string
		wantMsg   string
	}{
		{name: "valid", mutate: func(r *CreateAuthorRequest) {}},
		{name: "bad email", mutate: func(r *CreateAuthorRequest) { r.Email = "not-an-email" }, wantField: "email", wantMsg: emailMessage},
		{name: "missing email", mutate: func(r *CreateAuthorRequest) { r.Email = "" }, wantField: "email"},
		{name: "short password", mutate: func(r *CreateAuthorRequest) { r.Password = "1234567" }, wantField: "password", wantMsg: passwordMessage},
		{name: "short name", mutate: func(r *CreateAuthorRequest) { r.Name = "An" }, wantField: "name", wantMsg: nameTooShortMessage},
		{name: "long name", mutate: func(r *CreateAuthorRequest) { r.Name = "Annabelle Catherine Smith" }, wantField: "name", wantMsg: nameTooLongMessage},
		{name: "twenty letters is fine", mutate: func(r *CreateAuthorRequest) { r.Name = "abcdefghijklmnopqrst" }},
		{name: "unknown country", mutate: func(r *CreateAuthorRequest) { r.Country = "PERU" }, wantField: "country", wantMsg: countryMessage},
		{name: "missing country", mutate: func(r *CreateAuthorRequest) { r.Country = "" }, wantField: "country"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreate()
			tt.mutate(&req)

			err := req.Validate()
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

func TestCreateAuthorRequest_Normalize(t *testing.T) {
	req := CreateAuthorRequest{
		Email:    "  a@b.com ",
		Password: " 12345678 ",
		Name:     " Ann ",
		Country:  " spain ",
	}
	req.Normalize()

	assert.Equal(t, "a@b.com", req.Email)
	assert.Equal(t, "12345678", req.Password)
	assert.Equal(t, "Ann", req.Name)
	assert.Equal(t, "SPAIN", req.Country)
	assert.NoError(t, req.Validate())
}

func TestUpdateAuthorRequest_Validate(t *testing.T) {
	str := func(s string) *string { return &s }

	tests := []struct {
		name      string
		req       UpdateAuthorRequest
		wantField string
	}{
		{name: "empty patch", req: UpdateAuthorRequest{}},
		{name: "image only", req: UpdateAuthorRequest{Image: str("public/x.png")}},
		{name: "clear image", req: UpdateAuthorRequest{Image: str("")}},
		{name: "valid country", req: UpdateAuthorRequest{Country: str("ITALY")}},
		{name: "blank name", req: UpdateAuthorRequest{Name: str("")}, wantField: "name"},
		{name: "short password", req: UpdateAuthorRequest{Password: str("short")}, wantField: "password"},
		{name: "bad email", req: UpdateAuthorRequest{Email: str("nope")}, wantField: "email"},
		{name: "bad country", req: UpdateAuthorRequest{Country: str("MARS")}, wantField: "country"},
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
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestLoginRequest_Complete(t *testing.T) {
	assert.True(t, LoginRequest{Email: "a@b.com", Password: "x"}.Complete())
	assert.False(t, LoginRequest{Email: "a@b.com"}.Complete())
	assert.False(t, LoginRequest{Password: "x"}.Complete())
	assert.False(t, LoginRequest{}.Complete())
}

func TestLoginRequest_Normalize(t *testing.T) {
	req := LoginRequest{Email: "  a@b.com\t", Password: " secret "}
	req.Normalize()

	assert.Equal(t, "a@b.com", req.Email)
	assert.Equal(t, " secret ", req.Password)
}

func TestAuthorPatch_IsEmpty(t *testing.T) {
	name := "Ann"
	assert.True(t, AuthorPatch{}.IsEmpty())
	assert.False(t, AuthorPatch{Name: &name}.IsEmpty())
}
