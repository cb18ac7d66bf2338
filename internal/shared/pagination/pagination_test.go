package pagination

import (
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		maxLimit int
		page     string
		limit    string
		want     Params
	}{
		{name: "defaults when absent", want: Params{Page: 1, Limit: 10}},
		{name: "explicit values", page: "3", limit: "25", want: Params{Page: 3, Limit: 25}},
		{name: "non numeric", page: "abc", limit: "x1", want: Params{Page: 1, Limit: 10}},
		{name: "zero and negative", page: "0", limit: "-5", want: Params{Page: 1, Limit: 10}},
		{name: "no upper bound by default", limit: "100000", want: Params{Page: 1, Limit: 100000}},
		{name: "capped when max configured", maxLimit: 50, limit: "500", want: Params{Page: 1, Limit: 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New(DefaultLimit, tt.maxLimit)
			assert.Equal(t, tt.want, p.Parse(tt.page, tt.limit))
		})
	}
}

func TestFromQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/author?page=2&limit=5", nil)

	params := New(DefaultLimit, 0).FromQuery(c)
	assert.Equal(t, Params{Page: 2, Limit: 5}, params)
	assert.Equal(t, 5, params.Offset())
}

func TestOffset(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   int
	}{
		{name: "first page", params: Params{Page: 1, Limit: 10}, want: 0},
		{name: "third page", params: Params{Page: 3, Limit: 10}, want: 20},
		{name: "huge limit on first page", params: Params{Page: 1, Limit: math.MaxInt}, want: 0},
		{name: "product wraps to zero", params: Params{Page: 4611686018427387905, Limit: 4}, want: math.MaxInt},
		{name: "product wraps negative", params: Params{Page: 3, Limit: math.MaxInt}, want: math.MaxInt},
		{name: "largest exact product", params: Params{Page: 2, Limit: math.MaxInt}, want: math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset := tt.params.Offset()
			assert.Equal(t, tt.want, offset)
			assert.GreaterOrEqual(t, offset, 0)
		})
	}
}

func TestOffset_ParsedFromQuery(t *testing.T) {
	params := New(DefaultLimit, 0).Parse("4611686018427387905", "4")
	assert.Equal(t, math.MaxInt, params.Offset())
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		total int64
		limit int
		want  int64
	}{
		{total: 0, limit: 10, want: 0},
		{total: 1, limit: 10, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 25, limit: 3, want: 9},
		{total: 2, limit: math.MaxInt64, want: 1},
		{total: math.MaxInt64, limit: math.MaxInt64, want: 1},
		{total: math.MaxInt64, limit: 2, want: math.MaxInt64/2 + 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit), "total=%d limit=%d", tt.total, tt.limit)
	}
}

func TestNewPage_UnboundedLimit(t *testing.T) {
	params := New(DefaultLimit, 0).Parse("1", strconv.Itoa(math.MaxInt64))
	page := NewPage(params, 2, []string{"a", "b"})

	assert.Equal(t, math.MaxInt64, params.Limit)
	assert.Equal(t, int64(1), page.TotalPages)
	assert.Equal(t, 0, params.Offset())
}

func TestNewPage(t *testing.T) {
	page := NewPage[string](Params{Page: 2, Limit: 2}, 3, nil)

	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, int64(2), page.TotalPages)
	assert.Equal(t, 2, page.CurrentPage)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
}
