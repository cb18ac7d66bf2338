package pagination

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Params is a usable page window: Page >= 1, Limit >= 1
type Params struct {
	Page  int
	Limit int
}

// Offset is the number of records to skip in insertion order.
// It saturates at math.MaxInt so a page past any reachable window reads empty.
func (p Params) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

// Paginator derives Params from request query strings
type Paginator struct {
	defaultLimit int
	maxLimit     int // 0 = unbounded
}

// New creates a Paginator. maxLimit <= 0 leaves limit unbounded.
func New(defaultLimit, maxLimit int) *Paginator {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}
	if maxLimit < 0 {
		maxLimit = 0
	}
	return &Paginator{defaultLimit: defaultLimit, maxLimit: maxLimit}
}

// Parse reads raw page and limit values.
// Absent, non-numeric or non-positive values fall back to the defaults.
func (p *Paginator) Parse(rawPage, rawLimit string) Params {
	params := Params{
		Page:  parsePositive(rawPage, DefaultPage),
		Limit: parsePositive(rawLimit, p.defaultLimit),
	}
	if p.maxLimit > 0 && params.Limit > p.maxLimit {
		params.Limit = p.maxLimit
	}
	return params
}

// FromQuery reads ?page= and ?limit= from the request
func (p *Paginator) FromQuery(c *gin.Context) Params {
	return p.Parse(c.Query("page"), c.Query("limit"))
}

func parsePositive(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// Page is the list response envelope.
// TotalItems comes from a separate count query, so it is not a snapshot
// consistent with Data under concurrent writes.
type Page[T any] struct {
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int64 `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
	Data        []T   `json:"data"`
}

// NewPage builds the envelope, computing totalPages = ceil(total/limit)
func NewPage[T any](params Params, total int64, data []T) Page[T] {
	if data == nil {
		data = []T{}
	}
	return Page[T]{
		TotalItems:  total,
		TotalPages:  TotalPages(total, params.Limit),
		CurrentPage: params.Page,
		Data:        data,
	}
}

// TotalPages returns ceil(total/limit)
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	l := int64(limit)
	pages := total / l
	if total%l != 0 {
		pages++
	}
	return pages
}
