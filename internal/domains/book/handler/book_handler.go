package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"book-catalog-api/internal/domains/book"
	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/internal/shared/pagination"
	"book-catalog-api/internal/shared/response"
)

type BookHandler struct {
	service   book.Service
	paginator *pagination.Paginator
}

func NewBookHandler(svc book.Service, paginator *pagination.Paginator) *BookHandler {
	return &BookHandler{
		service:   svc,
		paginator: paginator,
	}
}

// List - GET /book?page=1&limit=10
func (h *BookHandler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), h.paginator.FromQuery(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// GetByID - GET /book/:id
func (h *BookHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c)
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// GetByTitle - GET /book/title/:title
func (h *BookHandler) GetByTitle(c *gin.Context) {
	books, err := h.service.GetByTitle(c.Request.Context(), c.Param("title"))
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			response.NotFoundList(c)
			return
		}
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create - POST /book
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// Update - PUT /book/:id
func (h *BookHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c)
		return
	}

	var req book.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		_ = c.Error(apperror.InvalidBody(err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete - DELETE /book/:id
func (h *BookHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c)
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, book.ErrBookNotFound) {
		response.NotFound(c)
		return
	}
	_ = c.Error(err)
}
