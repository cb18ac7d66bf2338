package handler

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"book-catalog-api/internal/domains/author"
	"book-catalog-api/internal/shared/apperror"
	"book-catalog-api/internal/shared/pagination"
	"book-catalog-api/internal/shared/response"
)

type AuthorHandler struct {
	service        author.Service
	paginator      *pagination.Paginator
	maxUploadBytes int64
}

// NewAuthorHandler creates the handler. maxUploadBytes <= 0 disables the
// upload size limit.
func NewAuthorHandler(svc author.Service, paginator *pagination.Paginator, maxUploadBytes int64) *AuthorHandler {
	return &AuthorHandler{
		service:        svc,
		paginator:      paginator,
		maxUploadBytes: maxUploadBytes,
	}
}

// List - GET /author?page=1&limit=10
func (h *AuthorHandler) List(c *gin.Context) {
	params := h.paginator.FromQuery(c)

	page, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetByID - GET /author/:id
func (h *AuthorHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c)
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, a)
}

// Create - POST /author
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
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

// Update - PUT /author/:id
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req author.UpdateAuthorRequest
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

// Delete - DELETE /author/:id
func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
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

// Login - POST /author/login
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	// an undecodable body is treated like one without credentials
	_ = c.ShouldBindJSON(&req)

	token, err := h.service.Login(c.Request.Context(), req)
	switch {
	case errors.Is(err, author.ErrMissingCredentials):
		response.Error(c, http.StatusBadRequest, author.MissingCredentialsMessage)
		return
	case errors.Is(err, author.ErrInvalidCredentials):
		response.Error(c, http.StatusUnauthorized, author.InvalidCredentialsMessage)
		return
	case err != nil:
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, author.TokenResponse{Token: token})
}

// UploadImage - POST /author/image-upload (multipart: image, brandId)
func (h *AuthorHandler) UploadImage(c *gin.Context) {
	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	var (
		fileName string
		data     []byte
	)
	fileHeader, err := c.FormFile("image")
	switch {
	case err == nil:
		fileName = fileHeader.Filename
		data, err = readFormFile(fileHeader)
		if err != nil {
			_ = c.Error(err)
			return
		}
	case errors.Is(err, http.ErrMissingFile):
		// the service rejects the empty upload
	default:
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = c.Error(apperror.InvalidBody(err))
			return
		}
		_ = c.Error(err)
		return
	}

	authorID := c.PostForm("brandId")
	if authorID == "" {
		authorID = c.PostForm("authorId")
	}

	updated, err := h.service.UploadImage(c.Request.Context(), authorID, fileName, data)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			response.NotFoundText(c, author.ImageTargetNotFoundMessage)
			return
		}
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	if errors.Is(err, author.ErrAuthorNotFound) {
		response.NotFound(c)
		return
	}
	_ = c.Error(err)
}

// parseID reads :id; a malformed id can never match a record
func parseID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func readFormFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}
