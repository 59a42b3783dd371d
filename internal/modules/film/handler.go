package film

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"filmorate/internal/pkg/response"
	"filmorate/internal/repository"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	films := r.Group("/films")
	{
		films.GET("", h.List)
		films.GET("/popular", h.Popular)
		films.GET("/:id", h.GetByID)
		films.POST("", h.Create)
		films.PUT("", h.Update)
		films.PUT("/:id/like/:userId", h.Like)
		films.DELETE("/:id/like/:userId", h.Unlike)
	}
}

func (h *Handler) List(c *gin.Context) {
	films, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponseList(films))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	f, err := h.service.Find(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponse(f))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "request body is not a valid film")
		return
	}
	f, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toFilmResponse(f))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateFilmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "request body is not a valid film")
		return
	}
	f, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponse(f))
}

func (h *Handler) Like(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	f, err := h.service.Like(c.Request.Context(), filmID, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponse(f))
}

func (h *Handler) Unlike(c *gin.Context) {
	filmID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	f, err := h.service.Unlike(c.Request.Context(), filmID, userID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponse(f))
}

func (h *Handler) Popular(c *gin.Context) {
	count := defaultPopular
	if raw := c.Query("count"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "INVALID_COUNT", "count must be an integer")
			return
		}
		count = parsed
	}
	films, err := h.service.Popular(c.Request.Context(), count)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toFilmResponseList(films))
}

// pathID parses a positive numeric path parameter; on failure it writes the
// 400 itself and reports false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID",
			"path parameter "+name+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, repository.ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, repository.ErrConflict):
		response.Error(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}
