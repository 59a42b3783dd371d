package reference

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
	mpa := r.Group("/mpa")
	{
		mpa.GET("", h.ListRatings)
		mpa.GET("/:id", h.GetRating)
	}
	genres := r.Group("/genres")
	{
		genres.GET("", h.ListGenres)
		genres.GET("/:id", h.GetGenre)
	}
}

func (h *Handler) ListRatings(c *gin.Context) {
	ratings, err := h.service.Ratings(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ratings)
}

func (h *Handler) GetRating(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rating, err := h.service.Rating(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, rating)
}

func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := h.service.Genres(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, genres)
}

func (h *Handler) GetGenre(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	genre, err := h.service.Genre(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, genre)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID",
			"path parameter id must be a positive integer")
		return 0, false
	}
	return id, true
}

func handleError(c *gin.Context, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", err.Error())
		return
	}
	response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}
