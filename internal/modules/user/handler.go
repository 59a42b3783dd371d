package user

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
	users := r.Group("/users")
	{
		users.GET("", h.List)
		users.GET("/:id", h.GetByID)
		users.POST("", h.Create)
		users.PUT("", h.Update)
		users.PUT("/:id/friends/:friendId", h.AddFriend)
		users.DELETE("/:id/friends/:friendId", h.DeleteFriend)
		users.GET("/:id/friends", h.Friends)
		users.GET("/:id/friends/common/:otherId", h.MutualFriends)
	}
}

func (h *Handler) List(c *gin.Context) {
	users, err := h.service.FindAll(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponseList(users))
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	u, err := h.service.Find(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u))
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "request body is not a valid user")
		return
	}
	u, err := h.service.Add(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toUserResponse(u))
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "request body is not a valid user")
		return
	}
	u, err := h.service.Update(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u))
}

func (h *Handler) AddFriend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	u, err := h.service.AddFriend(c.Request.Context(), id, friendID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u))
}

func (h *Handler) DeleteFriend(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	friendID, ok := pathID(c, "friendId")
	if !ok {
		return
	}
	u, err := h.service.DeleteFriend(c.Request.Context(), id, friendID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponse(u))
}

func (h *Handler) Friends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	friends, err := h.service.FindFriends(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponseList(friends))
}

func (h *Handler) MutualFriends(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	otherID, ok := pathID(c, "otherId")
	if !ok {
		return
	}
	mutuals, err := h.service.FindMutuals(c.Request.Context(), id, otherID)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toUserResponseList(mutuals))
}

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
