package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialnet/internal/app"
	"socialnet/internal/transport/http/response"
)

type UserHandler struct {
	authService *app.AuthService
	userService *app.UserService
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	LastName string `json:"last_name" binding:"required,max=64"`
	Email    string `json:"email" binding:"required,email,max=128"`
	Password string `json:"password" binding:"required,max=128"`
	Nick     string `json:"nick" binding:"required,max=64"`
	Bio      string `json:"bio" binding:"max=512"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest accepts only the fields a user may change. Anything else
// in the body, such as role or image, is dropped by decoding.
type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"max=64"`
	LastName string  `json:"last_name" binding:"max=64"`
	Nick     string  `json:"nick" binding:"max=64"`
	Email    string  `json:"email" binding:"omitempty,email,max=128"`
	Bio      *string `json:"bio"`
	Password string  `json:"password" binding:"max=128"`
}

func NewUserHandler(authService *app.AuthService, userService *app.UserService) *UserHandler {
	return &UserHandler{
		authService: authService,
		userService: userService,
	}
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "missing or invalid fields")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), app.RegisterInput{
		Name:     req.Name,
		LastName: req.LastName,
		Email:    req.Email,
		Password: req.Password,
		Nick:     req.Nick,
		Bio:      req.Bio,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserExists):
			fail(c, http.StatusConflict, response.CodeUserExists, err, err.Error())
		default:
			failService(c, err, "register failed")
		}
		return
	}

	response.Created(c, gin.H{
		"id":        user.ID,
		"name":      user.Name,
		"last_name": user.LastName,
		"nick":      user.Nick,
	})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "missing email or password")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), app.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrUserNotFound):
			fail(c, http.StatusNotFound, response.CodeUserNotFound, err, err.Error())
		case errors.Is(err, app.ErrInvalidCredential):
			fail(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err, err.Error())
		default:
			failService(c, err, "login failed")
		}
		return
	}

	u := result.User
	response.OK(c, gin.H{
		"token": result.Token,
		"user": gin.H{
			"id":         u.ID,
			"name":       u.Name,
			"last_name":  u.LastName,
			"bio":        u.Bio,
			"email":      u.Email,
			"nick":       u.Nick,
			"role":       u.Role,
			"image":      u.Image,
			"created_at": u.CreatedAt,
		},
	})
}

func (h *UserHandler) Profile(c *gin.Context) {
	viewerID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	targetID, ok := parseIDParam(c, "id", 0)
	if !ok || targetID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), viewerID, targetID)
	if err != nil {
		failService(c, err, "get profile failed")
		return
	}
	response.OK(c, profile)
}

func (h *UserHandler) List(c *gin.Context) {
	viewerID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	page, limit := pageParams(c)

	list, err := h.userService.ListUsers(c.Request.Context(), viewerID, page, limit)
	if err != nil {
		failService(c, err, "list users failed")
		return
	}
	response.OK(c, list)
}

func (h *UserHandler) Update(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "invalid request payload")
		return
	}

	user, err := h.userService.UpdateSelf(c.Request.Context(), actorID, app.UpdateUserInput{
		Name:     req.Name,
		LastName: req.LastName,
		Nick:     req.Nick,
		Email:    req.Email,
		Bio:      req.Bio,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, app.ErrConflict):
			fail(c, http.StatusBadRequest, response.CodeUserExists, err, err.Error())
		default:
			failService(c, err, "update user failed")
		}
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	fileHeader, err := c.FormFile("file0")
	if err != nil {
		fail(c, http.StatusNotFound, response.CodeNotFound, err, "request does not include an image (form field 'file0')")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "failed to open uploaded file")
		return
	}
	defer f.Close()

	result, err := h.userService.UploadAvatar(c.Request.Context(), actorID, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			fail(c, http.StatusBadRequest, response.CodeInvalidFile, err, err.Error())
		default:
			failService(c, err, "upload avatar failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *UserHandler) Avatar(c *gin.Context) {
	path, err := h.userService.AvatarPath(c.Param("file"))
	if err != nil {
		failService(c, err, "show avatar failed")
		return
	}
	c.File(path)
}

func (h *UserHandler) Counters(c *gin.Context) {
	viewerID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	targetID, ok := parseIDParam(c, "id", viewerID)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	counters, err := h.userService.Counters(c.Request.Context(), targetID)
	if err != nil {
		failService(c, err, "counters failed")
		return
	}
	response.OK(c, counters)
}
