package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialnet/internal/app"
	"socialnet/internal/transport/http/response"
)

type FollowHandler struct {
	followService *app.FollowService
}

type FollowRequest struct {
	FollowedUser uint `json:"followed_user" binding:"required,gt=0"`
}

func NewFollowHandler(followService *app.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req FollowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "followed_user is required")
		return
	}

	result, err := h.followService.Follow(c.Request.Context(), actorID, req.FollowedUser)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrSelfFollow):
			fail(c, http.StatusBadRequest, response.CodeSelfFollow, err, err.Error())
		case errors.Is(err, app.ErrFollowExists):
			fail(c, http.StatusBadRequest, response.CodeAlreadyFollowing, err, err.Error())
		case errors.Is(err, app.ErrFollowTargetMissing):
			fail(c, http.StatusBadRequest, response.CodeUserNotFound, err, err.Error())
		default:
			failService(c, err, "follow user failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	targetID, ok := parseIDParam(c, "id", 0)
	if !ok || targetID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}

	if err := h.followService.Unfollow(c.Request.Context(), actorID, targetID); err != nil {
		switch {
		case errors.Is(err, app.ErrFollowNotFound):
			fail(c, http.StatusNotFound, response.CodeFollowNotFound, err, err.Error())
		default:
			failService(c, err, "unfollow user failed")
		}
		return
	}
	response.OK(c, gin.H{"unfollowed_user": targetID})
}

func (h *FollowHandler) Following(c *gin.Context) {
	h.list(c, h.followService.ListFollowing, "list following failed")
}

func (h *FollowHandler) Followers(c *gin.Context) {
	h.list(c, h.followService.ListFollowers, "list followers failed")
}

type listFollows func(ctx context.Context, viewerID, subjectID uint, page, limit int) (*app.FollowList, error)

func (h *FollowHandler) list(c *gin.Context, fetch listFollows, internalMessage string) {
	viewerID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	subjectID, ok := parseIDParam(c, "id", viewerID)
	if !ok {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}
	page, limit := pageParams(c)

	list, err := fetch(c.Request.Context(), viewerID, subjectID, page, limit)
	if err != nil {
		failService(c, err, internalMessage)
		return
	}
	response.OK(c, list)
}
