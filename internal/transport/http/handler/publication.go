package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"socialnet/internal/app"
	"socialnet/internal/transport/http/response"
)

type PublicationHandler struct {
	publicationService *app.PublicationService
}

type CreatePublicationRequest struct {
	Text string `json:"text" binding:"required,max=4096"`
}

func NewPublicationHandler(publicationService *app.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

func (h *PublicationHandler) Create(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}

	var req CreatePublicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "publication text is required")
		return
	}

	pub, err := h.publicationService.Create(c.Request.Context(), actorID, req.Text)
	if err != nil {
		failService(c, err, "create publication failed")
		return
	}
	response.Created(c, pub)
}

func (h *PublicationHandler) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id", 0)
	if !ok || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid publication id")
		return
	}

	pub, err := h.publicationService.Get(c.Request.Context(), id)
	if err != nil {
		failService(c, err, "show publication failed")
		return
	}
	response.OK(c, pub)
}

func (h *PublicationHandler) Delete(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseIDParam(c, "id", 0)
	if !ok || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid publication id")
		return
	}

	if err := h.publicationService.Delete(c.Request.Context(), actorID, id); err != nil {
		failService(c, err, "delete publication failed")
		return
	}
	response.OK(c, gin.H{"deleted_publication": id})
}

func (h *PublicationHandler) ListByUser(c *gin.Context) {
	if _, ok := getUserIDFromContext(c); !ok {
		unauthorized(c)
		return
	}
	userID, ok := parseIDParam(c, "id", 0)
	if !ok || userID == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid user id")
		return
	}
	page, limit := pageParams(c)

	list, err := h.publicationService.ListByUser(c.Request.Context(), userID, page, limit)
	if err != nil {
		failService(c, err, "list publications failed")
		return
	}
	response.OK(c, list)
}

func (h *PublicationHandler) UploadMedia(c *gin.Context) {
	actorID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	id, ok := parseIDParam(c, "id", 0)
	if !ok || id == 0 {
		response.Error(c, http.StatusBadRequest, response.CodeBadRequest, "invalid publication id")
		return
	}

	fileHeader, err := c.FormFile("file0")
	if err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "request does not include a file (form field 'file0')")
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		fail(c, http.StatusBadRequest, response.CodeBadRequest, err, "failed to open uploaded file")
		return
	}
	defer f.Close()

	result, err := h.publicationService.UploadMedia(c.Request.Context(), actorID, id, fileHeader.Filename, f)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrValidation):
			fail(c, http.StatusBadRequest, response.CodeInvalidFile, err, err.Error())
		default:
			failService(c, err, "upload media failed")
		}
		return
	}
	response.OK(c, result)
}

func (h *PublicationHandler) Media(c *gin.Context) {
	path, err := h.publicationService.MediaPath(c.Param("file"))
	if err != nil {
		failService(c, err, "show media failed")
		return
	}
	c.File(path)
}

func (h *PublicationHandler) Feed(c *gin.Context) {
	viewerID, ok := getUserIDFromContext(c)
	if !ok {
		unauthorized(c)
		return
	}
	page, limit := pageParams(c)

	feed, err := h.publicationService.Feed(c.Request.Context(), viewerID, page, limit)
	if err != nil {
		failService(c, err, "feed failed")
		return
	}
	response.OK(c, feed)
}
