package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/rest/request"
	"github.com/Guyuepp/picshare/internal/rest/response"
)

// PictureHandler  represent the httphandler for picture
type PictureHandler struct {
	Service domain.PictureUsecase
}

func NewPictureHandler(svc domain.PictureUsecase) *PictureHandler {
	return &PictureHandler{
		Service: svc,
	}
}

// GetByID will get picture by given id, with the vote state of the caller when logged in
func (h *PictureHandler) GetByID(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	pic, err := h.Service.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	viewer, _ := currentAccount(c)
	c.JSON(http.StatusOK, response.NewPictureFromDomain(&pic, viewer))
}

// Fetch will fetch the newest pictures based on given params
func (h *PictureHandler) Fetch(c *gin.Context) {
	num := queryNum(c, "num")
	cursor := c.Query("cursor")

	list, nextCursor, err := h.Service.Fetch(c.Request.Context(), cursor, num)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header(`X-Cursor`, nextCursor)
	c.JSON(http.StatusOK, response.NewPictureSummaries(list))
}

func (h *PictureHandler) FetchPopular(c *gin.Context) {
	num := queryNum(c, "num")
	offset, err := strconv.ParseInt(c.DefaultQuery("offset", "0"), 10, 64)
	if err != nil || offset < 0 {
		offset = 0
	}

	list, err := h.Service.FetchPopular(c.Request.Context(), offset, num)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPictureSummaries(list))
}

func (h *PictureHandler) FetchPersonalized(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	num := queryNum(c, "num")

	list, err := h.Service.FetchPersonalized(c.Request.Context(), accountID, num)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPictureSummaries(list))
}

// Store will store the picture by given request body
func (h *PictureHandler) Store(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}

	var req request.Picture
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	pic := req.ToDomain(accountID)
	if err := h.Service.Store(c.Request.Context(), &pic, req.Tags); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewPictureFromDomain(&pic, accountID))
}

func (h *PictureHandler) UpdateTags(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	var req request.Tags
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	pic, err := h.Service.UpdateTags(c.Request.Context(), id, accountID, req.Tags)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPictureFromDomain(&pic, accountID))
}

// Delete will delete the picture by given param
func (h *PictureHandler) Delete(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), id, accountID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// VoteUp toggles a like of the caller
func (h *PictureHandler) VoteUp(c *gin.Context) {
	h.vote(c, h.Service.Like)
}

// VoteDown toggles a dislike of the caller
func (h *PictureHandler) VoteDown(c *gin.Context) {
	h.vote(c, h.Service.DisLike)
}

type voteFunc func(ctx context.Context, pictureID, accountID int64) (domain.Picture, error)

func (h *PictureHandler) vote(c *gin.Context, fn voteFunc) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	pic, err := fn(c.Request.Context(), id, accountID)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewPictureFromDomain(&pic, accountID))
}

func (h *PictureHandler) GetLikes(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	likes, err := h.Service.GetLikes(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.NewLikesFromDomain(likes))
}
