package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/rest/request"
	"github.com/Guyuepp/picshare/internal/rest/response"
)

type commentHandler struct {
	Service domain.CommentUsecase
}

func NewCommentHandler(svc domain.CommentUsecase) *commentHandler {
	return &commentHandler{
		Service: svc,
	}
}

func (h *commentHandler) CreateComment(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	pictureID, ok := paramID(c)
	if !ok {
		return
	}

	var req request.Comment
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	comment := req.ToDomain(pictureID, accountID)
	if err := h.Service.Create(c.Request.Context(), &comment); err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response.NewComment(&comment))
}

func (h *commentHandler) DeleteComment(c *gin.Context) {
	accountID, ok := mustAccount(c)
	if !ok {
		return
	}
	commentID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Service.Delete(c.Request.Context(), commentID, accountID); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *commentHandler) FetchCommentsByPicture(c *gin.Context) {
	pictureID, ok := paramID(c)
	if !ok {
		return
	}
	num := queryNum(c, "num")
	cursor := c.Query("cursor")

	comments, nextCursor, err := h.Service.FetchByPicture(c.Request.Context(), pictureID, cursor, num)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("X-Cursor", nextCursor)
	c.JSON(http.StatusOK, response.NewCommentThreads(comments))
}
