package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/rest/request"
	"github.com/Guyuepp/picshare/internal/rest/response"
)

type AccountHandler struct {
	Service domain.AccountUsecase
}

func NewAccountHandler(svc domain.AccountUsecase) *AccountHandler {
	return &AccountHandler{
		Service: svc,
	}
}

func (h *AccountHandler) Register(c *gin.Context) {
	var req request.Register
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	a, err := h.Service.Register(c.Request.Context(), req.Nickname, req.Username, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.NewAccountFromDomain(&a))
}

func (h *AccountHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}

	signed, err := h.Service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": signed})
}
