package rest

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/picshare/domain"
	"github.com/Guyuepp/picshare/internal/rest/middleware"
)

// ResponseError represent the response error struct
type ResponseError struct {
	Message string `json:"message"`
}

const (
	DefaultPageNum = 10
	PageMinNum     = 5
	PageMaxNum     = 30
)

// getStatusCode maps the domain errors to http status codes
func getStatusCode(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrBadParamInput):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		logrus.Error(err)
		return http.StatusInternalServerError
	}
}

// abortWithError 5xx 不向客户端暴露内部错误
func abortWithError(c *gin.Context, err error) {
	code := getStatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = domain.ErrInternalServerError.Error()
	}
	c.JSON(code, ResponseError{Message: msg})
}

func paramID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return 0, false
	}
	return id, true
}

// currentAccount 读取认证中间件写入的账号ID
func currentAccount(c *gin.Context) (int64, bool) {
	v, exists := c.Get(middleware.ContextAccountID)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func mustAccount(c *gin.Context) (int64, bool) {
	id, ok := currentAccount(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
	}
	return id, ok
}

func queryNum(c *gin.Context, key string) int64 {
	num, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil || num < PageMinNum || num > PageMaxNum {
		return DefaultPageNum
	}
	return num
}
