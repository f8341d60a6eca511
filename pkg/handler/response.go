package handler

import (
	"net/http"

	"burst_buy/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

type Error struct {
	Message string `json:"message"`
}

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	logrus.WithField("path", c.Request.URL.Path).Error(message)
	c.AbortWithStatusJSON(statusCode, Error{Message: message})
}

// serviceError переводит ошибки сервиса в HTTP-статус
func serviceError(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrViewNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrNoSuggestionStream):
		status = http.StatusConflict
	case errors.Is(err, service.ErrEventDropped):
		status = http.StatusServiceUnavailable
	}
	newErrorResponse(c, status, err.Error())
}

func wrapOkJSON(c *gin.Context, response map[string]interface{}) {
	c.JSON(http.StatusOK, response)
}
