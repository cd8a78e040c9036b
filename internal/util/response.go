package util

import (
	"errors"
	"net/http"

	"skilltree_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func BadGateway(c *gin.Context, message string) {
	Error(c, http.StatusBadGateway, message)
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleServiceError 按错误类别映射HTTP状态码
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case err == nil:
		return
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrSessionExpired):
		Unauthorized(c)
	case errors.Is(err, ErrSkillNotFound), errors.Is(err, ErrLessonNotFound),
		errors.Is(err, ErrProgressNotFound), errors.Is(err, ErrUserNotFound):
		NotFound(c, err.Error())
	case errors.Is(err, ErrAlreadyStarted), errors.Is(err, ErrInvalidInput):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrEmailRegistered):
		Error(c, http.StatusConflict, err.Error())
	case IsDependencyError(err):
		logger.Log.Error("Dependency failure", zap.Error(err))
		BadGateway(c, "upstream dependency failed")
	default:
		LogInternalError(c, err)
	}
}
