package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 错误码
const (
	CodeValidation = "VALIDATION_ERROR" // 缺少必填字段
	CodeStorage    = "STORAGE_ERROR"    // 附件写入失败
	CodeDatabase   = "DATABASE_ERROR"   // 数据库读写失败
)

// ApiError 自定义API错误
type ApiError struct {
	StatusCode int
	Message    string
	ErrorCode  string
}

// Error 实现error接口
func (e *ApiError) Error() string {
	return e.Message
}

// NewApiError 创建API错误
func NewApiError(message string, statusCode int, errorCode string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		ErrorCode:  errorCode,
	}
}

// CreateValidationError 创建缺少必填字段错误
func CreateValidationError(message string) *ApiError {
	return NewApiError(message, http.StatusBadRequest, CodeValidation)
}

// CreateStorageError 创建附件存储错误
func CreateStorageError(message string) *ApiError {
	return NewApiError(message, http.StatusInternalServerError, CodeStorage)
}

// CreateDatabaseError 创建数据库错误
// 底层错误信息原样透出（沿用旧服务的行为）
func CreateDatabaseError(err error) *ApiError {
	return NewApiError(err.Error(), http.StatusInternalServerError, CodeDatabase)
}

// HandleError 处理错误并返回适当的响应
func HandleError(c *gin.Context, err error) {
	if c == nil {
		return
	}
	// 记录错误
	errorMessage := err.Error()
	Logger.Error().Str("path", c.Request.URL.Path).Str("method", c.Request.Method).Msg("API错误: " + errorMessage)

	// 处理API错误
	if apiErr, ok := err.(*ApiError); ok {
		c.JSON(apiErr.StatusCode, gin.H{"error": apiErr.Message})
		return
	}

	// 其他未预期的错误
	c.JSON(http.StatusInternalServerError, gin.H{"error": errorMessage})
}

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, data interface{}, message string, statusCode ...int) {
	code := http.StatusOK
	if len(statusCode) > 0 {
		code = statusCode[0]
	}

	response := gin.H{"success": true}
	if data != nil {
		response["data"] = data
	}
	if message != "" {
		response["message"] = message
	}

	c.JSON(code, response)
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, message string, statusCode int) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
	})
}
