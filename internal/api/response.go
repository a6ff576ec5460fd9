// Package api serves the discography over a JSON HTTP API.
package api

import (
	"github.com/gin-gonic/gin"
)

// Error codes.
const (
	CodeInvalidParam  = "INVALID_PARAM"
	CodeNotFound      = "NOT_FOUND"
	CodeUnavailable   = "DATA_UNAVAILABLE"
	CodeInternalError = "INTERNAL_ERROR"
)

// SuccessBody is the envelope of every successful response.
type SuccessBody struct {
	Data  interface{} `json:"data"`
	Count int         `json:"count"`
}

// ErrorBody is the envelope of every failed response.
type ErrorBody struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// SuccessResponse writes data with a 200 status.
func SuccessResponse(ctx *gin.Context, data interface{}, count int) {
	ctx.JSON(200, SuccessBody{Data: data, Count: count})
}

// ErrorResponse writes an error envelope and aborts the handler chain.
func ErrorResponse(ctx *gin.Context, status int, code, message string) {
	ctx.AbortWithStatusJSON(status, ErrorBody{Error: ErrorDetail{Code: code, Message: message}})
}
