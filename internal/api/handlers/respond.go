package handlers

import (
	"batch-maker/internal/pkg/common"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RespondError 依 CustomError 的狀態碼回應；message 為空時使用錯誤本身的訊息，debug 時附上原始錯誤
func RespondError(c *gin.Context, err error, message string, debug bool) {
	ce := common.AsCustomError(err)
	resp := ErrorBody(err, message, debug)

	if ce.Status >= 500 {
		common.LogError("Request failed",
			zap.String("code", ce.Code),
			zap.String("request_id", requestid.Get(c)),
			zap.Error(err),
		)
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(ce.Status, resp)
}

// ErrorBody 將錯誤轉成回應內容，用於批次結果中的單筆錯誤
func ErrorBody(err error, message string, debug bool) *common.ErrorResponse {
	ce := common.AsCustomError(err)
	if message == "" {
		message = ce.Message
	}
	resp := &common.ErrorResponse{Code: ce.Code, Message: message}
	if debug {
		resp.Details = err.Error()
	}
	return resp
}
