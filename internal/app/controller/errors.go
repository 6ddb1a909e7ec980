package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jangheelee880707/wooahhan/internal/app/model"
	"github.com/jangheelee880707/wooahhan/internal/app/service"
	apperrors "github.com/jangheelee880707/wooahhan/internal/errors"
	"github.com/jangheelee880707/wooahhan/internal/middleware"
)

// respondWithServiceError maps service sentinels to responses. Anything it
// does not recognise is logged and parsed as an infrastructure error.
func respondWithServiceError(c *gin.Context, err error, context string) {
	log := middleware.GetLoggerFromContext(c)

	var fields model.FieldErrors
	switch {
	case errors.As(err, &fields):
		apperrors.RespondWithValidationError(c, fields)
	case errors.Is(err, service.ErrProductNotFound):
		apperrors.NotFound(c, apperrors.ProductNotFound, "상품을 찾을 수 없습니다")
	case errors.Is(err, model.ErrUnknownCategory):
		apperrors.BadRequest(c, apperrors.ProductInvalidCategory, "존재하지 않는 카테고리입니다")
	case errors.Is(err, model.ErrUnknownViewEvent):
		apperrors.BadRequest(c, apperrors.ViewUnknownEvent, "알 수 없는 화면 이벤트입니다")
	case errors.Is(err, service.ErrEmptyCart):
		apperrors.Conflict(c, apperrors.CartEmpty, "장바구니가 비어 있습니다")
	case errors.Is(err, service.ErrCheckoutNotOpen):
		apperrors.Conflict(c, apperrors.CheckoutNotOpen, "진행 중인 주문서가 없습니다")
	case errors.Is(err, model.ErrInvalidStep):
		apperrors.Conflict(c, apperrors.CheckoutInvalidStep, "현재 주문 단계에서는 처리할 수 없습니다")
	case errors.Is(err, model.ErrInvalidPaymentMethod):
		apperrors.BadRequest(c, apperrors.CheckoutInvalidPayment, "지원하지 않는 결제 수단입니다")
	case errors.Is(err, service.ErrCheckoutInProgress), errors.Is(err, service.ErrRequestInFlight):
		apperrors.RequestInFlightError(c)
	case errors.Is(err, service.ErrEmptyMessage):
		apperrors.BadRequest(c, apperrors.ValidationEmptyMessage, "메시지를 입력해주세요")
	case errors.Is(err, service.ErrAIDisabled):
		apperrors.ServiceUnavailable(c, apperrors.AIDisabled, "AI 기능이 현재 비활성화되어 있습니다")
	case errors.Is(err, service.ErrNoImageInResponse):
		apperrors.BadGateway(c, apperrors.AIGenerationFailed, "이미지를 생성하지 못했습니다. 잠시 후 다시 시도해주세요")
	default:
		log.Error("Request failed", err, map[string]interface{}{
			"context": context,
		})
		apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, context)
	}
}

// bindJSON binds the body and answers 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid request body", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "요청 형식이 올바르지 않습니다")
		return false
	}
	return true
}
