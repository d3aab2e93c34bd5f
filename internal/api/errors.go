package api

import (
	"errors"
	"net/http"

	"github.com/Reason-jin/yj-portfolio-site/internal/api/middleware"
	"github.com/Reason-jin/yj-portfolio-site/internal/llm"
	"github.com/Reason-jin/yj-portfolio-site/internal/models"
	"github.com/Reason-jin/yj-portfolio-site/internal/orchestrator"
	"github.com/emicklei/go-restful/v3"
)

var errMalformedBody = errors.New("request body must be a JSON chat request")

type errorSpec struct {
	status   int
	code     string
	messages map[models.Language]string
}

var (
	validationError = errorSpec{
		status: http.StatusBadRequest,
		code:   middleware.CodeValidation,
		messages: map[models.Language]string{
			models.LanguageKorean:  "요청 형식이 올바르지 않습니다. 메시지를 입력해 주세요.",
			models.LanguageEnglish: "The request is invalid. Please enter a message.",
		},
	}
	authError = errorSpec{
		status: http.StatusUnauthorized,
		code:   middleware.CodeAPIKeyInvalid,
		messages: map[models.Language]string{
			models.LanguageKorean:  "AI 서비스 인증에 실패했습니다. 관리자에게 문의해 주세요.",
			models.LanguageEnglish: "Authentication with the AI service failed. Please contact the site owner.",
		},
	}
	rateLimitError = errorSpec{
		status: http.StatusTooManyRequests,
		code:   middleware.CodeRateLimitExceeded,
		messages: map[models.Language]string{
			models.LanguageKorean:  "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
			models.LanguageEnglish: "Too many requests. Please try again in a moment.",
		},
	}
	unavailableError = errorSpec{
		status: http.StatusServiceUnavailable,
		code:   middleware.CodeServiceUnavailable,
		messages: map[models.Language]string{
			models.LanguageKorean:  "AI 서비스를 일시적으로 사용할 수 없습니다. 잠시 후 다시 시도해 주세요.",
			models.LanguageEnglish: "The AI service is temporarily unavailable. Please try again shortly.",
		},
	}
	networkError = errorSpec{
		status: http.StatusServiceUnavailable,
		code:   middleware.CodeNetwork,
		messages: map[models.Language]string{
			models.LanguageKorean:  "네트워크 연결에 문제가 있습니다. 다시 시도해 주세요.",
			models.LanguageEnglish: "A network problem occurred. Please try again.",
		},
	}
	internalError = errorSpec{
		status: http.StatusInternalServerError,
		code:   middleware.CodeInternal,
		messages: map[models.Language]string{
			models.LanguageKorean:  "일시적인 오류가 발생했습니다.",
			models.LanguageEnglish: "An unexpected error occurred.",
		},
	}
)

func classify(err error) errorSpec {
	if errors.Is(err, errMalformedBody) || orchestrator.IsValidation(err) {
		return validationError
	}

	switch llm.KindOf(err) {
	case llm.KindAuthInvalid:
		return authError
	case llm.KindRateLimited:
		return rateLimitError
	case llm.KindServiceUnavailable:
		return unavailableError
	case llm.KindNetwork:
		return networkError
	default:
		return internalError
	}
}

func (h *Handler) writeError(resp *restful.Response, err error, lang models.Language) {
	spec := classify(err)

	if lang != models.LanguageEnglish {
		lang = models.LanguageKorean
	}

	body := middleware.ErrorResponse{
		Error:   spec.code,
		Message: spec.messages[lang],
	}
	if spec.status == http.StatusInternalServerError && h.development {
		body.Details = err.Error()
	}

	if spec.status >= http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("code", spec.code).Msg("Chat request failed")
	} else {
		h.logger.Warn().Err(err).Str("code", spec.code).Msg("Chat request rejected")
	}

	middleware.WriteError(resp, spec.status, body)
}
