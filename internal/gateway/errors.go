package gateway

import (
	"fmt"
	"strings"
)

type ErrorClass string

const (
	// ErrorClassConfig covers missing or unusable credentials.
	ErrorClassConfig ErrorClass = "config"
	// ErrorClassNetwork covers transport-level failures (timeouts, DNS,
	// connection resets). The charge may still have succeeded server-side;
	// callers must reconcile via polling, never assume failed.
	ErrorClassNetwork ErrorClass = "network"
	// ErrorClassProvider covers responses where the gateway answered but
	// declined the request.
	ErrorClassProvider ErrorClass = "provider"
)

// Error is the typed failure returned by every gateway call so callers can
// branch on declined vs infrastructure failure without string matching.
type Error struct {
	Class       ErrorClass
	Code        string
	Message     string
	UserMessage string
	HTTPStatus  int
}

func (e *Error) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("gateway %s error [%s]: %s", e.Class, e.Code, e.Message)
	}
	return fmt.Sprintf("gateway %s error: %s", e.Class, e.Message)
}

const (
	msgGenericRetry  = "Não foi possível processar o pagamento. Tente novamente em instantes."
	msgTryOtherRail  = "Pagamento recusado. Tente outro cartão ou pagamento via Pix."
	msgCheckPayer    = "Verifique os dados do pagador (nome, documento e e-mail)."
	msgNetwork       = "Falha de comunicação com o provedor de pagamento. Verifique o status antes de tentar de novo."
)

func newConfigError(message string) *Error {
	return &Error{
		Class:       ErrorClassConfig,
		Message:     message,
		UserMessage: msgGenericRetry,
	}
}

func newNetworkError(err error) *Error {
	return &Error{
		Class:       ErrorClassNetwork,
		Message:     err.Error(),
		UserMessage: msgNetwork,
	}
}

// newProviderError maps known provider error codes to actionable user-safe
// messages; anything unmatched falls back to the provider's raw message.
func newProviderError(httpStatus int, code, message string) *Error {
	userMsg := providerUserMessage(code, message)

	return &Error{
		Class:       ErrorClassProvider,
		Code:        code,
		Message:     message,
		UserMessage: userMsg,
		HTTPStatus:  httpStatus,
	}
}

func providerUserMessage(code, message string) string {
	probe := strings.ToLower(code + " " + message)

	switch {
	case strings.Contains(probe, "invalid_token"),
		strings.Contains(probe, "invalid credentials"),
		strings.Contains(probe, "unauthorized"):
		return msgGenericRetry
	case strings.Contains(probe, "high_risk"),
		strings.Contains(probe, "high risk"):
		return msgTryOtherRail
	case strings.Contains(probe, "invalid_payer"),
		strings.Contains(probe, "payer"):
		return msgCheckPayer
	case strings.Contains(probe, "unsupported"),
		strings.Contains(probe, "invalid_properties"):
		return msgGenericRetry
	default:
		if message != "" {
			return message
		}
		return msgGenericRetry
	}
}
