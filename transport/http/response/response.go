package response

import (
	"encoding/json"
	"net/http"

	"tablebook/shared/constant"
	"tablebook/shared/failure"
	"tablebook/shared/logger"
)

type Data[T any] struct {
	Data *T `json:"data,omitempty"`
}

// Error is the envelope for every failed request: the HTTP status code
// repeated in the body alongside a human readable message.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

type Message struct {
	Message *string `json:"message,omitempty"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: &message})
}

// WithJSON sends a response containing a JSON object
func WithJSON(writer http.ResponseWriter, code int, jsonPayload interface{}) {
	response(writer, code, Data[any]{Data: &jsonPayload})
}

// WithError sends a response with an error envelope
func WithError(writer http.ResponseWriter, err error) {
	code := failure.GetCode(err)

	response(writer, code, Error{Status: code, Message: err.Error()})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithError(writer, &failure.Failure{Code: http.StatusTooManyRequests, Message: constant.ResponseErrorRequestLimitExceeded})
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

// WithUnhealthy sends a default response for when the server is unhealthy
func WithUnhealthy(writer http.ResponseWriter) {
	WithMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorUnhealthy)
}

func response(writer http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)
	_, err = writer.Write(response)

	if err != nil {
		logger.ErrorWithStack(err)
	}
}
