// Package transport decodes request bodies and encodes responses for the
// HTTP handlers. JSON is the default wire format; MessagePack is used when the
// client asks for it through Content-Type or Accept.
package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/aristath/indicator-service/internal/domain"
)

const (
	ContentTypeJSON    = "application/json"
	ContentTypeMsgpack = "application/msgpack"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// BodyTooLargeError reports a request body over the configured limit.
type BodyTooLargeError struct {
	Limit int64
}

func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("request body exceeds %d bytes", e.Limit)
}

// IsMsgpack reports whether a Content-Type or Accept value names MessagePack.
func IsMsgpack(header string) bool {
	for _, part := range strings.Split(header, ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		if mediaType == ContentTypeMsgpack || mediaType == "application/x-msgpack" {
			return true
		}
	}
	return false
}

// Decode reads at most maxBytes of the request body into v (0 = no limit).
// MessagePack bodies reuse the json struct tags.
func Decode(w http.ResponseWriter, r *http.Request, v any, maxBytes int64) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	defer body.Close()

	var err error
	if IsMsgpack(r.Header.Get("Content-Type")) {
		dec := msgpack.NewDecoder(body)
		dec.SetCustomStructTag("json")
		err = dec.Decode(v)
	} else {
		err = json.NewDecoder(body).Decode(v)
	}

	if err == nil {
		return nil
	}

	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return &BodyTooLargeError{Limit: tooLarge.Limit}
	}
	if domain.IsClientError(err) {
		return err
	}
	if errors.Is(err, io.EOF) {
		return &domain.MalformedRequestError{Reason: "empty body"}
	}
	return &domain.MalformedRequestError{Reason: "invalid body: " + err.Error()}
}

// Write encodes v with the given status, honouring an Accept header that asks for MessagePack.
func Write(w http.ResponseWriter, r *http.Request, status int, v any, log zerolog.Logger) {
	if r != nil && IsMsgpack(r.Header.Get("Accept")) {
		w.Header().Set("Content-Type", ContentTypeMsgpack)
		w.WriteHeader(status)
		enc := msgpack.NewEncoder(w)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(v); err != nil {
			log.Error().Err(err).Msg("Failed to encode msgpack response")
		}
		return
	}

	w.Header().Set("Content-Type", ContentTypeJSON)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	var tooLarge *BodyTooLargeError
	switch {
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case domain.IsClientError(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// WriteError writes {"detail": ...} for err. Internal errors are logged and
// their message is not exposed.
func WriteError(w http.ResponseWriter, r *http.Request, err error, log zerolog.Logger) {
	status := StatusFor(err)

	detail := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
		detail = "internal error"
	} else {
		log.Debug().Err(err).Int("status", status).Msg("Request rejected")
	}

	Write(w, r, status, ErrorResponse{Detail: detail}, log)
}
