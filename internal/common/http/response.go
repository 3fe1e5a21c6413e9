package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	commonerrors "github.com/AlibekovAA/carsle-auth/internal/common/errors"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Success: false, Error: message})
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, MessageResponse{Success: true, Message: message})
}

// DecodeJSONBody returns the decoded body as a generic JSON value so field presence, nulls and
// types can be inspected. A request without a body yields (nil, nil).
func DecodeJSONBody(r *http.Request) (any, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()

	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, commonerrors.ErrRequestTooLarge
		}
		return nil, commonerrors.ErrInvalidJSON.WithCause(err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if !isJSONContentType(r.Header.Get("Content-Type")) {
		return nil, commonerrors.ErrUnsupportedContentType
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var body any
	if err := dec.Decode(&body); err != nil {
		return nil, commonerrors.ErrInvalidJSON.WithCause(err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, commonerrors.ErrInvalidJSON
	}

	return body, nil
}

// DecodeJSON decodes into a typed target after the same content-type and shape checks.
func DecodeJSON(r *http.Request, v any) error {
	body, err := DecodeJSONBody(r)
	if err != nil {
		return err
	}
	if body == nil {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return commonerrors.ErrInvalidJSON.WithCause(err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return commonerrors.ErrInvalidFieldType.WithMessage(fmt.Sprintf("Invalid type for field %s", typeErr.Field)).WithCause(err)
		}
		return commonerrors.ErrInvalidFieldType.WithCause(err)
	}
	return nil
}

func isJSONContentType(value string) bool {
	if value == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(value)
	if err != nil {
		return false
	}
	return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
}

func WithTimeout(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
