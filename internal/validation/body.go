package validation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
	"github.com/saulo-duarte/quizard-lambda/internal/config"
	"github.com/saulo-duarte/quizard-lambda/internal/schema"
)

const maxBodyBytes = 1 << 20

type validatedBody struct {
	raw    []byte
	fields map[string]interface{}
}

func modeFor(method string) schema.Mode {
	switch method {
	case http.MethodPut:
		return schema.Replace
	case http.MethodPatch:
		return schema.Update
	default:
		return schema.Create
	}
}

// Body validates the JSON body against the named write schema. The mode is
// derived from the method: POST creates, PUT replaces, PATCH updates.
func Body(schemaName string) func(http.Handler) http.Handler {
	return body(schemaName, nil)
}

func BodyMode(schemaName string, mode schema.Mode) func(http.Handler) http.Handler {
	return body(schemaName, &mode)
}

func body(schemaName string, fixed *schema.Mode) func(http.Handler) http.Handler {
	s := schema.MustLookup(schemaName)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := config.WithContext(r.Context())

			raw, doc, err := readObject(w, r)
			if err != nil {
				log.WithError(err).Warn("Invalid request body")
				config.WriteError(w, r, err)
				return
			}

			mode := modeFor(r.Method)
			if fixed != nil {
				mode = *fixed
			}

			fields, err := s.Validate(doc, mode)
			if err != nil {
				log.WithError(err).Warn("Request body failed validation")
				config.WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), bodyKey, validatedBody{raw: raw, fields: fields})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func readObject(w http.ResponseWriter, r *http.Request) ([]byte, map[string]interface{}, error) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, nil, fmt.Errorf("read body: %w", apperror.ErrInvalid)
	}

	doc := map[string]interface{}{}
	if len(bytes.TrimSpace(raw)) == 0 {
		return []byte("{}"), doc, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return nil, nil, apperror.Invalid("body", "must be a JSON object")
	}
	if dec.More() {
		return nil, nil, apperror.Invalid("body", "must contain a single JSON object")
	}
	return raw, doc, nil
}

// DecodeBody unmarshals the validated body into dst.
func DecodeBody(r *http.Request, dst interface{}) error {
	b, ok := r.Context().Value(bodyKey).(validatedBody)
	if !ok {
		return errors.New("request body was not validated")
	}
	if err := json.Unmarshal(b.raw, dst); err != nil {
		return apperror.Invalid("body", err.Error())
	}
	return nil
}

// BodyFields returns the validated, coerced body keyed by field name.
func BodyFields(r *http.Request) map[string]interface{} {
	if b, ok := r.Context().Value(bodyKey).(validatedBody); ok {
		return b.fields
	}
	return nil
}
