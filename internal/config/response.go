package config

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/saulo-duarte/quizard-lambda/internal/apperror"
)

type Identifiable interface {
	GetID() int64
}

type Links struct {
	Self string `json:"self"`
	Next string `json:"next,omitempty"`
}

type ErrorBody struct {
	Status  int               `json:"status"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func Data(w http.ResponseWriter, data interface{}) {
	JSON(w, http.StatusOK, map[string]interface{}{"data": data})
}

// Page writes a collection along with its pagination links. A next link is
// only emitted when the page is full.
func Page[T Identifiable](w http.ResponseWriter, r *http.Request, items []T, limit int) {
	if items == nil {
		items = []T{}
	}

	links := Links{Self: r.URL.RequestURI()}
	if limit > 0 && len(items) == limit {
		q := r.URL.Query()
		q.Set("last_id", strconv.FormatInt(items[len(items)-1].GetID(), 10))
		links.Next = r.URL.Path + "?" + q.Encode()
	}

	JSON(w, http.StatusOK, map[string]interface{}{
		"data":  items,
		"links": links,
	})
}

func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]ErrorBody{
		"error": {Status: status, Message: message},
	})
}

// WriteError maps service errors onto the error envelope. Unexpected errors are
// logged and hidden behind a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperror.Status(err)
	body := ErrorBody{Status: status, Message: err.Error()}

	var verr *apperror.ValidationError
	if errors.As(err, &verr) {
		body.Message = apperror.ErrInvalid.Error()
		body.Fields = verr.Fields
	}

	if status == http.StatusInternalServerError {
		WithContext(r.Context()).WithError(err).Error("Unhandled error")
		body.Message = "internal server error"
	}

	JSON(w, status, map[string]ErrorBody{"error": body})
}
