// Package shared holds small helpers used across the API feature
// packages.
package shared

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/teamhub/internal/app/system/jsonapi"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ObjectIDParam parses a chi URL parameter as an ObjectID. On a
// malformed value it writes the validation envelope and returns false.
func ObjectIDParam(w http.ResponseWriter, r *http.Request, name string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, name))
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return primitive.NilObjectID, false
	}
	return id, true
}

// IntParam parses a chi URL parameter as an integer.
func IntParam(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil {
		jsonapi.Error(w, jsonapi.ErrValidation)
		return 0, false
	}
	return n, true
}
