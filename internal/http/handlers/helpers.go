package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/ousmanseid/job-site-sub000/internal/common"
	"github.com/ousmanseid/job-site-sub000/internal/domain/user"
	"github.com/ousmanseid/job-site-sub000/internal/http/middleware"
)

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "missing principal", nil)
}

func principal(r *http.Request) (user.Principal, error) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		return user.Principal{}, errUnauthorized()
	}
	return p, nil
}

func decodeJSON(r *http.Request, dst any) error {
	defer io.Copy(io.Discard, r.Body)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return common.NewError(common.CodeValidation, "invalid request body", err)
	}
	return nil
}

// idFromPath returns the path segment at index as a UUID; segments are
// counted from 1, so /applications/{id}/status resolves id at index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if index < 1 || index > len(segments) {
		return "", common.NewError(common.CodeValidation, "invalid path", nil)
	}
	parsed, err := common.ParseUUID(segments[index-1])
	if err != nil {
		return "", common.NewError(common.CodeValidation, "invalid id in path", err)
	}
	return parsed, nil
}

func atoiDefault(value string, fallback int) int {
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func decodeJSONOptional(r *http.Request, dst any) error {
	err := decodeJSON(r, dst)
	if err != nil && errors.Is(errors.Unwrap(err), io.EOF) {
		return nil
	}
	return err
}
