package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"crewline/internal/common"
)

func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("invalid JSON body", nil)
	}
	return nil
}

// idFromPath extracts the path segment at index as a UUID;
// "/applications/{id}/transportation" resolves the id at index 2.
func idFromPath(r *http.Request, index int) (common.UUID, error) {
	segments := strings.Split(r.URL.Path, "/")
	if index >= len(segments) || segments[index] == "" {
		return "", common.NewValidationError("missing id in path", nil)
	}
	id, err := common.ParseUUID(segments[index])
	if err != nil {
		return "", common.NewValidationError("invalid id in path", nil)
	}
	return id, nil
}

func errUnauthorized() error {
	return common.NewError(common.CodeUnauthorized, "authentication required", nil)
}
