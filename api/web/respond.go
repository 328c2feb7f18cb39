package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Message is the body shape used by endpoints that answer with a
// human-readable outcome rather than a resource.
type Message struct {
	Message string `json:"message"`
}

func Respond(ctx context.Context, w http.ResponseWriter, data interface{}, statusCode int) error {
	if statusCode == http.StatusNoContent {
		w.WriteHeader(statusCode)
		return nil
	}

	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("cannot marshal response data: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("cannot write response data: %w", err)
	}

	return nil
}
