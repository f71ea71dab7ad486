package gateway

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Error is the typed failure surfaced at the decode boundary. The backend
// reports validation problems through a message (sometimes detail) field;
// anything unreadable falls back to a generic string so views always have
// something to show.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("gateway: %s (status %d)", e.Message, e.Status)
}

// IsNotFound reports whether err is a gateway 404.
func IsNotFound(err error) bool {
	var ge *Error
	return errors.As(err, &ge) && ge.Status == http.StatusNotFound
}

func errorFromResponse(resp *http.Response) *Error {
	ge := &Error{Status: resp.StatusCode, Message: fmt.Sprintf("request failed (%d)", resp.StatusCode)}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil || len(body) == 0 {
		return ge
	}
	var payload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}
	if json.Unmarshal(body, &payload) == nil {
		switch {
		case payload.Message != "":
			ge.Message = payload.Message
		case payload.Detail != "":
			ge.Message = payload.Detail
		}
	}
	return ge
}
