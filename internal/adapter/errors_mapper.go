package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/claudia-app/claudia-vault/models"
	"github.com/go-resty/resty/v2"
)

var statusErrors = map[int]error{
	http.StatusBadRequest:          ErrBadRequest,
	http.StatusUnauthorized:        ErrUnauthorized,
	http.StatusNotFound:            ErrNotFound,
	http.StatusConflict:            ErrConflict,
	http.StatusLocked:              ErrLocked,
	http.StatusUnprocessableEntity: ErrUnprocessable,
	http.StatusTooManyRequests:     ErrTooManyRequests,
	http.StatusInternalServerError: ErrInternalServerError,
	http.StatusServiceUnavailable:  ErrUnavailable,
}

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	msg := errorMessage(resp)

	if target, ok := statusErrors[resp.StatusCode()]; ok {
		if strings.EqualFold(msg, target.Error()) {
			return target
		}
		return fmt.Errorf("%w: %s", target, msg)
	}
	return fmt.Errorf("http %d: %s", resp.StatusCode(), msg)
}

// errorMessage extracts the daemon's JSON error text, falling back to the
// raw body and then to the status text.
func errorMessage(resp *resty.Response) string {
	body := resp.Body()

	var er models.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Error != "" {
		return er.Error
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(resp.StatusCode())
}
