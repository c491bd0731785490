package handler // handler defines the HTTP handlers for the API

import (
	"errors"
	"strconv"

	"github.com/labstack/echo/v4"
)

// getUserID extracts the user_id injected by the JWT middleware and
// converts it to uint64. JWT numeric claims decode as float64, so
// several representations are accepted.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getEmail extracts the email claim injected by the JWT middleware.
func getEmail(c echo.Context) (string, error) {
	if v, ok := c.Get("email").(string); ok && v != "" {
		return v, nil
	}
	return "", errors.New("invalid email in context")
}
