package middleware

// identity.go provides a helper shared by the rate limiter and cache
// middleware to attribute a request to a user. When no identity was
// injected by JWTAuth, "guest" is returned.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// requestUserID stringifies the user_id context value set by JWTAuth.
// JWT numeric claims decode as float64, so both forms are handled.
func requestUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "guest"
}
