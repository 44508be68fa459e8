package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// pathID returns the :id path parameter after a fast-fail check that it is
// a positive integer, before any backend call is made.
func pathID(c echo.Context) (string, error) {
	id := c.Param("id")
	if n, err := strconv.ParseUint(id, 10, 64); err != nil || n == 0 {
		return "", echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
