package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/chalet-reservation/internal/booking"
)

// timeNow is a seam for tests that need a fixed clock.
var timeNow = time.Now

// getUserID extracts the user_id from echo.Context and converts it
// to uint64.  JWTAuth stores claims without asserting their type,
// so every plausible representation is handled here.
func getUserID(c echo.Context) (uint64, error) {
	v := c.Get("user_id")
	switch t := v.(type) {
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

// bookingError translates the engine's error taxonomy into an HTTP
// response.  ConflictError is an expected user-facing outcome and
// carries its own message; storage faults are reported generically
// so driver details never leak to clients.
func bookingError(c echo.Context, err error) error {
	var ve *booking.ValidationError
	if errors.As(err, &ve) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Reason})
	}
	var ce *booking.ConflictError
	if errors.As(err, &ce) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "dates already booked"})
	}
	var nf *booking.NotFoundError
	if errors.As(err, &nf) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": nf.Resource + " not found"})
	}
	if errors.Is(err, booking.ErrForbidden) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

// parseID parses a numeric path parameter, rejecting zero.
func parseID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// parseDates parses a list of YYYY-MM-DD strings into normalized
// days, failing on the first malformed entry.
func parseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		d, err := booking.ParseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
