package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/chalet-reservation/internal/booking"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestBookingErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &booking.ValidationError{Reason: "check-out must be after check-in"}, http.StatusBadRequest},
		{"conflict", &booking.ConflictError{UnitID: 1}, http.StatusConflict},
		{"not found", &booking.NotFoundError{Resource: "unit", ID: 7}, http.StatusNotFound},
		{"forbidden", booking.ErrForbidden, http.StatusForbidden},
		{"storage fault", &booking.StorageFault{Op: "insert reservation", Err: assert.AnError}, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newTestContext(t)
			require.NoError(t, bookingError(c, tc.err))
			assert.Equal(t, tc.code, rec.Code)
			assert.Contains(t, rec.Body.String(), "error")
		})
	}
}

func TestBookingErrorValidationReasonInBody(t *testing.T) {
	c, rec := newTestContext(t)
	require.NoError(t, bookingError(c, &booking.ValidationError{Reason: "guest count must be positive"}))
	assert.Contains(t, rec.Body.String(), "guest count must be positive")
}

func TestGetUserIDRepresentations(t *testing.T) {
	cases := []struct {
		name string
		val  any
		want uint64
	}{
		{"uint64", uint64(42), 42},
		{"int", int(7), 7},
		{"int64", int64(9), 9},
		{"float64 from json claims", float64(31), 31},
		{"numeric string", "123", 123},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestContext(t)
			c.Set("user_id", tc.val)
			got, err := getUserID(c)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("missing", func(t *testing.T) {
		c, _ := newTestContext(t)
		_, err := getUserID(c)
		assert.Error(t, err)
	})
}

func TestParseDates(t *testing.T) {
	out, err := parseDates([]string{"2024-03-14", "2024-03-15"})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-03-14", booking.FormatDate(out[0]))

	_, err = parseDates([]string{"2024-03-14", "not-a-date"})
	assert.Error(t, err)
}
