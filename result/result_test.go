package result_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jrsteele09/go-ukci-client/result"
	"github.com/stretchr/testify/require"
)

func requireTotal[T any](t *testing.T, r result.Result[T]) {
	t.Helper()
	if r.Success {
		require.Empty(t, r.Error)
	} else {
		require.NotEmpty(t, r.Error)
	}
}

func TestResult_Ok(t *testing.T) {
	r := result.Ok([]string{"a"})
	requireTotal(t, r)
	require.True(t, r.Success)
	require.Equal(t, []string{"a"}, r.Data)
	require.NoError(t, r.Err())
}

func TestResult_MessageDerivation(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"error field wins", 400, `{"error":"Email taken","message":"Validation failed"}`, "Email taken"},
		{"message field", 422, `{"message":"Company number invalid"}`, "Company number invalid"},
		{"blank error falls through", 400, `{"error":"  ","message":"Try again"}`, "Try again"},
		{"non-string error ignored", 400, `{"error":{"code":1},"message":"Bad"}`, "Bad"},
		{"detail field", 404, `{"detail":"Company not found"}`, "Company not found"},
		{"message beats detail", 400, `{"message":"Invalid query","detail":"q too short"}`, "Invalid query"},
		{"non-string detail ignored", 422, `{"detail":[{"loc":["q"]}]}`, result.GenericFailure},
		{"html body", 502, `<html>Bad Gateway</html>`, result.GenericFailure},
		{"empty body", 500, ``, result.GenericFailure},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := result.FromError[int](result.ParseError(tc.status, []byte(tc.body)))
			requireTotal(t, r)
			require.False(t, r.Success)
			require.Equal(t, tc.want, r.Error)
			require.Equal(t, tc.status, r.Status)
		})
	}
}

func TestResult_NeverLeaksInternalErrors(t *testing.T) {
	for _, err := range []error{
		errors.New("dial tcp 10.0.0.1:443: connect: connection refused"),
		fmt.Errorf("wrapped: %w", context.DeadlineExceeded),
		nil,
	} {
		r := result.FromError[string](err)
		requireTotal(t, r)
		require.False(t, r.Success)
		require.NotContains(t, r.Error, "dial tcp")
		require.NotContains(t, r.Error, "deadline")
	}

	r := result.FromError[string](errors.New("boom"))
	require.Equal(t, result.NetworkFailure, r.Error)
	require.Zero(t, r.Status)
}

func TestResult_WrappedAPIError(t *testing.T) {
	err := fmt.Errorf("[Login] %w", &result.APIError{Status: http.StatusUnauthorized, ErrorField: "Invalid credentials"})
	r := result.FromError[any](err)
	require.Equal(t, "Invalid credentials", r.Error)
	require.True(t, r.Unauthorized())
}

func TestResult_Fail(t *testing.T) {
	require.Equal(t, result.GenericFailure, result.Fail[int](500, "").Error)
	require.Equal(t, result.NetworkFailure, result.Fail[int](0, " ").Error)
	require.Equal(t, "nope", result.Fail[int](403, "nope").Error)
}

func TestResult_Map(t *testing.T) {
	ok := result.Map(result.OkStatus(200, 2), func(i int) string { return fmt.Sprint(i * 2) })
	require.True(t, ok.Success)
	require.Equal(t, "4", ok.Data)
	require.Equal(t, 200, ok.Status)

	failed := result.Map(result.Fail[int](404, "missing"), func(i int) string { return "x" })
	require.False(t, failed.Success)
	require.Equal(t, "missing", failed.Error)
	require.Equal(t, 404, failed.Status)
	requireTotal(t, failed)
}
