package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/jrsteele09/go-ukci-client/result"
	"github.com/rs/zerolog/log"
)

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 4 << 20

// do performs one API call and folds every outcome into a Result.
func do[T any](ctx context.Context, c *Client, method, route string, body any) result.Result[T] {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			log.Err(err).Str("route", route).Msg("Failed to encode request body")
			return result.Fail[T](0, result.GenericFailure)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+route, reader)
	if err != nil {
		log.Err(err).Str("route", route).Msg("Failed to create request")
		return result.Fail[T](0, result.GenericFailure)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("route", route).Msg("Request failed")
		return result.FromError[T](err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		log.Debug().Err(err).Str("route", route).Msg("Failed to read response body")
		return result.FromError[T](err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := result.ParseError(resp.StatusCode, data)
		log.Debug().Int("status", resp.StatusCode).Str("route", route).Str("error", apiErr.Message()).Msg("API returned an error")
		return result.FromError[T](apiErr)
	}

	var payload T
	if len(bytes.TrimSpace(data)) == 0 {
		return result.OkStatus(resp.StatusCode, payload)
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		log.Err(err).Str("route", route).Msg("Failed to decode response body")
		return result.Fail[T](resp.StatusCode, result.GenericFailure)
	}
	return result.OkStatus(resp.StatusCode, payload)
}
