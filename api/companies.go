package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-ukci-client/companies"
	"github.com/jrsteele09/go-ukci-client/debounce"
	"github.com/jrsteele09/go-ukci-client/result"
)

func searchKey(query string) string {
	return "companies:search:" + strings.ToLower(query)
}

func detailKey(number string) string {
	return "companies:detail:" + strings.ToUpper(number)
}

// SearchCompanies is cached for the search TTL and queued on a miss.
func (c *Client) SearchCompanies(ctx context.Context, query string) result.Result[companies.SearchResult] {
	query = strings.TrimSpace(query)
	route := RouteCompanySearch + "?q=" + url.QueryEscape(query)
	return GetOrFetch(c, ctx, searchKey(query), func(ctx context.Context) result.Result[companies.SearchResult] {
		return Await(ctx, QueueRequest(c, ctx, func(ctx context.Context) result.Result[companies.SearchResult] {
			return do[companies.SearchResult](ctx, c, http.MethodGet, route, nil)
		}))
	}, c.cfg.GetSearchCacheTTL())
}

// GetCompany is cached for the detail TTL and queued on a miss.
func (c *Client) GetCompany(ctx context.Context, number string) result.Result[companies.Company] {
	number = strings.TrimSpace(number)
	route := expand(RouteCompany, "number", number)
	return GetOrFetch(c, ctx, detailKey(number), func(ctx context.Context) result.Result[companies.Company] {
		return Await(ctx, QueueRequest(c, ctx, func(ctx context.Context) result.Result[companies.Company] {
			return do[companies.Company](ctx, c, http.MethodGet, route, nil)
		}))
	}, c.cfg.GetDetailCacheTTL())
}

// ToggleMonitoring turns monitoring of a company on or off. The cached detail
// is dropped since it carries the monitored flag.
func (c *Client) ToggleMonitoring(ctx context.Context, number string, monitored bool) result.Result[companies.Company] {
	number = strings.TrimSpace(number)
	r := do[companies.Company](ctx, c, http.MethodPut, expand(RouteCompanyMonitor, "number", number),
		companies.MonitoringRequest{Monitored: monitored})
	if r.Success {
		c.responses.Delete(detailKey(number))
	}
	return r
}

func (c *Client) ListMonitored(ctx context.Context) result.Result[[]companies.Company] {
	return do[[]companies.Company](ctx, c, http.MethodGet, RouteMonitoring, nil)
}

func (c *Client) ListAlerts(ctx context.Context, unreadOnly bool) result.Result[[]companies.Alert] {
	route := RouteAlerts
	if unreadOnly {
		route += "?unread=true"
	}
	return do[[]companies.Alert](ctx, c, http.MethodGet, route, nil)
}

func (c *Client) MarkAlertRead(ctx context.Context, id string) result.Result[companies.Alert] {
	return do[companies.Alert](ctx, c, http.MethodPost, expand(RouteAlertRead, "id", id), nil)
}

// NewSearchDispatcher returns a debounced company search for search-as-you-type
// input. Queries shorter than the configured minimum report an empty result
// without calling the backend.
func (c *Client) NewSearchDispatcher(onResults func(result.Result[companies.SearchResult])) *debounce.SearchDispatcher {
	return debounce.NewSearchDispatcher(
		c.cfg.GetSearchDebounce(),
		c.cfg.GetMinSearchLength(),
		func(ctx context.Context, query string) {
			onResults(c.SearchCompanies(ctx, query))
		},
		func() {
			onResults(result.Ok(companies.SearchResult{Items: []companies.Company{}}))
		},
	)
}
