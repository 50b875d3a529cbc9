package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-ukci-client/crm"
	"github.com/jrsteele09/go-ukci-client/result"
)

func (c *Client) ListContacts(ctx context.Context) result.Result[[]crm.Contact] {
	return do[[]crm.Contact](ctx, c, http.MethodGet, RouteContacts, nil)
}

func (c *Client) CreateContact(ctx context.Context, contact crm.Contact) result.Result[crm.Contact] {
	return do[crm.Contact](ctx, c, http.MethodPost, RouteContacts, contact)
}

func (c *Client) UpdateContact(ctx context.Context, id string, update crm.ContactUpdate) result.Result[crm.Contact] {
	return do[crm.Contact](ctx, c, http.MethodPatch, expand(RouteContact, "id", id), update)
}

func (c *Client) DeleteContact(ctx context.Context, id string) result.Result[struct{}] {
	return do[struct{}](ctx, c, http.MethodDelete, expand(RouteContact, "id", id), nil)
}

func (c *Client) ListDeals(ctx context.Context) result.Result[[]crm.Deal] {
	return do[[]crm.Deal](ctx, c, http.MethodGet, RouteDeals, nil)
}

func (c *Client) CreateDeal(ctx context.Context, deal crm.Deal) result.Result[crm.Deal] {
	return do[crm.Deal](ctx, c, http.MethodPost, RouteDeals, deal)
}

func (c *Client) UpdateDealStage(ctx context.Context, id string, stage crm.DealStage) result.Result[crm.Deal] {
	return do[crm.Deal](ctx, c, http.MethodPut, expand(RouteDealStage, "id", id), crm.StageUpdate{Stage: stage})
}

func (c *Client) ListCampaigns(ctx context.Context) result.Result[[]crm.Campaign] {
	return do[[]crm.Campaign](ctx, c, http.MethodGet, RouteCampaigns, nil)
}

func (c *Client) SendCampaign(ctx context.Context, id string) result.Result[crm.Campaign] {
	return do[crm.Campaign](ctx, c, http.MethodPost, expand(RouteCampaignSend, "id", id), nil)
}
