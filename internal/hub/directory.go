package hub

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"meetbook/internal/model"
)

type profileResponse struct {
	Profile model.Profile `json:"profile"`
}

type workingDaysResponse struct {
	WorkingDays []model.WorkingDaysSpec `json:"working_days"`
}

// GetProfile fetches a directory profile by id, username or "me", including
// its holidays. A missing profile is reported as model.ErrProfileNotFound.
func (c *Client) GetProfile(ctx context.Context, id model.ProfileIdentifier) (*model.Profile, error) {
	endpoint := fmt.Sprintf("%s/api/team/profiles/%s", c.baseURL, url.PathEscape(id.String()))
	cacheKey := "profile:" + id.String()
	var resp profileResponse

	if c.readCache(ctx, cacheKey, &resp) {
		return &resp.Profile, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return &resp.Profile, nil
}

// GetWorkingDays fetches the working-days specs declared for a profile.
func (c *Client) GetWorkingDays(ctx context.Context, profileID string) ([]model.WorkingDaysSpec, error) {
	endpoint := fmt.Sprintf("%s/api/team/profiles/%s/working-days", c.baseURL, url.PathEscape("id:"+profileID))
	cacheKey := "working-days:" + profileID
	var resp workingDaysResponse

	if c.readCache(ctx, cacheKey, &resp) {
		return resp.WorkingDays, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.WorkingDays, nil
}
