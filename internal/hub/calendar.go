package hub

import (
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"meetbook/internal/model"
)

type absencesResponse struct {
	Absences []model.Absence `json:"absences"`
}

type meetingsResponse struct {
	Meetings []model.Meeting `json:"meetings"`
}

type occurrencesResponse struct {
	Occurrences []model.Occurrence `json:"occurrences"`
}

// GetAbsences fetches absences of a profile overlapping [since, till].
func (c *Client) GetAbsences(ctx context.Context, profileID string, since, till time.Time) ([]model.Absence, error) {
	endpoint := fmt.Sprintf("%s/api/absences?profile=%s&since=%s&till=%s",
		c.baseURL, url.QueryEscape(profileID), rfc3339(since), rfc3339(till))
	cacheKey := fmt.Sprintf("absences:%s:%s:%s", profileID, rfc3339(since), rfc3339(till))
	var resp absencesResponse

	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Absences, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Absences, nil
}

// GetMeetings fetches meetings of a profile overlapping the window,
// recurring masters included, ordered by occurrence start ascending.
func (c *Client) GetMeetings(ctx context.Context, profileID string, since, till time.Time) ([]model.Meeting, error) {
	endpoint := fmt.Sprintf("%s/api/meetings?profile=%s&starting_after=%s&ending_before=%s&include_recurring=true",
		c.baseURL, url.QueryEscape(profileID), rfc3339(since), rfc3339(till))
	cacheKey := fmt.Sprintf("meetings:%s:%s:%s", profileID, rfc3339(since), rfc3339(till))
	var resp meetingsResponse

	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Meetings, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}

	// Contractual ordering, independent of what the hub returns.
	sort.SliceStable(resp.Meetings, func(i, j int) bool {
		return resp.Meetings[i].OccurrenceRule.Start.Before(resp.Meetings[j].OccurrenceRule.Start)
	})

	c.writeCache(ctx, cacheKey, resp)
	return resp.Meetings, nil
}

// GetRecurringOccurrences expands a recurring meeting into concrete
// occurrences within [since, till].
func (c *Client) GetRecurringOccurrences(ctx context.Context, meetingID string, since, till time.Time) ([]model.Occurrence, error) {
	endpoint := fmt.Sprintf("%s/api/meetings/%s/occurrences?since=%s&till=%s",
		c.baseURL, url.PathEscape(meetingID), rfc3339(since), rfc3339(till))
	cacheKey := fmt.Sprintf("occurrences:%s:%s:%s", meetingID, rfc3339(since), rfc3339(till))
	var resp occurrencesResponse

	if c.readCache(ctx, cacheKey, &resp) {
		return resp.Occurrences, nil
	}

	if err := c.doGet(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	c.writeCache(ctx, cacheKey, resp)
	return resp.Occurrences, nil
}

// CreateMeeting submits a new meeting to the hub calendar.
func (c *Client) CreateMeeting(ctx context.Context, spec model.MeetingSpec) (*model.Meeting, error) {
	endpoint := c.baseURL + "/api/meetings"
	var resp struct {
		Meeting model.Meeting `json:"meeting"`
	}
	if err := c.doPost(ctx, endpoint, spec, &resp); err != nil {
		return nil, err
	}
	return &resp.Meeting, nil
}

func rfc3339(t time.Time) string {
	return url.QueryEscape(t.Format(time.RFC3339))
}
