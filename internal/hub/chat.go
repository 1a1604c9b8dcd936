package hub

import "context"

type chatMessageRequest struct {
	Recipient   string `json:"recipient"`
	Text        string `json:"text"`
	UnfurlLinks bool   `json:"unfurl_links"`
}

// SendChatMessage posts a direct chat message to the member owning
// profileID.
func (c *Client) SendChatMessage(ctx context.Context, profileID, text string) error {
	body := chatMessageRequest{
		Recipient:   "member:id:" + profileID,
		Text:        text,
		UnfurlLinks: true,
	}
	return c.doPost(ctx, c.baseURL+"/api/chats/messages", body, nil)
}
