package naver

import (
	"context"
	"fmt"

	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// ShortURL shortens a URL through the me2.do service. The document carries
// result.url, result.hash and result.orgUrl.
func (c *Client) ShortURL(ctx context.Context, longURL string) (*table.Document, error) {
	payload := params.NewPayload().Require("url", longURL)
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/v1/util/shorturl", payload)
	if err != nil {
		return nil, fmt.Errorf("short url: %w", err)
	}
	doc, err := table.DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("short url: %w", err)
	}
	return doc, nil
}
