package ncloud

import (
	"context"

	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

type summaryDocument struct {
	Title   string `json:"title,omitempty"`
	Content string `json:"content"`
}

// SummaryRequest is a CLOVA Summary call. Language defaults to ko and Model
// to general.
type SummaryRequest struct {
	Title        string
	Content      string
	Language     string
	Model        string
	Tone         int
	SummaryCount int
	Extra        *params.Options
}

// Summarize returns a document whose summary field holds the result.
func (c *Client) Summarize(ctx context.Context, req SummaryRequest) (*table.Document, error) {
	if req.Content == "" {
		return nil, &params.MissingFieldError{Field: "document.content"}
	}

	lang := req.Language
	if lang == "" {
		lang = "ko"
	}
	model := req.Model
	if model == "" {
		model = "general"
	}

	option := params.NewOptions().Set("language", lang).Set("model", model)
	if req.Tone != 0 {
		option.Set("tone", req.Tone)
	}
	if req.SummaryCount != 0 {
		option.Set("summaryCount", req.SummaryCount)
	}

	payload := params.NewPayload().
		Require("document", summaryDocument{Title: req.Title, Content: req.Content}).
		Default("option", option, nil).
		Merge(req.Extra)

	return c.postDocument(ctx, "summarize", "/text-summary/v1/summarize", payload)
}
