package ncloud

import (
	"context"
	"errors"

	"golang.org/x/text/language"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// AutoDetect lets Papago pick the source language.
const AutoDetect = "auto"

var errAutoTarget = errors.New("auto detection applies to the source language only")

// TranslateRequest is a Papago NMT translation. Source and Target are
// language codes such as ko, en or zh-CN.
type TranslateRequest struct {
	Source      string
	Target      string
	Text        string
	Honorific   bool
	GlossaryKey string
	Extra       *params.Options
}

// Translate returns the translation document; the translated text is at
// message.result.translatedText.
func (c *Client) Translate(ctx context.Context, req TranslateRequest) (*table.Document, error) {
	if err := checkLanguage("source", req.Source, true); err != nil {
		return nil, err
	}
	if err := checkLanguage("target", req.Target, false); err != nil {
		return nil, err
	}

	payload := params.NewPayload().
		Require("source", req.Source).
		Require("target", req.Target).
		Require("text", req.Text).
		Optional("honorific", req.Honorific).
		Optional("glossaryKey", req.GlossaryKey).
		Merge(req.Extra)

	return c.postDocument(ctx, "translate", "/nmt/v1/translation", payload)
}

// DetectLanguage returns a document with the detected langCode.
func (c *Client) DetectLanguage(ctx context.Context, text string) (*table.Document, error) {
	payload := params.NewPayload().Require("query", text)
	return c.postDocument(ctx, "detect language", "/langs/v1/dect", payload)
}

// checkLanguage rejects codes that are not BCP 47 tags. Empty codes are left
// to payload validation.
func checkLanguage(field, code string, allowAuto bool) error {
	if code == "" {
		return nil
	}
	if code == AutoDetect {
		if allowAuto {
			return nil
		}
		return &params.InvalidFieldError{Field: field, Value: code, Err: errAutoTarget}
	}
	if _, err := language.Parse(code); err != nil {
		return &params.InvalidFieldError{Field: field, Value: code, Err: err}
	}
	return nil
}
