package naver

import (
	"context"
	"fmt"

	"golang.org/x/text/unicode/norm"
	"naver-go/pkg/params"
	"naver-go/pkg/table"
)

// SearchKind selects one of the Open API search verticals.
type SearchKind string

const (
	SearchBlog         SearchKind = "blog"
	SearchNews         SearchKind = "news"
	SearchBook         SearchKind = "book"
	SearchEncyclopedia SearchKind = "encyc"
	SearchCafeArticle  SearchKind = "cafearticle"
	SearchKnowledgeIn  SearchKind = "kin"
	SearchWeb          SearchKind = "webkr"
	SearchImage        SearchKind = "image"
	SearchShopping     SearchKind = "shop"
	SearchDocument     SearchKind = "doc"
	SearchLocal        SearchKind = "local"
)

var searchKinds = []SearchKind{
	SearchBlog, SearchNews, SearchBook, SearchEncyclopedia, SearchCafeArticle,
	SearchKnowledgeIn, SearchWeb, SearchImage, SearchShopping, SearchDocument, SearchLocal,
}

// SearchKinds lists every item-list search vertical.
func SearchKinds() []SearchKind {
	return append([]SearchKind(nil), searchKinds...)
}

// ParseSearchKind validates a vertical name such as "news" or "shop".
func ParseSearchKind(s string) (SearchKind, error) {
	for _, k := range searchKinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", &params.InvalidFieldError{Field: "kind", Value: s, Err: errUnknownSearchKind}
}

// SearchRequest holds the common search parameters. Display, Start and Sort
// are sent only when set; vertical-specific fields go in Extra.
type SearchRequest struct {
	Query   string
	Display int
	Start   int
	Sort    string
	Extra   *params.Options
}

func searchPayload(query string, display, start int, sort string, extra *params.Options) *params.Payload {
	return params.NewPayload().
		Require("query", norm.NFC.String(query)).
		Optional("display", display).
		Optional("start", start).
		Optional("sort", sort).
		Merge(extra)
}

// Search queries one vertical and returns its items as rows.
func (c *Client) Search(ctx context.Context, kind SearchKind, req SearchRequest) (*table.ItemList, error) {
	if _, err := ParseSearchKind(string(kind)); err != nil {
		return nil, err
	}

	payload := searchPayload(req.Query, req.Display, req.Start, req.Sort, req.Extra)
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/v1/search/"+string(kind)+".json", payload)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	items, err := table.DecodeItemList(body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	return items, nil
}

// SearchAdult reports whether query is classified as adult content.
func (c *Client) SearchAdult(ctx context.Context, query string) (*table.Document, error) {
	return c.searchDocument(ctx, "adult", query)
}

// SearchErrata returns the keyboard-layout correction for query.
func (c *Client) SearchErrata(ctx context.Context, query string) (*table.Document, error) {
	return c.searchDocument(ctx, "errata", query)
}

func (c *Client) searchDocument(ctx context.Context, kind, query string) (*table.Document, error) {
	payload := searchPayload(query, 0, 0, "", nil)
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	body, err := c.get(ctx, "/v1/search/"+kind+".json", payload)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	doc, err := table.DecodeDocument(body)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", kind, err)
	}
	return doc, nil
}
