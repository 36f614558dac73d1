package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"naver-go/internal/service"
	"naver-go/pkg/export"
	"naver-go/pkg/naver"
	"naver-go/pkg/ncloud"
)

type usageError struct {
	msg string
}

func (e *usageError) Error() string {
	return e.msg
}

func usagef(format string, args ...interface{}) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

var errConsumerMissing = errors.New("consumer credentials are not configured (NAVER_CONSUMER_CLIENT_ID, NAVER_CONSUMER_CLIENT_SECRET)")
var errCloudMissing = errors.New("cloud credentials are not configured (NAVER_CLOUD_KEY_ID, NAVER_CLOUD_KEY)")

// command runs against the configured clients and returns an
// export.Tabular or any JSON-encodable value.
type command func(ctx context.Context, clients *service.Clients, args []string) (interface{}, error)

var commands = map[string]command{
	"search":    searchCommand,
	"trend":     trendCommand,
	"shopping":  shoppingCommand,
	"geocode":   geocodeCommand,
	"translate": translateCommand,
	"shorturl":  shortURLCommand,
}

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string {
	return strings.Join(*l, " ")
}

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return usagef("%s: %v", fs.Name(), err)
	}
	return nil
}

// splitNamed parses "name:a,b,c". Without a colon the name is also the only
// member.
func splitNamed(s string) (string, []string, error) {
	name, list, found := strings.Cut(s, ":")
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil, usagef("empty name in %q", s)
	}
	if !found {
		return name, []string{name}, nil
	}

	var members []string
	for _, m := range strings.Split(list, ",") {
		if m = strings.TrimSpace(m); m != "" {
			members = append(members, m)
		}
	}
	if len(members) == 0 {
		return "", nil, usagef("no values after %q", name+":")
	}
	return name, members, nil
}

func parseCategoryParams(values []string) ([]naver.CategoryParam, error) {
	out := make([]naver.CategoryParam, 0, len(values))
	for _, v := range values {
		name, members, err := splitNamed(v)
		if err != nil {
			return nil, err
		}
		out = append(out, naver.CategoryParam{Name: name, Param: members})
	}
	return out, nil
}

func parseKeywordGroups(values []string) ([]naver.KeywordGroup, error) {
	out := make([]naver.KeywordGroup, 0, len(values))
	for _, v := range values {
		name, members, err := splitNamed(v)
		if err != nil {
			return nil, err
		}
		out = append(out, naver.KeywordGroup{GroupName: name, Keywords: members})
	}
	return out, nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// periodFlags registers the DataLab date range and audience flags on fs.
func periodFlags(fs *flag.FlagSet) func() (naver.Period, naver.Audience) {
	start := fs.String("start", "", "Start date YYYY-MM-DD")
	end := fs.String("end", "", "End date YYYY-MM-DD")
	unit := fs.String("unit", string(naver.Daily), "date, week or month")
	device := fs.String("device", "", "pc or mo")
	gender := fs.String("gender", "", "m or f")
	ages := fs.String("ages", "", "Comma-separated age groups 1..11")

	return func() (naver.Period, naver.Audience) {
		return naver.Period{StartDate: *start, EndDate: *end, TimeUnit: naver.TimeUnit(*unit)},
			naver.Audience{Device: *device, Gender: *gender, Ages: splitList(*ages)}
	}
}

func searchCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	fs := newFlagSet("search")
	kind := fs.String("kind", string(naver.SearchBlog), "Search vertical")
	display := fs.Int("display", 0, "Results per page")
	start := fs.Int("start", 0, "First result index")
	sort := fs.String("sort", "", "sim or date")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if clients.Consumer == nil {
		return nil, errConsumerMissing
	}

	k, err := naver.ParseSearchKind(*kind)
	if err != nil {
		return nil, err
	}
	return clients.Consumer.Search(ctx, k, naver.SearchRequest{
		Query:   strings.Join(fs.Args(), " "),
		Display: *display,
		Start:   *start,
		Sort:    *sort,
	})
}

func trendCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	fs := newFlagSet("trend")
	period := periodFlags(fs)
	var groups listFlag
	fs.Var(&groups, "group", "Keyword group name:kw1,kw2 (repeatable)")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if clients.Consumer == nil {
		return nil, errConsumerMissing
	}

	keywordGroups, err := parseKeywordGroups(groups)
	if err != nil {
		return nil, err
	}
	p, a := period()
	return clients.Consumer.SearchTrend(ctx, naver.SearchTrendRequest{Period: p, KeywordGroups: keywordGroups, Audience: a})
}

func shoppingCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	fs := newFlagSet("shopping")
	period := periodFlags(fs)
	var categories, keywords listFlag
	fs.Var(&categories, "category", "Category name:code for trends, a bare code otherwise (repeatable)")
	fs.Var(&keywords, "keyword", "Keyword name:kw1,kw2 for trends, a bare keyword otherwise (repeatable)")
	by := fs.String("by", "", "Split one category or keyword by device, gender or age")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if clients.Consumer == nil {
		return nil, errConsumerMissing
	}

	p, a := period()
	api := clients.Consumer

	if *by != "" {
		breakdown, err := naver.ParseBreakdown(*by)
		if err != nil {
			return nil, err
		}
		if len(categories) != 1 {
			return nil, usagef("-by needs exactly one -category code")
		}
		switch len(keywords) {
		case 0:
			return api.ShoppingCategoryBreakdown(ctx, breakdown, naver.CategoryBreakdownRequest{
				Period: p, Category: categories[0], Audience: a,
			})
		case 1:
			return api.ShoppingKeywordBreakdown(ctx, breakdown, naver.KeywordBreakdownRequest{
				Period: p, Category: categories[0], Keyword: keywords[0], Audience: a,
			})
		}
		return nil, usagef("-by takes at most one -keyword")
	}

	if len(keywords) > 0 {
		if len(categories) != 1 {
			return nil, usagef("keyword trends need exactly one -category code")
		}
		params, err := parseCategoryParams(keywords)
		if err != nil {
			return nil, err
		}
		return api.ShoppingKeywordTrend(ctx, naver.KeywordTrendRequest{
			Period: p, Category: categories[0], Keyword: params, Audience: a,
		})
	}

	params, err := parseCategoryParams(categories)
	if err != nil {
		return nil, err
	}
	return api.ShoppingCategoryTrend(ctx, naver.CategoryTrendRequest{Period: p, Category: params, Audience: a})
}

func geocodeCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	fs := newFlagSet("geocode")
	coordinate := fs.String("coordinate", "", "Sort by distance from lng,lat")
	count := fs.Int("count", 0, "Maximum results")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if clients.Cloud == nil {
		return nil, errCloudMissing
	}

	return clients.Cloud.Geocode(ctx, ncloud.GeocodeRequest{
		Query:      strings.Join(fs.Args(), " "),
		Coordinate: *coordinate,
		Count:      *count,
	})
}

func translateCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	fs := newFlagSet("translate")
	source := fs.String("source", ncloud.AutoDetect, "Source language or auto")
	target := fs.String("target", "", "Target language")
	honorific := fs.Bool("honorific", false, "Use honorifics (ko target only)")
	if err := parseFlags(fs, args); err != nil {
		return nil, err
	}
	if clients.Cloud == nil {
		return nil, errCloudMissing
	}

	return clients.Cloud.Translate(ctx, ncloud.TranslateRequest{
		Source:    *source,
		Target:    *target,
		Text:      strings.Join(fs.Args(), " "),
		Honorific: *honorific,
	})
}

func shortURLCommand(ctx context.Context, clients *service.Clients, args []string) (interface{}, error) {
	if len(args) != 1 {
		return nil, usagef("shorturl takes exactly one URL")
	}
	if clients.Consumer == nil {
		return nil, errConsumerMissing
	}
	return clients.Consumer.ShortURL(ctx, args[0])
}

// writeResult sends tabular results through the exporter and everything
// else as JSON.
func writeResult(opts options, result interface{}) (err error) {
	var w io.Writer = os.Stdout
	format := opts.format

	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		w = f
		format = export.FormatForPath(opts.out, format)
	}

	return render(w, result, format)
}

func render(w io.Writer, result interface{}, format export.Format) error {
	if t, ok := result.(export.Tabular); ok {
		return export.Write(w, t, format)
	}
	if format != export.FormatJSON && format != export.FormatTable {
		return usagef("%s output needs a tabular result; use -format json", format)
	}
	return export.WriteJSON(w, result)
}
