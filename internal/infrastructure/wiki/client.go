package wiki

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ErrPageNotFound reports that no page exists under the exact title.
var ErrPageNotFound = errors.New("page not found")

// AmbiguousTitleError reports that a title lands on a disambiguation page.
// Options holds the link texts scraped from the rendered page body.
type AmbiguousTitleError struct {
	Title   string
	Options []string
}

func (e *AmbiguousTitleError) Error() string {
	return fmt.Sprintf("title %q is ambiguous (%d options)", e.Title, len(e.Options))
}

// Page is a resolved encyclopedia page.
type Page struct {
	Title string
}

// Client queries a MediaWiki action API endpoint.
type Client struct {
	apiURL string
	client *http.Client
}

// NewClient wires an HTTP client; a nil client gets a 20s timeout default.
func NewClient(apiURL string, client *http.Client) *Client {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &Client{apiURL: apiURL, client: client}
}

// FetchPage looks up an exact title, following redirects but never applying
// fuzzy suggestion. Missing pages yield ErrPageNotFound; disambiguation pages
// yield *AmbiguousTitleError with their candidate options.
func (c *Client) FetchPage(ctx context.Context, title string) (Page, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("prop", "info|pageprops")
	params.Set("ppprop", "disambiguation")
	params.Set("redirects", "1")
	params.Set("titles", title)

	var payload struct {
		Query struct {
			Pages map[string]struct {
				Title     string            `json:"title"`
				Missing   *string           `json:"missing"`
				PageProps map[string]string `json:"pageprops"`
			} `json:"pages"`
		} `json:"query"`
	}

	if err := c.get(ctx, params, &payload); err != nil {
		return Page{}, fmt.Errorf("fetch %q: %w", title, err)
	}

	for id, page := range payload.Query.Pages {
		if id == "-1" || page.Missing != nil {
			return Page{}, fmt.Errorf("title %q: %w", title, ErrPageNotFound)
		}
		if _, ok := page.PageProps["disambiguation"]; ok {
			options, err := c.disambiguationOptions(ctx, page.Title)
			if err != nil {
				return Page{}, fmt.Errorf("options for %q: %w", page.Title, err)
			}
			return Page{}, &AmbiguousTitleError{Title: page.Title, Options: options}
		}
		return Page{Title: page.Title}, nil
	}

	return Page{}, fmt.Errorf("title %q: %w", title, ErrPageNotFound)
}

// Search runs a free-text search and returns up to limit page titles.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]string, error) {
	params := url.Values{}
	params.Set("action", "query")
	params.Set("list", "search")
	params.Set("srsearch", query)
	params.Set("srlimit", strconv.Itoa(limit))

	var payload struct {
		Query struct {
			Search []struct {
				Title string `json:"title"`
			} `json:"search"`
		} `json:"query"`
	}

	if err := c.get(ctx, params, &payload); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	titles := make([]string, 0, len(payload.Query.Search))
	for _, hit := range payload.Query.Search {
		titles = append(titles, hit.Title)
	}
	return titles, nil
}

// disambiguationOptions renders the disambiguation page and collects the
// linked titles from its list items.
func (c *Client) disambiguationOptions(ctx context.Context, title string) ([]string, error) {
	params := url.Values{}
	params.Set("action", "parse")
	params.Set("page", title)
	params.Set("prop", "text")

	var payload struct {
		Parse struct {
			Text map[string]string `json:"text"`
		} `json:"parse"`
	}

	if err := c.get(ctx, params, &payload); err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload.Parse.Text["*"]))
	if err != nil {
		return nil, fmt.Errorf("parse page html: %w", err)
	}

	var options []string
	seen := map[string]struct{}{}
	doc.Find("ul li").Each(func(i int, li *goquery.Selection) {
		text := strings.TrimSpace(li.Find("a").First().Text())
		if text == "" {
			return
		}
		if _, ok := seen[text]; ok {
			return
		}
		seen[text] = struct{}{}
		options = append(options, text)
	})

	return options, nil
}

func (c *Client) get(ctx context.Context, params url.Values, v any) error {
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "BrandMentionScanner/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("request api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api returned %s", resp.Status)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}
