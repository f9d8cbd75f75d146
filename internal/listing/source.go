package listing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const (
	userAgent = "auraforge/1.0 (+https://github.com/auraforge/auraforge)"

	// Listing pages can be large; anything past this is noise.
	maxListingBytes = 4 << 20
)

// Pre-compiled to avoid recompilation per fetch.
var itemHrefPattern = regexp.MustCompile(`/item=(\d+)`)

// Listing is the result of fetching one category page.
type Listing struct {
	// IDs holds the distinct item ids in page order, first occurrence wins.
	IDs []int64
	// Stamp is the page's provenance marker (generator meta tag, falling
	// back to the page title). May be empty when the page carries neither.
	Stamp string
}

// Source fetches category listing pages relative to a base URL.
type Source struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures a Source.
type Option func(*Source)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Source) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Source) {
		if timeout > 0 {
			s.httpClient.Timeout = timeout
		}
	}
}

// NewSource creates a listing source for the given base URL.
func NewSource(baseURL string, opts ...Option) (*Source, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, errors.New("listing base url required")
	}
	source := &Source{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(source)
	}
	return source, nil
}

// Fetch retrieves one category listing page. Any failure is a listing failure
// for the whole category; an empty id sequence is not an error here, callers
// decide how to report it.
func (s *Source) Fetch(ctx context.Context, path string) (Listing, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return Listing{}, errors.New("listing path required")
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return Listing{}, fmt.Errorf("build listing request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return Listing{}, fmt.Errorf("fetch listing %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Listing{}, fmt.Errorf("listing %s returned %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return Listing{}, fmt.Errorf("read listing %s: %w", path, err)
	}

	return Listing{
		IDs:   extractIDs(body),
		Stamp: extractStamp(body),
	}, nil
}

// extractIDs pulls distinct item ids out of the raw page, preserving first
// occurrence order.
func extractIDs(body []byte) []int64 {
	matches := itemHrefPattern.FindAllSubmatch(body, -1)
	if len(matches) == 0 {
		return nil
	}
	ids := make([]int64, 0, len(matches))
	seen := make(map[int64]struct{}, len(matches))
	for _, match := range matches {
		id, err := strconv.ParseInt(string(match[1]), 10, 64)
		if err != nil || id <= 0 {
			continue
		}
		if _, exists := seen[id]; exists {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

// extractStamp walks the parsed document for the generator meta tag, falling
// back to the page title.
func extractStamp(body []byte) string {
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return ""
	}

	var title string
	var walk func(n *html.Node) string
	walk = func(n *html.Node) string {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "meta":
				var name, content string
				for _, attr := range n.Attr {
					switch attr.Key {
					case "name":
						name = strings.ToLower(attr.Val)
					case "content":
						content = attr.Val
					}
				}
				if name == "generator" && strings.TrimSpace(content) != "" {
					return strings.TrimSpace(content)
				}
			case "title":
				if title == "" && n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
					title = strings.TrimSpace(n.FirstChild.Data)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if stamp := walk(c); stamp != "" {
				return stamp
			}
		}
		return ""
	}

	if stamp := walk(doc); stamp != "" {
		return stamp
	}
	return title
}
