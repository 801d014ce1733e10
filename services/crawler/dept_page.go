package crawler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/net/html"
)

const (
	defaultTimeout  = 10 * time.Second
	maxBodyBytes    = 1 << 20 // pages beyond 1MB are cut off
	maxSnippetRunes = 300
	userAgent       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

// PageCrawler fetches a university or department web page and extracts a
// short descriptive snippet to feed into the enrichment prompt.
type PageCrawler struct {
	httpClient *http.Client
}

// NewPageCrawler creates a crawler with a bounded request timeout.
func NewPageCrawler(timeout time.Duration) *PageCrawler {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PageCrawler{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchSnippet downloads the page and returns a short description of it.
// The meta description wins when present; otherwise the first paragraph of
// meaningful length is used. An empty snippet with nil error means the page
// had nothing usable.
func (c *PageCrawler) FetchSnippet(ctx context.Context, pageURL string) (string, error) {
	htmlContent, err := c.fetchHTML(ctx, pageURL)
	if err != nil {
		return "", err
	}

	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", err
	}

	if meta := metaDescription(doc); meta != "" {
		return truncateRunes(meta, maxSnippetRunes), nil
	}
	if para := firstParagraph(doc); para != "" {
		return truncateRunes(para, maxSnippetRunes), nil
	}
	return "", nil
}

func (c *PageCrawler) fetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// metaDescription walks the tree looking for <meta name="description">.
func metaDescription(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			var name, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "name", "property":
					name = strings.ToLower(attr.Val)
				case "content":
					content = attr.Val
				}
			}
			if (name == "description" || name == "og:description") && strings.TrimSpace(content) != "" {
				found = strings.TrimSpace(content)
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return found
}

// firstParagraph returns the text of the first <p> node with enough content
// to be a real sentence rather than navigation chrome.
func firstParagraph(doc *html.Node) string {
	const minParagraphRunes = 30

	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "p" {
			text := strings.TrimSpace(nodeText(n))
			if utf8.RuneCountInString(text) >= minParagraphRunes {
				found = text
				return
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)
	return found
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func truncateRunes(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}
