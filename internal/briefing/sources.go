package briefing

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"

	"github.com/gfpd/contentengine/internal/workflow"
)

const (
	maxSources     = 3
	maxExtractLen  = 4000
	minExtractLen  = 100
	defaultTimeout = 15 * time.Second
)

// sourceFetcher pulls readable article text for a story's source URLs.
type sourceFetcher struct {
	client *http.Client
}

func newSourceFetcher(timeout time.Duration) *sourceFetcher {
	if timeout == 0 {
		timeout = defaultTimeout
	}
	return &sourceFetcher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// fetchAll extracts text from up to maxSources URLs. Failures are logged and
// skipped; the briefing just gets fewer extracts.
func (f *sourceFetcher) fetchAll(ctx context.Context, sources []workflow.SourceURL) string {
	var extracts []string
	for _, src := range sources {
		if len(extracts) >= maxSources {
			break
		}
		text, err := f.fetch(ctx, src.URL)
		if err != nil {
			log.Printf("skipping source %s: %v", src.URL, err)
			continue
		}
		extracts = append(extracts, fmt.Sprintf("--- %s (%s) ---\n%s", src.Title, src.Category, text))
	}
	if len(extracts) == 0 {
		return "(no source extracts available)"
	}
	return strings.Join(extracts, "\n\n")
}

func (f *sourceFetcher) fetch(ctx context.Context, articleURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "gfpd/1.0 (content research)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	parsedURL, _ := url.Parse(articleURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", err
	}

	text := strings.TrimSpace(article.TextContent)
	if len(text) < minExtractLen {
		return "", fmt.Errorf("no extractable content")
	}
	if len(text) > maxExtractLen {
		text = text[:maxExtractLen]
	}
	return text, nil
}
