package tools

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/firebase/genkit/go/ai"
	"github.com/firebase/genkit/go/genkit"
	readability "github.com/go-shiori/go-readability"

	"github.com/parleyhq/parley/internal/attachment"
	"github.com/parleyhq/parley/internal/log"
	"github.com/parleyhq/parley/internal/toolkit"
)

// ErrResearchFetch wraps failures to retrieve or parse a research page.
var ErrResearchFetch = errors.New("research fetch failed")

const (
	// DefaultResearchMaxLinks caps the outbound-link citations per page.
	DefaultResearchMaxLinks = 5

	defaultResearchTimeout = 15 * time.Second

	// maxBodyBytes bounds how much of a page is read.
	maxBodyBytes = 4 << 20

	// excerptLimit bounds the citation content carried into the turn.
	excerptLimit = 2000
)

// ResearchConfig configures a ResearchToolset. Zero values fall back to
// defaults.
type ResearchConfig struct {
	Client   *http.Client
	MaxLinks int
	Timeout  time.Duration
	Logger   log.Logger
}

// ResearchToolset fetches web pages and turns them into citations: the page
// itself via readability extraction, plus a capped set of outbound links.
type ResearchToolset struct {
	client   *http.Client
	maxLinks int
	logger   log.Logger
}

// NewResearchToolset creates a ResearchToolset.
func NewResearchToolset(cfg ResearchConfig) *ResearchToolset {
	client := cfg.Client
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultResearchTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	maxLinks := cfg.MaxLinks
	if maxLinks <= 0 {
		maxLinks = DefaultResearchMaxLinks
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewNop()
	}
	return &ResearchToolset{client: client, maxLinks: maxLinks, logger: logger}
}

// Tools declares the research tool.
func (ts *ResearchToolset) Tools(g *genkit.Genkit) []*toolkit.Tool {
	return []*toolkit.Tool{
		toolkit.New(g, "Research",
			"Fetch a web page and cite it. The page and its most relevant outbound links "+
				"are included automatically in the response as citations.",
			ts.research),
	}
}

// ResearchInput is the research tool's request.
type ResearchInput struct {
	URL string `json:"url"`
}

// ResearchResult carries the harvested citations back to the model. The
// first citation is always the fetched page itself.
type ResearchResult struct {
	Citations []attachment.Citation `json:"citations"`
}

func (ts *ResearchToolset) research(ctx *ai.ToolContext, in ResearchInput) (ResearchResult, error) {
	pageURL, err := url.Parse(in.URL)
	if err != nil || pageURL.Scheme == "" {
		return ResearchResult{}, fmt.Errorf("%w: invalid url %q", ErrResearchFetch, in.URL)
	}

	req, err := http.NewRequestWithContext(ctx.Context, http.MethodGet, pageURL.String(), nil)
	if err != nil {
		return ResearchResult{}, fmt.Errorf("%w: %w", ErrResearchFetch, err)
	}

	resp, err := ts.client.Do(req)
	if err != nil {
		return ResearchResult{}, fmt.Errorf("%w: %w", ErrResearchFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ResearchResult{}, fmt.Errorf("%w: %s returned %d", ErrResearchFetch, pageURL.Host, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return ResearchResult{}, fmt.Errorf("%w: %w", ErrResearchFetch, err)
	}

	citations := []attachment.Citation{ts.pageCitation(body, pageURL)}
	citations = append(citations, ts.linkCitations(body, pageURL)...)

	ts.logger.Debug("research complete", "url", pageURL.String(), "citations", len(citations))

	return ResearchResult{Citations: citations}, nil
}

// pageCitation extracts the readable article from the page. When extraction
// fails the page still gets a bare citation, so the source is never lost.
func (ts *ResearchToolset) pageCitation(body []byte, pageURL *url.URL) attachment.Citation {
	article, err := readability.FromReader(bytes.NewReader(body), pageURL)
	if err != nil {
		ts.logger.Warn("readability extraction failed", "url", pageURL.String(), "error", err)
		return attachment.Citation{Title: pageURL.String(), URL: pageURL.String()}
	}

	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = pageURL.String()
	}

	content := strings.TrimSpace(article.Excerpt)
	if content == "" {
		content = strings.TrimSpace(article.TextContent)
	}
	if len(content) > excerptLimit {
		content = content[:excerptLimit]
	}

	metadata := map[string]any{}
	if article.Byline != "" {
		metadata["byline"] = article.Byline
	}
	if article.SiteName != "" {
		metadata["site_name"] = article.SiteName
	}
	if len(metadata) == 0 {
		metadata = nil
	}

	return attachment.Citation{
		Title:    title,
		URL:      pageURL.String(),
		Content:  content,
		Metadata: metadata,
	}
}

// linkCitations collects up to maxLinks distinct outbound http(s) links,
// in document order.
func (ts *ResearchToolset) linkCitations(body []byte, pageURL *url.URL) []attachment.Citation {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		ts.logger.Warn("link extraction failed", "url", pageURL.String(), "error", err)
		return nil
	}

	var citations []attachment.Citation
	seen := map[string]bool{pageURL.String(): true}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, _ := sel.Attr("href")
		link, err := pageURL.Parse(strings.TrimSpace(href))
		if err != nil {
			return true
		}
		if link.Scheme != "http" && link.Scheme != "https" {
			return true
		}
		link.Fragment = ""

		target := link.String()
		if seen[target] {
			return true
		}
		seen[target] = true

		title := strings.TrimSpace(sel.Text())
		if title == "" {
			title = link.Host
		}

		citations = append(citations, attachment.Citation{Title: title, URL: target})
		return len(citations) < ts.maxLinks
	})

	return citations
}
