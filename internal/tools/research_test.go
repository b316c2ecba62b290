package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/firebase/genkit/go/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const researchPage = `<!DOCTYPE html>
<html>
<head><title>Gopher Habitats</title></head>
<body>
<article>
<h1>Gopher Habitats</h1>
<p>Gophers are burrowing rodents found across North and Central America.
They dig extensive tunnel systems and are rarely seen above ground.
Their burrows aerate soil and shape entire grassland ecosystems over time.</p>
<p>See <a href="/local">the local page</a>,
<a href="https://example.org/rodents">Rodent Overview</a>,
<a href="https://example.org/rodents">Rodent Overview (again)</a>,
<a href="mailto:gopher@example.org">mail us</a>,
and <a href="https://example.org/soil">Soil Effects</a>.</p>
</article>
</body>
</html>`

func toolContext() *ai.ToolContext {
	return &ai.ToolContext{Context: context.Background()}
}

func TestResearch_CitesPageAndLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(researchPage))
	}))
	defer srv.Close()

	ts := NewResearchToolset(ResearchConfig{Client: srv.Client()})

	result, err := ts.research(toolContext(), ResearchInput{URL: srv.URL})
	require.NoError(t, err)
	require.NotEmpty(t, result.Citations)

	page := result.Citations[0]
	assert.Equal(t, "Gopher Habitats", page.Title)
	assert.Equal(t, srv.URL, page.URL)
	assert.NotEmpty(t, page.Content)

	var urls []string
	for _, c := range result.Citations[1:] {
		urls = append(urls, c.URL)
	}
	assert.Contains(t, urls, srv.URL+"/local")
	assert.Contains(t, urls, "https://example.org/rodents")
	assert.Contains(t, urls, "https://example.org/soil")

	for _, u := range urls {
		assert.NotContains(t, u, "mailto:")
	}
	assert.Equal(t, 3, len(urls), "duplicate links collapse to one citation")
}

func TestResearch_CapsOutboundLinks(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
			<a href="https://example.org/1">one</a>
			<a href="https://example.org/2">two</a>
			<a href="https://example.org/3">three</a>
		</body></html>`))
	}))
	defer srv.Close()

	ts := NewResearchToolset(ResearchConfig{Client: srv.Client(), MaxLinks: 2})

	result, err := ts.research(toolContext(), ResearchInput{URL: srv.URL})
	require.NoError(t, err)

	assert.Len(t, result.Citations, 3, "page citation plus two links")
}

func TestResearch_NonOKStatus(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	ts := NewResearchToolset(ResearchConfig{Client: srv.Client()})

	_, err := ts.research(toolContext(), ResearchInput{URL: srv.URL})
	assert.ErrorIs(t, err, ErrResearchFetch)
}

func TestResearch_InvalidURL(t *testing.T) {
	t.Parallel()

	ts := NewResearchToolset(ResearchConfig{})

	_, err := ts.research(toolContext(), ResearchInput{URL: "not a url"})
	assert.ErrorIs(t, err, ErrResearchFetch)
}
