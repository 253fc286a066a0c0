package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	wttrBaseURL      = "https://wttr.in"
	wikipediaAPIURL  = "https://en.wikipedia.org/w/api.php"
	duckduckgoURL    = "https://html.duckduckgo.com/html/"
	maxWebResults    = 5
	wikiExtractLimit = 1000
)

// Searcher combines weather, encyclopedia and general web lookups into a
// single text blob for the chat context. Every provider failure is caught
// and turned into an inline note; Search never fails a chat turn.
type Searcher struct {
	Client *http.Client
}

func NewSearcher() *Searcher {
	return &Searcher{
		Client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Search inspects the query for weather and encyclopedia intent, always runs
// a general web search, and joins whatever sections produced text.
func (s *Searcher) Search(ctx context.Context, query string) string {
	var sections []string
	queryLower := strings.ToLower(query)

	if strings.Contains(queryLower, "weather") {
		if weather := s.weather(ctx, query); weather != "" {
			sections = append(sections, "=== WEATHER ===\n"+weather)
		}
	}

	if hasEncyclopediaIntent(queryLower) {
		if wiki := s.wikipedia(ctx, query); wiki != "" {
			sections = append(sections, "=== WIKIPEDIA ===\n"+wiki)
		}
	}

	if web := s.web(ctx, query); web != "" {
		sections = append(sections, "=== WEB SEARCH RESULTS ===\n"+web)
	}

	return strings.Join(sections, "\n\n")
}

func hasEncyclopediaIntent(queryLower string) bool {
	for _, marker := range []string{"who is", "what is", "define", "wiki"} {
		if strings.Contains(queryLower, marker) {
			return true
		}
	}
	return false
}

// weather asks wttr.in for a one-line report. City extraction is a crude
// keyword strip, same trade-off as the rest of the toolkit.
func (s *Searcher) weather(ctx context.Context, query string) string {
	city := strings.ToLower(query)
	city = strings.ReplaceAll(city, "weather", "")
	city = strings.ReplaceAll(city, " in ", " ")
	city = strings.TrimSpace(city)
	if city == "" {
		return ""
	}

	endpoint := fmt.Sprintf("%s/%s?format=3", wttrBaseURL, url.PathEscape(city))
	body, err := s.fetch(ctx, endpoint)
	if err != nil {
		return fmt.Sprintf("Could not fetch weather: %v", err)
	}
	return fmt.Sprintf("Weather Info: %s (Source: wttr.in)", strings.TrimSpace(string(body)))
}

type wikiQueryResponse struct {
	Query struct {
		Pages map[string]struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
		} `json:"pages"`
	} `json:"query"`
}

func (s *Searcher) wikipedia(ctx context.Context, query string) string {
	term := strings.ToLower(query)
	for _, marker := range []string{"who is", "what is", "define"} {
		term = strings.ReplaceAll(term, marker, "")
	}
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}

	params := url.Values{}
	params.Set("action", "query")
	params.Set("format", "json")
	params.Set("prop", "extracts")
	params.Set("exintro", "true")
	params.Set("explaintext", "true")
	params.Set("titles", term)

	body, err := s.fetch(ctx, wikipediaAPIURL+"?"+params.Encode())
	if err != nil {
		return fmt.Sprintf("Wikipedia search error: %v", err)
	}

	var resp wikiQueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Sprintf("Wikipedia search error: %v", err)
	}

	var sb strings.Builder
	for pageID, page := range resp.Query.Pages {
		if pageID == "-1" || page.Extract == "" {
			continue
		}
		extract := page.Extract
		if len(extract) > wikiExtractLimit {
			extract = extract[:wikiExtractLimit] + "..."
		}
		fmt.Fprintf(&sb, "Wikipedia Summary (%s):\n%s\nSource: https://en.wikipedia.org/wiki/%s\n\n",
			page.Title, extract, url.PathEscape(page.Title))
	}
	return strings.TrimSpace(sb.String())
}

// web scrapes DuckDuckGo's HTML endpoint. No official API exists, so the
// result markup is parsed with goquery.
func (s *Searcher) web(ctx context.Context, query string) string {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, "POST", duckduckgoURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; ollama-chat-be)")

	resp, err := s.Client.Do(req)
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Sprintf("Error searching web: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Sprintf("Error searching web: %v", err)
	}

	var results []string
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find(".result__a").Text())
		link, _ := sel.Find(".result__a").Attr("href")
		snippet := strings.TrimSpace(sel.Find(".result__snippet").Text())
		if title == "" {
			return true
		}
		results = append(results, fmt.Sprintf("Title: %s\nLink: %s\nSnippet: %s", title, link, snippet))
		return len(results) < maxWebResults
	})

	if len(results) == 0 {
		return "No web search results found."
	}
	return strings.Join(results, "\n\n")
}

func (s *Searcher) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
