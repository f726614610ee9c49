package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

const (
	searchBaseURL = "https://openlibrary.org/search.json"
	coverBaseURL  = "https://covers.openlibrary.org/b/id"
	defaultLimit  = 10
)

// SearchBooks searches Open Library for works matching the query.
func (c *Client) SearchBooks(ctx context.Context, query string) ([]BookResult, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("fields", "key,title,author_name,author_key,first_publish_year,cover_i")
	params.Set("limit", fmt.Sprintf("%d", defaultLimit))

	searchURL := searchBaseURL + "?" + params.Encode()

	c.logger.Debug("searching Open Library",
		"query", query,
		"url", searchURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp searchResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	c.logger.Debug("Open Library search results",
		"query", query,
		"count", searchResp.NumFound,
	)

	results := make([]BookResult, 0, len(searchResp.Docs))
	for i := range searchResp.Docs {
		doc := &searchResp.Docs[i]
		workKey := workKeyFromPath(doc.Key)
		if workKey == "" || doc.Title == "" {
			continue
		}

		result := BookResult{
			WorkKey:    workKey,
			Title:      doc.Title,
			Authors:    doc.AuthorName,
			AuthorKeys: doc.AuthorKey,
			Year:       doc.FirstPublishYear,
		}
		if doc.CoverID > 0 {
			result.CoverURL = fmt.Sprintf("%s/%d-L.jpg", coverBaseURL, doc.CoverID)
		}

		results = append(results, result)
	}

	return results, nil
}

// GetWork fetches a single work by its Open Library work key.
// It reuses the search endpoint with a key query, which returns the same
// document shape as a search.
func (c *Client) GetWork(ctx context.Context, workKey string) (*BookResult, error) {
	results, err := c.SearchBooks(ctx, "key:/works/"+workKey)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if results[i].WorkKey == workKey {
			return &results[i], nil
		}
	}
	return nil, fmt.Errorf("work %s not found", workKey)
}

// workKeyFromPath extracts "OL45804W" from "/works/OL45804W".
func workKeyFromPath(path string) string {
	const prefix = "/works/"
	if !strings.HasPrefix(path, prefix) {
		return ""
	}
	return strings.TrimPrefix(path, prefix)
}
