package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/CarolGonzaga/projeto-audiomante/internal/domain"
	"github.com/CarolGonzaga/projeto-audiomante/pkg/cache"
)

const suggestionsCacheKey = "catalog:suggestions"

// suggestionVolumeIDs is the curated list served by the suggestions feed.
var suggestionVolumeIDs = []string{
	"q71zEAAAQBAJ",
	"fDxUEQAAQBAJ",
	"M_TZEAAAQBAJ",
	"KjnNEAAAQBAJ",
	"j17iEAAAQBAJ",
	"0cTYEAAAQBAJ",
	"vM3AEAAAQBAJ",
	"oFhNEAAAQBAJ",
	"Prc0AgAAQBAJ",
	"QzEtDwAAQBAJ",
	"o7aZDwAAQBAJ",
	"2x0xEAAAQBAJ",
}

// CatalogService proxies the Google Books API and serves the cached
// suggestions feed.
type CatalogService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	cache   *cache.Cache
	ttl     time.Duration
	log     *zap.SugaredLogger
}

// Suggestion is the normalized view the client renders in the home grid.
type Suggestion struct {
	GoogleID    string  `json:"googleId"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	CoverURL    *string `json:"coverUrl"`
	Description *string `json:"description"`
	PageCount   *int    `json:"pageCount"`
}

// volume mirrors the slice of the Google Books payload we read.
type volume struct {
	ID         string `json:"id"`
	VolumeInfo struct {
		Title      string   `json:"title"`
		Authors    []string `json:"authors"`
		Desc       *string  `json:"description"`
		PageCount  *int     `json:"pageCount"`
		ImageLinks *struct {
			Thumbnail *string `json:"thumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

func NewCatalogService(baseURL, apiKey string, cache *cache.Cache, ttl time.Duration, log *zap.SugaredLogger) *CatalogService {
	return &CatalogService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		cache:   cache,
		ttl:     ttl,
		log:     log,
	}
}

// Search passes the query through to the volumes endpoint and returns the
// upstream payload untouched.
func (s *CatalogService) Search(ctx context.Context, query string) (json.RawMessage, error) {
	if query == "" {
		return nil, fmt.Errorf("search term is required: %w", domain.ErrValidation)
	}

	params := url.Values{}
	params.Set("q", query)
	if s.apiKey != "" {
		params.Set("key", s.apiKey)
	}

	body, err := s.get(ctx, s.baseURL+"/volumes?"+params.Encode())
	if err != nil {
		return nil, err
	}

	return json.RawMessage(body), nil
}

// Suggestions fetches the curated volumes, skipping the ones Google fails
// to return. The normalized list is cached so the fixed set is not
// re-fetched on every page load.
func (s *CatalogService) Suggestions(ctx context.Context) ([]Suggestion, error) {
	if s.cache != nil {
		var cached []Suggestion
		hit, err := s.cache.GetJSON(ctx, suggestionsCacheKey, &cached)
		if err != nil {
			s.log.Warnw("suggestions cache read failed", "error", err)
		} else if hit {
			return cached, nil
		}
	}

	results := make([]*Suggestion, len(suggestionVolumeIDs))
	var wg sync.WaitGroup
	for i, id := range suggestionVolumeIDs {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			sg, err := s.fetchVolume(ctx, id)
			if err != nil {
				s.log.Warnw("suggestion lookup failed", "volume_id", id, "error", err)
				return
			}
			results[i] = sg
		}(i, id)
	}
	wg.Wait()

	suggestions := make([]Suggestion, 0, len(results))
	for _, r := range results {
		if r != nil {
			suggestions = append(suggestions, *r)
		}
	}

	if s.cache != nil && len(suggestions) > 0 {
		if err := s.cache.SetJSON(ctx, suggestionsCacheKey, suggestions, s.ttl); err != nil {
			s.log.Warnw("suggestions cache write failed", "error", err)
		}
	}

	return suggestions, nil
}

func (s *CatalogService) fetchVolume(ctx context.Context, id string) (*Suggestion, error) {
	u := s.baseURL + "/volumes/" + url.PathEscape(id)
	if s.apiKey != "" {
		u += "?key=" + url.QueryEscape(s.apiKey)
	}

	body, err := s.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var v volume
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode volume %s: %w", id, err)
	}

	author := "Autor desconhecido"
	if len(v.VolumeInfo.Authors) > 0 {
		author = strings.Join(v.VolumeInfo.Authors, ", ")
	}

	sg := &Suggestion{
		GoogleID:    v.ID,
		Title:       v.VolumeInfo.Title,
		Author:      author,
		Description: v.VolumeInfo.Desc,
		PageCount:   v.VolumeInfo.PageCount,
	}
	if v.VolumeInfo.ImageLinks != nil {
		sg.CoverURL = v.VolumeInfo.ImageLinks.Thumbnail
	}

	return sg, nil
}

func (s *CatalogService) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google books request failed: %w", domain.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google books returned %d: %w", resp.StatusCode, domain.ErrUpstream)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read google books response: %w", domain.ErrUpstream)
	}

	return body, nil
}
