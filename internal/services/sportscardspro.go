package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/codyseavey/sportscard-tracker/internal/metrics"
	"github.com/codyseavey/sportscard-tracker/internal/models"
)

const (
	sportsCardsProBaseURL = "https://www.sportscardspro.com"
	sportsCardsProTimeout = 10 * time.Second

	defaultMaxRetries = 3
	defaultRetryDelay = 1 * time.Second

	// searchCacheSize bounds the LRU cache over search results. Searches are
	// repeated often from the UI and the upstream API is quota-limited.
	searchCacheSize = 256

	// priceMagnitudeThreshold separates dollar-decimal price payloads from
	// ones already expressed in cents.
	priceMagnitudeThreshold = 1000
)

// SportsCardsProService is the client for the SportsCardsPro pricing API.
// Requests are paced with a rate limiter and retried with linearly
// increasing backoff before failing with a SourceError.
type SportsCardsProService struct {
	client     *http.Client
	token      string
	baseURL    string
	maxRetries int
	retryDelay time.Duration
	limiter    *rate.Limiter

	searchCache *lru.Cache[string, []models.ProductRecord]
}

// NewSportsCardsProService creates a SportsCardsPro client. An empty baseURL
// selects the production endpoint.
func NewSportsCardsProService(token, baseURL string, maxRetries int, retryDelay time.Duration) *SportsCardsProService {
	if baseURL == "" {
		baseURL = sportsCardsProBaseURL
	}
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}

	cache, _ := lru.New[string, []models.ProductRecord](searchCacheSize)

	return &SportsCardsProService{
		client: &http.Client{
			Timeout: sportsCardsProTimeout,
		},
		token:       token,
		baseURL:     strings.TrimRight(baseURL, "/"),
		maxRetries:  maxRetries,
		retryDelay:  retryDelay,
		limiter:     rate.NewLimiter(rate.Every(500*time.Millisecond), 1),
		searchCache: cache,
	}
}

// rawProduct mirrors one product payload. Price fields arrive as numbers or
// strings depending on the endpoint, so they are normalized by parsePrice.
type rawProduct struct {
	ID               int         `json:"id"`
	ProductName      string      `json:"product-name"`
	ConsoleName      string      `json:"console-name"`
	Genre            string      `json:"genre"`
	ReleaseDate      string      `json:"release-date"`
	LoosePrice       interface{} `json:"loose-price"`
	ManualOnlyPrice  interface{} `json:"manual-only-price"`
	GradedPrice      interface{} `json:"graded-price"`
	NewPrice         interface{} `json:"new-price"`
	BGS10Price       interface{} `json:"bgs-10-price"`
	Condition17Price interface{} `json:"condition-17-price"`
	Condition18Price interface{} `json:"condition-18-price"`
	SalesVolume      int         `json:"sales-volume"`
}

type productResponse struct {
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error-message"`
	Product      *rawProduct `json:"product"`
	rawProduct
}

type searchResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error-message"`
	Products     []rawProduct `json:"products"`
}

// GetProduct fetches a single product by catalog ID.
func (s *SportsCardsProService) GetProduct(ctx context.Context, productID int) (*models.ProductRecord, error) {
	return s.getProduct(ctx, productID, "")
}

// GetProductByQuery fetches the best product match for a free-text query.
func (s *SportsCardsProService) GetProductByQuery(ctx context.Context, query string) (*models.ProductRecord, error) {
	return s.getProduct(ctx, 0, query)
}

func (s *SportsCardsProService) getProduct(ctx context.Context, productID int, query string) (*models.ProductRecord, error) {
	if productID <= 0 && query == "" {
		return nil, ErrMissingQuery
	}

	params := url.Values{}
	if productID > 0 {
		params.Set("id", strconv.Itoa(productID))
	}
	if query != "" {
		params.Set("search", query)
	}

	body, err := s.doRequest(ctx, "/api/product", params)
	if err != nil {
		return nil, err
	}

	var resp productResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, &SourceError{Op: "product", Err: err}
	}
	if resp.Status == "error" {
		return nil, &SourceError{Op: "product", Err: fmt.Errorf("API error: %s", resp.ErrorMessage)}
	}

	// Some responses nest the product, others inline it at the top level.
	product := resp.Product
	if product == nil {
		product = &resp.rawProduct
	}

	record := normalizeProduct(product)
	return &record, nil
}

// SearchProducts returns products matching a search query, consulting the
// LRU cache before hitting the API.
func (s *SportsCardsProService) SearchProducts(ctx context.Context, query string, limit int) ([]models.ProductRecord, error) {
	if query == "" {
		return nil, ErrMissingQuery
	}
	if limit <= 0 {
		limit = 50
	}

	cacheKey := fmt.Sprintf("%s|%d", strings.ToLower(query), limit)
	if cached, ok := s.searchCache.Get(cacheKey); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("search", query)
	params.Set("limit", strconv.Itoa(limit))

	body, err := s.doRequest(ctx, "/api/products", params)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := decodeJSON(body, &resp); err != nil {
		return nil, &SourceError{Op: "search", Err: err}
	}
	if resp.Status == "error" {
		return nil, &SourceError{Op: "search", Err: fmt.Errorf("API error: %s", resp.ErrorMessage)}
	}

	records := make([]models.ProductRecord, 0, len(resp.Products))
	for i := range resp.Products {
		records = append(records, normalizeProduct(&resp.Products[i]))
	}

	s.searchCache.Add(cacheKey, records)
	return records, nil
}

// doRequest performs an authenticated GET with retry. Transport errors and
// 5xx responses are retried up to maxRetries with linearly increasing delay;
// anything still failing is wrapped in a SourceError.
func (s *SportsCardsProService) doRequest(ctx context.Context, endpoint string, params url.Values) ([]byte, error) {
	params.Set("t", s.token)
	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, endpoint, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, &SourceError{Op: endpoint, Err: err}
		}

		metrics.SourceRequestsTotal.Inc()

		body, err := s.fetch(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if attempt < s.maxRetries {
			metrics.SourceRetriesTotal.Inc()
			select {
			case <-ctx.Done():
				return nil, &SourceError{Op: endpoint, Err: ctx.Err()}
			case <-time.After(s.retryDelay * time.Duration(attempt)):
			}
		}
	}

	metrics.SourceFailuresTotal.Inc()
	return nil, &SourceError{
		Op:  endpoint,
		Err: fmt.Errorf("request failed after %d attempts: %w", s.maxRetries, lastErr),
	}
}

func (s *SportsCardsProService) fetch(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// decodeJSON decodes with UseNumber so integer cent values survive intact
// and can be told apart from decimal dollar values.
func decodeJSON(body []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	return dec.Decode(dst)
}

func normalizeProduct(p *rawProduct) models.ProductRecord {
	return models.ProductRecord{
		ID:            p.ID,
		ProductName:   p.ProductName,
		ConsoleName:   p.ConsoleName,
		Genre:         p.Genre,
		ReleaseDate:   p.ReleaseDate,
		UngradedPrice: parsePrice(p.LoosePrice),
		PSA10Price:    parsePrice(p.ManualOnlyPrice),
		Grade9Price:   parsePrice(p.GradedPrice),
		Grade8Price:   parsePrice(p.NewPrice),
		BGS10Price:    parsePrice(p.BGS10Price),
		CGC10Price:    parsePrice(p.Condition17Price),
		SGC10Price:    parsePrice(p.Condition18Price),
		SalesVolume:   p.SalesVolume,
	}
}

// parsePrice normalizes a raw price value to cents. Whole integers pass
// through as cents; decimal values below the magnitude threshold are dollars
// and are converted; malformed or missing values become 0.
func parsePrice(value interface{}) int64 {
	switch v := value.(type) {
	case nil:
		return 0
	case json.Number:
		if !strings.Contains(v.String(), ".") {
			if cents, err := v.Int64(); err == nil {
				return cents
			}
		}
		f, err := v.Float64()
		if err != nil {
			return 0
		}
		return centsFromFloat(f)
	case string:
		if v == "" {
			return 0
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return centsFromFloat(f)
	case float64:
		return centsFromFloat(v)
	case int:
		return int64(v)
	case int64:
		return v
	default:
		return 0
	}
}

func centsFromFloat(f float64) int64 {
	if f < priceMagnitudeThreshold {
		return int64(f * 100)
	}
	return int64(f)
}
