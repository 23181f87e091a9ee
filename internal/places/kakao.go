package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/ecocafe/internal/domain"
)

const (
	DefaultEndpoint = "https://dapi.kakao.com"
	keywordPath     = "/v2/local/search/keyword.json"
	defaultTimeout  = 5 * time.Second
	defaultBackoff  = 200 * time.Millisecond

	// maxResponseBytes caps a keyword response; a full page is a few KB.
	maxResponseBytes = 1 << 20
)

// KakaoConfig configures the Kakao Local keyword search client.
type KakaoConfig struct {
	RESTKey    string
	Endpoint   string
	Timeout    time.Duration
	MaxRetries int
	// RetryBackoff is the wait before the first retry; it grows linearly.
	RetryBackoff time.Duration
	// PageSize is the number of documents requested (1..15).
	PageSize int
}

type kakaoClient struct {
	cfg  KakaoConfig
	http *http.Client
}

// NewKakaoSearcher returns a Searcher backed by the Kakao Local API, or
// Unavailable when no REST key is configured.
func NewKakaoSearcher(cfg KakaoConfig) Searcher {
	if strings.TrimSpace(cfg.RESTKey) == "" {
		return Unavailable{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	cfg.Endpoint = strings.TrimRight(cfg.Endpoint, "/")
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RetryBackoff <= 0 {
		cfg.RetryBackoff = defaultBackoff
	}
	if cfg.PageSize <= 0 || cfg.PageSize > 15 {
		cfg.PageSize = 15
	}
	return &kakaoClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 3 * time.Second,
				}).DialContext,
			},
		},
	}
}

type kakaoResponse struct {
	Documents []kakaoDocument `json:"documents"`
}

type kakaoDocument struct {
	ID              string `json:"id"`
	PlaceName       string `json:"place_name"`
	X               string `json:"x"`
	Y               string `json:"y"`
	AddressName     string `json:"address_name"`
	RoadAddressName string `json:"road_address_name"`
}

// statusError is a non-200 response; 5xx responses are retried.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("kakao returned status %d: %s", e.code, e.body)
}

func (c *kakaoClient) Search(ctx context.Context, query string, near *domain.Coordinates) ([]Place, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var lastErr error
	for i := 0; i <= c.cfg.MaxRetries; i++ {
		if i > 0 && !sleep(ctx, time.Duration(i)*c.cfg.RetryBackoff) {
			break
		}
		resp, err := c.doRequest(ctx, query, near)
		if err == nil {
			return toPlaces(resp.Documents)
		}
		lastErr = err

		if ctx.Err() != nil || !retryable(err) {
			break
		}
	}
	return nil, fmt.Errorf("%w: %v", ErrSearchFailed, lastErr)
}

// retryable reports whether err is a 5xx response or a transport failure.
func retryable(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.code >= 500
	}
	var ue *url.Error
	var ne net.Error
	return errors.As(err, &ue) || errors.As(err, &ne)
}

// sleep waits for d and reports false if ctx ended first.
func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *kakaoClient) doRequest(ctx context.Context, query string, near *domain.Coordinates) (*kakaoResponse, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("size", strconv.Itoa(c.cfg.PageSize))
	if near != nil {
		params.Set("x", strconv.FormatFloat(near.Lng, 'f', -1, 64))
		params.Set("y", strconv.FormatFloat(near.Lat, 'f', -1, 64))
		params.Set("sort", "distance")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+keywordPath+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Authorization", "KakaoAK "+c.cfg.RESTKey)

	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{code: httpResp.StatusCode, body: string(body)}
	}

	var resp kakaoResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return &resp, nil
}

// toPlaces converts documents, preferring the road address. Documents with
// unparsable coordinates are skipped.
func toPlaces(docs []kakaoDocument) ([]Place, error) {
	out := make([]Place, 0, len(docs))
	for _, d := range docs {
		lat, errLat := strconv.ParseFloat(d.Y, 64)
		lng, errLng := strconv.ParseFloat(d.X, 64)
		if errLat != nil || errLng != nil {
			continue
		}
		out = append(out, Place{
			ID:      d.ID,
			Name:    d.PlaceName,
			Lat:     lat,
			Lng:     lng,
			Address: domain.CoalesceStr(d.RoadAddressName, d.AddressName),
		})
	}
	if len(out) == 0 {
		return nil, ErrNoResults
	}
	return out, nil
}
