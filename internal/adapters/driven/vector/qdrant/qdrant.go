// Package qdrant provides a vector index adapter using the Qdrant REST API.
package qdrant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/studykit-labs/studykit/internal/core/domain"
	"github.com/studykit-labs/studykit/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:6333"
	DefaultTimeout = 30 * time.Second

	// payloadSourceKey is the payload field points are filtered on.
	payloadSourceKey = "source_id"
)

// Config holds configuration for the Qdrant vector index.
type Config struct {
	// BaseURL is the Qdrant endpoint (default: http://localhost:6333).
	BaseURL string

	// APIKey authenticates managed Qdrant deployments (optional).
	APIKey string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// VectorIndex stores and searches vectors using Qdrant.
type VectorIndex struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewVectorIndex creates a new Qdrant vector index.
func NewVectorIndex(cfg Config) *VectorIndex {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &VectorIndex{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
	}
}

// collectionConfig is the Qdrant collection creation request.
type collectionConfig struct {
	Vectors vectorParams `json:"vectors"`
}

// vectorParams configures the collection's vector storage.
type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

// upsertRequest is the Qdrant points upsert request.
type upsertRequest struct {
	Points []pointStruct `json:"points"`
}

// pointStruct is the Qdrant point wire format.
type pointStruct struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// searchRequest is the Qdrant points search request.
type searchRequest struct {
	Vector      []float32 `json:"vector"`
	Limit       int       `json:"limit"`
	WithPayload bool      `json:"with_payload"`
	Filter      *filter   `json:"filter,omitempty"`
}

// filter restricts operations to matching points.
type filter struct {
	Must []fieldCondition `json:"must"`
}

// fieldCondition matches a payload field against a value.
type fieldCondition struct {
	Key   string     `json:"key"`
	Match matchValue `json:"match"`
}

// matchValue is the matched payload value.
type matchValue struct {
	Value any `json:"value"`
}

// deleteRequest is the Qdrant points delete-by-filter request.
type deleteRequest struct {
	Filter filter `json:"filter"`
}

// searchResponse is the Qdrant points search response.
type searchResponse struct {
	Result []struct {
		ID      any            `json:"id"`
		Score   float64        `json:"score"`
		Payload map[string]any `json:"payload"`
	} `json:"result"`
	Status any `json:"status"`
}

// collectionResponse is the Qdrant collection info response.
type collectionResponse struct {
	Result struct {
		Status      string `json:"status"`
		PointsCount int64  `json:"points_count"`
		Config      struct {
			Params struct {
				Vectors vectorParams `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}

// EnsureCollection checks whether the collection exists and creates it
// configured for cosine distance if absent. Idempotent.
func (s *VectorIndex) EnsureCollection(ctx context.Context, name string, vectorSize int) error {
	if vectorSize <= 0 {
		return fmt.Errorf("%w: vector size must be positive", domain.ErrInvalidInput)
	}

	status, _, err := s.do(ctx, http.MethodGet, "/collections/"+name, nil)
	if err != nil {
		return s.connectionError("collection check", err)
	}
	if status == http.StatusOK {
		return nil
	}
	if status != http.StatusNotFound {
		return fmt.Errorf("qdrant: collection check returned status %d", status)
	}

	body := collectionConfig{
		Vectors: vectorParams{
			Size:     vectorSize,
			Distance: "Cosine",
		},
	}
	status, respBody, err := s.do(ctx, http.MethodPut, "/collections/"+name, body)
	if err != nil {
		return s.connectionError("collection create", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant: creating collection %q failed with status %d: %s", name, status, respBody)
	}
	return nil
}

// Upsert writes or overwrites points by id, waiting for the store to
// acknowledge durability before returning.
func (s *VectorIndex) Upsert(ctx context.Context, collection string, points []driven.IndexPoint) error {
	if len(points) == 0 {
		return nil
	}

	wirePoints := make([]pointStruct, len(points))
	for i, p := range points {
		wirePoints[i] = pointStruct{
			ID:      p.ID,
			Vector:  p.Vector,
			Payload: p.Payload,
		}
	}

	path := "/collections/" + collection + "/points?wait=true"
	status, respBody, err := s.do(ctx, http.MethodPut, path, upsertRequest{Points: wirePoints})
	if err != nil {
		return s.connectionError("upsert", err)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collection)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d: %s", domain.ErrUpsertFailed, status, respBody)
	}
	return nil
}

// Search returns up to limit nearest points by cosine similarity in
// descending score order. A non-empty sourceID restricts results to
// points whose payload source_id matches.
func (s *VectorIndex) Search(ctx context.Context, collection string, vector []float32, limit int, sourceID string) ([]driven.VectorHit, error) {
	req := searchRequest{
		Vector:      vector,
		Limit:       limit,
		WithPayload: true,
	}
	if sourceID != "" {
		req.Filter = &filter{
			Must: []fieldCondition{
				{Key: payloadSourceKey, Match: matchValue{Value: sourceID}},
			},
		}
	}

	path := "/collections/" + collection + "/points/search"
	status, respBody, err := s.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, s.connectionError("search", err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collection)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d: %s", domain.ErrSearchFailed, status, respBody)
	}

	var resp searchResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", domain.ErrSearchFailed, err)
	}

	// Qdrant returns hits already ordered by descending score; that
	// ordering is trusted rather than re-sorted.
	hits := make([]driven.VectorHit, 0, len(resp.Result))
	for _, r := range resp.Result {
		hits = append(hits, driven.VectorHit{
			ID:      fmt.Sprintf("%v", r.ID),
			Score:   r.Score,
			Payload: r.Payload,
		})
	}
	return hits, nil
}

// DeleteBySource removes every point whose payload source_id matches.
func (s *VectorIndex) DeleteBySource(ctx context.Context, collection, sourceID string) error {
	if sourceID == "" {
		return fmt.Errorf("%w: source id is required", domain.ErrInvalidInput)
	}

	req := deleteRequest{
		Filter: filter{
			Must: []fieldCondition{
				{Key: payloadSourceKey, Match: matchValue{Value: sourceID}},
			},
		},
	}

	path := "/collections/" + collection + "/points/delete?wait=true"
	status, respBody, err := s.do(ctx, http.MethodPost, path, req)
	if err != nil {
		return s.connectionError("delete", err)
	}
	if status == http.StatusNotFound {
		return fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collection)
	}
	if status != http.StatusOK {
		return fmt.Errorf("qdrant: delete by source failed with status %d: %s", status, respBody)
	}
	return nil
}

// CollectionInfo returns read-only diagnostics for the collection.
func (s *VectorIndex) CollectionInfo(ctx context.Context, collection string) (*driven.CollectionInfo, error) {
	status, respBody, err := s.do(ctx, http.MethodGet, "/collections/"+collection, nil)
	if err != nil {
		return nil, s.connectionError("collection info", err)
	}
	if status == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %q", domain.ErrCollectionNotFound, collection)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("qdrant: collection info returned status %d: %s", status, respBody)
	}

	var resp collectionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("qdrant: decode collection info: %w", err)
	}

	return &driven.CollectionInfo{
		PointCount: resp.Result.PointsCount,
		VectorSize: resp.Result.Config.Params.Vectors.Size,
		Status:     resp.Result.Status,
	}, nil
}

// Close releases resources.
func (s *VectorIndex) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}

// do issues one request and returns the status code and body.
// A transport-level error (err != nil) means the endpoint never answered.
func (s *VectorIndex) do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, s.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, nil
	}
	return resp.StatusCode, respBody, nil
}

// connectionError wraps a transport failure in domain.ErrConnectionFailed.
// The message distinguishes a misconfigured endpoint from a transient
// blip: a loopback URL failing is almost always configuration, and the
// operator should be told so directly.
func (s *VectorIndex) connectionError(op string, err error) error {
	if isLoopback(s.baseURL) {
		return fmt.Errorf("%w: qdrant %s: %s is unreachable and points at a loopback address; "+
			"QDRANT_URL is likely unset or left at its local default for this environment: %w",
			domain.ErrConnectionFailed, op, s.baseURL, err)
	}
	return fmt.Errorf("%w: qdrant %s: %s is unreachable: %w",
		domain.ErrConnectionFailed, op, s.baseURL, err)
}

// isLoopback reports whether the endpoint host is a loopback address.
func isLoopback(baseURL string) bool {
	u, err := url.Parse(baseURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}
