package retrieval

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"policy-vault.backend/internal/domain/entities"
	domainerrors "policy-vault.backend/internal/domain/errors"
	"policy-vault.backend/internal/domain/repositories"
)

// Client forwards chatbot queries and ingestion requests to the external
// policy retrieval service.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

var _ repositories.RetrievalClient = (*Client)(nil)

// NewClient creates a retrieval service client
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type queryRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
	TopK   int    `json:"top_k"`
}

type querySource struct {
	File     string `json:"file"`
	PolicyID string `json:"policy_id"`
}

type queryResponse struct {
	Answer  string        `json:"answer"`
	Sources []querySource `json:"sources"`
}

// Query asks the retrieval service a question scoped to the user's documents
func (c *Client) Query(ctx context.Context, userID uuid.UUID, query string, topK int) (*entities.ChatAnswer, error) {
	var out queryResponse
	err := c.post(ctx, "/query", queryRequest{
		UserID: userID.String(),
		Query:  query,
		TopK:   topK,
	}, &out)
	if err != nil {
		return nil, err
	}

	sources := make([]entities.ChatSource, 0, len(out.Sources))
	for _, s := range out.Sources {
		sources = append(sources, entities.ChatSource{File: s.File, PolicyID: s.PolicyID})
	}
	return &entities.ChatAnswer{Answer: out.Answer, Sources: sources}, nil
}

type ingestRequest struct {
	PolicyID  string   `json:"policy_id"`
	UserID    string   `json:"user_id"`
	Documents []string `json:"documents"`
}

// Ingest asks the retrieval service to index a policy's documents
func (c *Client) Ingest(ctx context.Context, policyID, userID uuid.UUID, documents []string) error {
	return c.post(ctx, "/ingest", ingestRequest{
		PolicyID:  policyID.String(),
		UserID:    userID.String(),
		Documents: documents,
	}, nil)
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.ServiceUnavailable("retrieval service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Attach the upstream payload for diagnostics
		upstream, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return domainerrors.ServiceUnavailable(
			fmt.Sprintf("retrieval service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(upstream))),
			domainerrors.ErrExternalService,
		)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return domainerrors.ServiceUnavailable("invalid retrieval service response", err)
	}
	return nil
}
