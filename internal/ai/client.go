package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	commandParseTextCV = "PARSE_TEXT_CV"
	serviceAPIKey      = "parserMS"
)

// ErrMicroservice marks any failure of the AI extraction call: transport
// errors, non-success status, or a response that does not match the contract.
var ErrMicroservice = errors.New("error communicating with microservice")

// Client abstracts the AI text-extraction microservice.
type Client interface {
	ExtractCV(ctx context.Context, text string) (json.RawMessage, error)
}

// HTTPClient talks to the AI microservice over its command endpoint.
type HTTPClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewHTTPClient constructs an HTTPClient for the given endpoint.
func NewHTTPClient(endpoint string) *HTTPClient {
	timeout := 60 * time.Second
	if raw := strings.TrimSpace(os.Getenv("AI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &HTTPClient{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

type commandRequest struct {
	Command   string `json:"command"`
	APIKey    string `json:"apiKey"`
	TextInput string `json:"textInput"`
}

type commandResponse struct {
	Response struct {
		Data string `json:"data"`
	} `json:"response"`
}

// ExtractCV sends extracted CV text to the microservice and returns the
// structured object it produced. The response nests a JSON-encoded object
// inside response.data.
func (c *HTTPClient) ExtractCV(ctx context.Context, text string) (json.RawMessage, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: empty text input", ErrMicroservice)
	}

	payload, err := json.Marshal(commandRequest{
		Command:   commandParseTextCV,
		APIKey:    serviceAPIKey,
		TextInput: text,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMicroservice, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMicroservice, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMicroservice, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMicroservice, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrMicroservice, resp.StatusCode)
	}

	var parsed commandResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("%w: response parse: %v", ErrMicroservice, err)
	}
	data := strings.TrimSpace(parsed.Response.Data)
	if data == "" {
		return nil, fmt.Errorf("%w: response missing data field", ErrMicroservice)
	}

	var structured map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &structured); err != nil {
		return nil, fmt.Errorf("%w: response data is not a JSON object: %v", ErrMicroservice, err)
	}
	return json.RawMessage(data), nil
}

var _ Client = (*HTTPClient)(nil)
