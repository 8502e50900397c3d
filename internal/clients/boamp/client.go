package boamp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/lecompagnon/boamp-companion/internal/domain/models"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

const recordsURL = "https://boamp-datadila.opendatasoft.com/api/explore/v2.1/catalog/datasets/boamp/records"

var ErrNotFound = errors.New("notice not found")

type getRecordsResponse struct {
	TotalCount int      `json:"total_count"`
	Records    []Record `json:"results"`
}

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the BOAMP open-data feed. It is read-only.
type Client struct {
	httpClient  HTTPClient
	rateLimiter *rate.Limiter
}

func NewClient() *Client {
	return &Client{httpClient: &http.Client{}}
}

func (c *Client) SetHTTPClient(client HTTPClient) {
	c.httpClient = client
}

func (c *Client) SetRateLimit(maxRequestsPerSecond float32) {
	c.rateLimiter = rate.NewLimiter(rate.Limit(maxRequestsPerSecond), 1)
}

// GetTenders returns the notices matching parameters, newest first.
func (c *Client) GetTenders(ctx context.Context, parameters SearchParameters) ([]models.Tender, error) {

	if err := parameters.Validate(); err != nil {
		return nil, fmt.Errorf("invalid parameters: %w", err)
	}

	params := parameters.ToUrlParams()

	body, err := c.sendRequest(ctx, "GET", recordsURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var recordsResponse getRecordsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&recordsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	tenders := make([]models.Tender, 0, len(recordsResponse.Records))
	for _, record := range recordsResponse.Records {
		tenders = append(tenders, record.ToTender())
	}
	return tenders, nil
}

// GetTender fetches a single notice by its web ID. Returns ErrNotFound when
// the feed no longer carries it.
func (c *Client) GetTender(ctx context.Context, id string) (*models.Tender, error) {

	params := SearchParameters{Limit: 1}.ToUrlParams()
	params.Set("where", fmt.Sprintf("idweb = %q", id))

	body, err := c.sendRequest(ctx, "GET", recordsURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var recordsResponse getRecordsResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&recordsResponse); err != nil {
		return nil, fmt.Errorf("error decoding JSON response: %v", err)
	}

	if len(recordsResponse.Records) == 0 {
		return nil, ErrNotFound
	}

	tender := recordsResponse.Records[0].ToTender()
	return &tender, nil
}

func (c *Client) sendRequest(ctx context.Context, method string, url string) ([]byte, error) {

	if c.rateLimiter != nil {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %v", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	return c.handleResponse(resp)
}

func (c *Client) handleResponse(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %v, body: %v", resp.StatusCode, string(body))
	}

	return body, nil
}
