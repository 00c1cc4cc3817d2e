package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
)

// Client calls the external text-classification service. The service is
// opaque to us: we POST a text and get back a label with a confidence.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Prediction is the classification payload returned by the service
type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type predictRequest struct {
	Text string `json:"text"`
}

// NewFromConfig creates a client from CLASSIFIER_URL. Returns nil when no
// URL is configured, which callers treat as "classification disabled".
func NewFromConfig() *Client {
	baseURL := viper.GetString("CLASSIFIER_URL")
	if baseURL == "" {
		return nil
	}

	timeout := viper.GetInt("CLASSIFIER_TIMEOUT_SECONDS")
	if timeout <= 0 {
		timeout = 5
	}

	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: time.Duration(timeout) * time.Second,
		},
	}
}

// Classify labels a piece of text, returning the predicted label.
func (c *Client) Classify(ctx context.Context, text string) (string, error) {
	prediction, err := c.Predict(ctx, text)
	if err != nil {
		return "", err
	}
	return prediction.Label, nil
}

// Predict sends the text to the classification endpoint and returns the
// full prediction payload.
func (c *Client) Predict(ctx context.Context, text string) (*Prediction, error) {
	body, err := json.Marshal(predictRequest{Text: text})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal classification request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict_tech", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("classification request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("classifier returned status: %d", resp.StatusCode)
	}

	var prediction Prediction
	if err := json.NewDecoder(resp.Body).Decode(&prediction); err != nil {
		return nil, fmt.Errorf("failed to decode classifier response: %v", err)
	}
	return &prediction, nil
}
