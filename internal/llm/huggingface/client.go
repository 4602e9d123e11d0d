package huggingface

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api-inference.huggingface.co"

type Client struct {
	HTTPClient *http.Client
	BaseURL    string
	Token      string
	ModelID    string
	// RawEndpoint posts to BaseURL as-is instead of BaseURL/models/ModelID.
	// Used for dedicated text-generation-inference servers.
	RawEndpoint bool
}

func NewClient(baseURL string, token string, modelID string, rawEndpoint bool, timeout time.Duration) (*Client, error) {
	if modelID == "" {
		return nil, fmt.Errorf("Hugging Face model ID is required")
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &Client{
		HTTPClient:  &http.Client{Timeout: timeout},
		BaseURL:     strings.TrimRight(baseURL, "/"),
		Token:       token,
		ModelID:     modelID,
		RawEndpoint: rawEndpoint,
	}, nil
}

func (c *Client) endpoint() string {
	if c.RawEndpoint {
		return c.BaseURL
	}
	return c.BaseURL + "/models/" + c.ModelID
}
