package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPPushClient sends one message per registration token through the
// push-notification gateway.
type HTTPPushClient struct {
	URL    string
	APIKey string
	client *http.Client
}

func NewHTTPPushClient(url, apiKey string) *HTTPPushClient {
	return &HTTPPushClient{
		URL:    url,
		APIKey: apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type pushRequest struct {
	Token string `json:"token"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

type pushErrorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPPushClient) Send(ctx context.Context, token, subject, body string) error {
	requestBodyBytes, err := json.Marshal(pushRequest{
		Token: token,
		Title: subject,
		Body:  body,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/send", c.URL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "key="+c.APIKey)

	response, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return nil
	}
	var errResp pushErrorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return fmt.Errorf("push gateway returned %s", response.Status)
	}
	return errors.New(errResp.Error)
}
