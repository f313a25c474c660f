package paygate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/maru-commerce/maru-order-service/internal/domain"
)

// HTTPGatewayClient talks to the card/bank payment gateway. Merchant
// credentials are injected, never hard-coded.
type HTTPGatewayClient struct {
	BaseURL    string
	MerchantID string
	ClientKey  string
	client     *http.Client
}

func NewHTTPGatewayClient(baseURL, merchantID, clientKey string) *HTTPGatewayClient {
	return &HTTPGatewayClient{
		BaseURL:    baseURL,
		MerchantID: merchantID,
		ClientKey:  clientKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type approveRequest struct {
	MerchantID    string `json:"merchantId"`
	TransactionID string `json:"transactionId"`
	Amount        int64  `json:"amount"`
}

type approveResponse struct {
	ResultCode string `json:"resultCode"`
	Message    string `json:"message"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *HTTPGatewayClient) Approve(ctx context.Context, transactionID string, amount int64) (*domain.GatewayResult, error) {
	requestBodyBytes, err := json.Marshal(approveRequest{
		MerchantID:    c.MerchantID,
		TransactionID: transactionID,
		Amount:        amount,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/v1/payments/approve", c.BaseURL), bytes.NewBuffer(requestBodyBytes))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.ClientKey)

	response, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()
	responseBodyBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, err
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		var approved approveResponse
		if err := json.Unmarshal(responseBodyBytes, &approved); err != nil {
			return nil, err
		}
		return &domain.GatewayResult{
			Approved:   approved.ResultCode == "0000",
			ResultCode: approved.ResultCode,
			RawPayload: string(responseBodyBytes),
		}, nil
	}

	var errResp errorResponse
	if err := json.Unmarshal(responseBodyBytes, &errResp); err != nil {
		return nil, fmt.Errorf("gateway returned %s", response.Status)
	}
	return nil, errors.New(errResp.Error)
}
