package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"savoria/initializers"
)

// CreateGatewaySession asks the payment provider for a checkout session and
// returns the URL the client is redirected to. With no gateway configured the
// payment stays pending for offline settlement (cash on delivery).
func CreateGatewaySession(transactionID string, amount float64) (string, error) {
	config := initializers.AppConfig
	if config.PaymentGatewayURL == "" {
		return "", nil
	}

	body, err := json.Marshal(map[string]interface{}{
		"transaction_id": transactionID,
		"amount":         amount,
		"currency":       "USD",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest(http.MethodPost, config.PaymentGatewayURL+"/sessions", bytes.NewBuffer(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+config.PaymentGatewayToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("gateway returned status %d", resp.StatusCode)
	}

	var session struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		return "", err
	}
	return session.CheckoutURL, nil
}
