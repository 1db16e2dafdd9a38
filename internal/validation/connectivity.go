package validation

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// DefaultAPITimeout bounds a single connectivity probe.
const DefaultAPITimeout = 10 * time.Second

// APITester performs the optional best-effort connectivity check: one GET
// against {baseURL}/models with a bearer token. No retries.
type APITester struct {
	client *http.Client
}

// NewAPITester creates a tester with the default 10-second timeout.
func NewAPITester() *APITester {
	return NewAPITesterWithTimeout(DefaultAPITimeout)
}

// NewAPITesterWithTimeout creates a tester with a custom timeout, for tests.
func NewAPITesterWithTimeout(timeout time.Duration) *APITester {
	return &APITester{
		client: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        4,
				IdleConnTimeout:     30 * time.Second,
				TLSHandshakeTimeout: 5 * time.Second,
			},
		},
	}
}

// CheckModels probes the provider's /models endpoint and verifies the
// configured model appears in the response. The returned error is shaped
// for direct use as a validation error string.
func (t *APITester) CheckModels(baseURL, apiKey, model string) error {
	endpoint := strings.TrimSuffix(baseURL, "/") + "/models"
	log.Debugf("connectivity check: GET %s", endpoint)

	req, err := http.NewRequest(http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("API test failed")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
			return fmt.Errorf("API test timed out after %s", t.client.Timeout)
		}
		return fmt.Errorf("API test failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("API returned status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("API test failed")
	}
	if !gjson.ValidBytes(body) {
		return fmt.Errorf("API test failed")
	}

	data := gjson.GetBytes(body, "data")
	if !data.IsArray() {
		// Endpoint answered but not in the expected list shape; the
		// connection itself is fine.
		return nil
	}
	for _, item := range data.Array() {
		if strings.EqualFold(item.Get("id").String(), model) {
			return nil
		}
	}
	return fmt.Errorf("model '%s' not available in API response", model)
}
