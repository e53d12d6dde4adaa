package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

var httpClient = &http.Client{Timeout: 10 * time.Second}

// postJSON sends a JSON payload and decodes the JSON response into out.
// Non-2xx responses are turned into an error carrying the server's detail.
func postJSON(url string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, resp.Body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func getJSON(url string, out any) error {
	resp, err := httpClient.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apiError(resp.StatusCode, resp.Body)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func apiError(status int, body io.Reader) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err == nil && payload.Detail != "" {
		return fmt.Errorf("server returned %d: %s", status, payload.Detail)
	}
	return fmt.Errorf("server returned %d", status)
}
