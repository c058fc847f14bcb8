package dataflows

import (
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// NewHTTPClient builds the resty client shared by the secondary web sources.
// No retries are configured: a failed request is reported immediately.
func NewHTTPClient(timeout time.Duration, userAgent string) *resty.Client {
	client := resty.New()
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	return client
}

func checkStatus(resp *resty.Response) error {
	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Errorf("HTTP error %d from %s", resp.StatusCode(), resp.Request.URL)
	}
	return nil
}

func decodeGBK(body []byte) (string, error) {
	out, err := simplifiedchinese.GBK.NewDecoder().Bytes(body)
	if err != nil {
		return "", fmt.Errorf("failed to decode GBK body: %w", err)
	}
	return string(out), nil
}
