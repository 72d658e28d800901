package report

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"assetctl/internal/logger"
	"assetctl/internal/state"
)

// Markers delimiting the description in the lookup response body.
const (
	descStart = "<configCode>"
	descEnd   = "</configCode>"
)

// LookupClient resolves a serial number to its marketing model description
// by querying the support endpoint with the serial's last four characters.
// Successful lookups are cached in a JSON file across runs.
type LookupClient struct {
	host      string
	client    *http.Client
	cachePath string
	cache     *state.State
}

// NewLookupClient returns a client querying host. timeout 0 means no
// timeout: the lookup blocks until the server answers. cachePath may be
// empty to disable caching.
func NewLookupClient(host string, timeout time.Duration, cachePath string) *LookupClient {
	c := &LookupClient{
		host:      host,
		client:    &http.Client{Timeout: timeout},
		cachePath: cachePath,
		cache:     &state.State{Descriptions: make(map[string]string)},
	}
	if cachePath != "" {
		c.cache = state.Load(cachePath)
	}
	return c
}

// Describe returns the model description for the given serial number.
// The response body is rejected when it contains the substring "error";
// otherwise the description is the text between the configCode markers.
func (c *LookupClient) Describe(serial string) (string, error) {
	if len(serial) < 4 {
		return "", fmt.Errorf("serial %q too short for a config code", serial)
	}
	code := serial[len(serial)-4:]

	if desc, ok := c.cache.Descriptions[code]; ok {
		logger.Debug("[DEBUG] Using cached description for config code %s\n", code)
		return desc, nil
	}

	url := fmt.Sprintf("http://%s/sp/product?cc=%s&lang=en_US", c.host, code)
	logger.Debug("[DEBUG] Fetching model description from URL: %s\n", url)

	resp, err := c.client.Get(url)
	if err != nil {
		return "", fmt.Errorf("HTTP GET error fetching description for code %s: %w", code, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("description fetch for code %s failed: HTTP status %d", code, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read description response for code %s: %w", code, err)
	}

	desc, err := parseDescription(string(body))
	if err != nil {
		return "", fmt.Errorf("description lookup for code %s: %w", code, err)
	}

	if c.cachePath != "" {
		c.cache.Descriptions[code] = desc
		state.Save(c.cachePath, c.cache)
	}
	return desc, nil
}

// parseDescription extracts the description from a lookup response body.
func parseDescription(body string) (string, error) {
	if strings.Contains(body, "error") {
		return "", fmt.Errorf("server reported an error")
	}
	start := strings.Index(body, descStart)
	if start < 0 {
		return "", fmt.Errorf("response has no %s marker", descStart)
	}
	rest := body[start+len(descStart):]
	end := strings.Index(rest, descEnd)
	if end < 0 {
		return "", fmt.Errorf("response has no %s marker", descEnd)
	}
	return rest[:end], nil
}
