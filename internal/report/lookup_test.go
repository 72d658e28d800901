package report

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribeExtractsConfigCode(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.String()
		fmt.Fprint(w, `<?xml version="1.0"?><root><configCode>MacBook Pro (14-inch, 2021)</configCode></root>`)
	}))
	defer srv.Close()

	c := NewLookupClient(hostOf(t, srv), 0, "")
	desc, err := c.Describe("C02XG2JHQ6LR")
	require.NoError(t, err)
	assert.Equal(t, "MacBook Pro (14-inch, 2021)", desc)

	// Only the last four characters of the serial go over the wire.
	assert.Equal(t, "/sp/product?cc=Q6LR&lang=en_US", gotPath)
}

func TestDescribeErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<root><error>invalid code</error></root>`)
	}))
	defer srv.Close()

	c := NewLookupClient(hostOf(t, srv), 0, "")
	_, err := c.Describe("C02XG2JHQ6LR")
	assert.Error(t, err)
}

func TestDescribeNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewLookupClient(hostOf(t, srv), 0, "")
	_, err := c.Describe("C02XG2JHQ6LR")
	assert.Error(t, err)
}

func TestDescribeShortSerial(t *testing.T) {
	c := NewLookupClient("support.example", 0, "")
	_, err := c.Describe("abc")
	assert.Error(t, err)
}

func TestDescribeCachesAcrossClients(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `<configCode>Mac mini (2020)</configCode>`)
	}))
	defer srv.Close()

	cachePath := filepath.Join(t.TempDir(), "lookup-cache.json")

	c := NewLookupClient(hostOf(t, srv), 0, cachePath)
	desc, err := c.Describe("C07ZW0AAQ6NV")
	require.NoError(t, err)
	assert.Equal(t, "Mac mini (2020)", desc)
	assert.Equal(t, 1, requests)

	// A fresh client reading the same cache file never hits the server.
	c2 := NewLookupClient(hostOf(t, srv), 0, cachePath)
	desc, err = c2.Describe("C07ZW0AAQ6NV")
	require.NoError(t, err)
	assert.Equal(t, "Mac mini (2020)", desc)
	assert.Equal(t, 1, requests)
}

func TestParseDescription(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"plain", "<configCode>iMac (Retina 5K, 27-inch)</configCode>", "iMac (Retina 5K, 27-inch)", false},
		{"surrounded", "junk<configCode>Mac Pro</configCode>junk", "Mac Pro", false},
		{"empty description", "<configCode></configCode>", "", false},
		{"error substring wins", "<configCode>ok</configCode><error/>", "", true},
		{"no start marker", "Mac Pro</configCode>", "", true},
		{"no end marker", "<configCode>Mac Pro", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDescription(tt.body)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// hostOf strips the scheme from a test server URL; LookupClient builds
// plain-http URLs from a bare host.
func hostOf(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	return strings.TrimPrefix(srv.URL, "http://")
}
