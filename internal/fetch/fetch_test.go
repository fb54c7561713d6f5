package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// loopbackOptions lets tests reach httptest servers on 127.0.0.1.
func loopbackOptions() *Options {
	opts := DefaultOptions()
	opts.AllowPrivateNetworks = true
	return opts
}

func TestURL_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.UserAgent())
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, loopbackOptions())
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, "text/html", result.ContentType)
}

func TestURL_InvalidURL(t *testing.T) {
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/file", "/relative/path", ""} {
		_, err := URL(context.Background(), raw, nil)
		require.Error(t, err, raw)

		var fetchErr *Error
		assert.ErrorAs(t, err, &fetchErr)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestURL_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	result, err := URL(context.Background(), server.URL, loopbackOptions())
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestURL_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/new", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/new", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("moved"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	result, err := URL(context.Background(), server.URL+"/old", loopbackOptions())
	require.NoError(t, err)
	assert.Equal(t, server.URL+"/new", result.URL)
}

func TestCleanWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", cleanWhitespace("  a\n\t b   c "))
	assert.Empty(t, cleanWhitespace(" \n "))
}

func TestDetectPlatform(t *testing.T) {
	tests := map[string]Platform{
		"https://github.com/user/repo":        PlatformGitHub,
		"https://user.github.io/site":         PlatformGitHub,
		"https://gitlab.com/group/project":    PlatformGitLab,
		"https://www.youtube.com/watch?v=abc": PlatformYouTube,
		"https://youtu.be/abc":                PlatformYouTube,
		"https://www.figma.com/file/xyz":      PlatformFigma,
		"https://notgithub.com/x":             PlatformWebsite,
		"https://example.com":                 PlatformWebsite,
		"::bad::":                             PlatformWebsite,
	}
	for raw, want := range tests {
		assert.Equal(t, want, DetectPlatform(raw), raw)
	}
	assert.True(t, strings.HasPrefix(string(PlatformGitHub), "git"))
}
