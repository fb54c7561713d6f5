package fetch

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// MaxDescriptionRunes truncates long descriptions.
const MaxDescriptionRunes = 300

// DefaultCacheTTL is how long a preview is reused.
const DefaultCacheTTL = time.Hour

// DefaultMaxCacheEntries bounds the preview cache.
const DefaultMaxCacheEntries = 1024

// Preview is the card shown for a project link.
type Preview struct {
	URL         string   `json:"url"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
	SiteName    string   `json:"site_name,omitempty"`
	Platform    Platform `json:"platform"`
}

// ParsePreview extracts Open Graph / Twitter card metadata from html,
// falling back to <title>, the first <h1>, meta description and the first
// paragraph. Relative image URLs are resolved against pageURL.
func ParsePreview(html, pageURL string) (*Preview, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	meta := func(keys ...string) string {
		for _, key := range keys {
			sel := fmt.Sprintf(`meta[property=%q], meta[name=%q]`, key, key)
			if v, ok := doc.Find(sel).First().Attr("content"); ok {
				if v = cleanWhitespace(v); v != "" {
					return v
				}
			}
		}
		return ""
	}
	text := func(selector string) string {
		return cleanWhitespace(doc.Find(selector).First().Text())
	}

	p := &Preview{
		URL:         pageURL,
		Title:       firstNonEmpty(meta("og:title", "twitter:title"), text("title"), text("h1")),
		Description: firstNonEmpty(meta("og:description", "twitter:description", "description"), text("p")),
		SiteName:    meta("og:site_name"),
		Platform:    DetectPlatform(pageURL),
	}
	p.Description = truncateRunes(p.Description, MaxDescriptionRunes)
	if img := meta("og:image", "og:image:url", "twitter:image"); img != "" {
		p.ImageURL = resolveURL(pageURL, img)
	}
	return p, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "…"
}

func resolveURL(base, ref string) string {
	refURL, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return refURL.String()
	}
	return baseURL.ResolveReference(refURL).String()
}

// PreviewerConfig configures a Previewer.
type PreviewerConfig struct {
	Options        *Options
	UseBrowser     bool
	BrowserTimeout time.Duration
	CacheTTL       time.Duration
	MaxEntries     int
	// Render replaces headless Chrome; tests use it to avoid a browser.
	Render RenderFunc
}

type cacheEntry struct {
	preview *Preview
	expires time.Time
}

// Previewer fetches link previews, caching successes in memory. It is safe
// for concurrent use.
type Previewer struct {
	cfg PreviewerConfig
	now func() time.Time

	mu    sync.Mutex
	cache map[string]cacheEntry
}

// NewPreviewer creates a Previewer, filling unset config with defaults.
func NewPreviewer(cfg PreviewerConfig) *Previewer {
	if cfg.Options == nil {
		cfg.Options = DefaultOptions()
	}
	if cfg.BrowserTimeout == 0 {
		cfg.BrowserTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxCacheEntries
	}
	if cfg.Render == nil {
		cfg.Render = WithBrowser
	}
	return &Previewer{cfg: cfg, now: time.Now, cache: make(map[string]cacheEntry)}
}

// Preview returns the preview for urlStr. When the plain fetch yields no
// title (typical of client-rendered pages) and browser rendering is
// enabled, the page is rendered in headless Chrome and parsed again.
func (p *Previewer) Preview(ctx context.Context, urlStr string) (*Preview, error) {
	parsed, err := ValidateURL(urlStr)
	if err != nil {
		return nil, err
	}
	key := parsed.String()

	if cached, ok := p.lookup(key); ok {
		return cached, nil
	}

	var preview *Preview
	result, fetchErr := URL(ctx, key, p.cfg.Options)
	if fetchErr == nil {
		preview, err = ParsePreview(result.HTML, result.URL)
		if err != nil {
			return nil, err
		}
	}

	wantBrowser := preview == nil || preview.Title == "" || needsBrowser(DetectPlatform(key))
	if p.cfg.UseBrowser && wantBrowser {
		html, err := p.render(ctx, parsed.Hostname(), key)
		if err != nil {
			log.Printf("[preview] browser fallback failed for %s: %v", key, err)
		} else if rendered, err := ParsePreview(html, key); err == nil && rendered.Title != "" {
			preview = rendered
		}
	}

	if preview == nil {
		return nil, fetchErr
	}
	if preview.Title == "" {
		preview.Title = parsed.Hostname()
	}
	p.store(key, preview)
	return preview, nil
}

func (p *Previewer) render(ctx context.Context, host, key string) (string, error) {
	if !p.cfg.Options.AllowPrivateNetworks {
		if err := CheckHost(ctx, host); err != nil {
			return "", err
		}
	}
	return p.cfg.Render(ctx, key, p.cfg.BrowserTimeout)
}

func (p *Previewer) lookup(key string) (*Preview, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	entry, ok := p.cache[key]
	if !ok {
		return nil, false
	}
	if p.now().After(entry.expires) {
		delete(p.cache, key)
		return nil, false
	}
	clone := *entry.preview
	return &clone, true
}

func (p *Previewer) store(key string, preview *Preview) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	for k, entry := range p.cache {
		if now.After(entry.expires) {
			delete(p.cache, k)
		}
	}
	if _, ok := p.cache[key]; !ok && len(p.cache) >= p.cfg.MaxEntries {
		p.evictOldest()
	}
	clone := *preview
	p.cache[key] = cacheEntry{preview: &clone, expires: now.Add(p.cfg.CacheTTL)}
}

// evictOldest drops the entry closest to expiry. Callers hold p.mu.
func (p *Previewer) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, entry := range p.cache {
		if oldestKey == "" || entry.expires.Before(oldest) {
			oldestKey, oldest = k, entry.expires
		}
	}
	delete(p.cache, oldestKey)
}

// Invalidate drops a cached preview.
func (p *Previewer) Invalidate(urlStr string) {
	parsed, err := ValidateURL(urlStr)
	if err != nil {
		return
	}
	p.mu.Lock()
	delete(p.cache, parsed.String())
	p.mu.Unlock()
}
