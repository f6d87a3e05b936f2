package yahoo

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"testing"
	"time"

	"github.com/guanrg/artstore/internal/domain/importer"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head>
<title>Page Title Fallback</title>
<meta property="og:title" content="SEIKO &amp; Case Vintage Watch">
<meta property="og:description" content="Working condition, see photos.">
<meta property="og:image" content="https://images.auctions.yahoo.co.jp/image/main.jpg">
</head>
<body>
<script>{"currentPrice":"JPY 12,500","bidOrBuyPrice":"JPY 20,000"}</script>
<img src="https://images.auctions.yahoo.co.jp/image/sub1.jpg">
<img src="https://displayname-pctr.c.yimg.jp/seller.jpg">
</body>
</html>`

func mustParseURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("failed to parse url: %v", err)
	}
	return u
}

func TestParseAuctionPage_extractsAllFields(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://auctions.yahoo.co.jp/auction/x1234567890")
	got, err := ParseAuctionPage(pageURL, fixtureHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.AuctionID != "x1234567890" {
		t.Fatalf("AuctionID got %q, want %q", got.AuctionID, "x1234567890")
	}
	if got.Title != "SEIKO & Case Vintage Watch" {
		t.Fatalf("Title got %q", got.Title)
	}
	if got.Description != "Working condition, see photos." {
		t.Fatalf("Description got %q", got.Description)
	}
	if got.PriceJPY != 12500 {
		t.Fatalf("PriceJPY got %d, want 12500", got.PriceJPY)
	}
	wantImages := []string{
		"https://images.auctions.yahoo.co.jp/image/main.jpg",
		"https://images.auctions.yahoo.co.jp/image/sub1.jpg",
	}
	if !reflect.DeepEqual(got.ImageURLs, wantImages) {
		t.Fatalf("ImageURLs got %v, want %v", got.ImageURLs, wantImages)
	}
}

func TestParseAuctionPage_isDeterministic(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://auctions.yahoo.co.jp/auction/x1234567890")
	first, err := ParseAuctionPage(pageURL, fixtureHTML)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := ParseAuctionPage(pageURL, fixtureHTML)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("run %d differs: %+v vs %+v", i, first, again)
		}
	}
}

func TestParseAuctionPage_failsOnMalformedPath(t *testing.T) {
	t.Parallel()

	paths := []string{
		"https://auctions.yahoo.co.jp/",
		"https://auctions.yahoo.co.jp/auction/",
		"https://auctions.yahoo.co.jp/auction",
		"https://auctions.yahoo.co.jp/item/x123",
		"https://auctions.yahoo.co.jp/auction/%21%40%23",
	}

	for _, raw := range paths {
		raw := raw
		t.Run(raw, func(t *testing.T) {
			t.Parallel()
			_, err := ParseAuctionPage(mustParseURL(t, raw), fixtureHTML)
			var parseErr *importer.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected ParseError, got %v", err)
			}
		})
	}
}

func TestParseAuctionPage_fallsBackToTitleTag(t *testing.T) {
	t.Parallel()

	html := `<html><head><title>Tag Title</title></head><body></body></html>`
	pageURL := mustParseURL(t, "https://auctions.yahoo.co.jp/auction/abc123")
	got, err := ParseAuctionPage(pageURL, html)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Tag Title" {
		t.Fatalf("Title got %q, want %q", got.Title, "Tag Title")
	}
}

func TestParseAuctionPage_synthesizesFallbacks(t *testing.T) {
	t.Parallel()

	pageURL := mustParseURL(t, "https://auctions.yahoo.co.jp/auction/abc123")
	got, err := ParseAuctionPage(pageURL, "<html></html>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title != "Yahoo Auction abc123" {
		t.Fatalf("Title got %q", got.Title)
	}
	want := "Imported from Yahoo Auctions: " + pageURL.String()
	if got.Description != want {
		t.Fatalf("Description got %q, want %q", got.Description, want)
	}
	if got.PriceJPY != 0 {
		t.Fatalf("PriceJPY got %d, want 0", got.PriceJPY)
	}
	if len(got.ImageURLs) != 0 {
		t.Fatalf("ImageURLs got %v, want empty", got.ImageURLs)
	}
}

func TestExtractPriceJPY_prefersPatternsInOrder(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want int64
	}{
		{
			name: "currentPrice wins over bidOrBuyPrice",
			html: `{"bidOrBuyPrice":"2000","currentPrice":"1000"}`,
			want: 1000,
		},
		{
			name: "unit prefix and separators",
			html: `{"currentPrice":"JPY 1,234,567"}`,
			want: 1234567,
		},
		{
			name: "bare number value",
			html: `{"price":9800}`,
			want: 9800,
		},
		{
			name: "currentPriceValue as last resort",
			html: `{"currentPriceValue":"777"}`,
			want: 777,
		},
		{
			name: "zero is not plausible, falls through",
			html: `{"currentPrice":"0","price":"500"}`,
			want: 500,
		},
		{
			name: "no match",
			html: `{"something":"else"}`,
			want: 0,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := extractPriceJPY(tt.html); got != tt.want {
				t.Fatalf("extractPriceJPY got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAuctionScraper_FetchByURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auction/x1234567890" {
			fmt.Fprint(w, fixtureHTML)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	scraper := newAuctionScraper(srv.Client())

	got, err := scraper.FetchByURL(context.Background(), mustParseURL(t, srv.URL+"/auction/x1234567890"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.AuctionID != "x1234567890" {
		t.Fatalf("AuctionID got %q", got.AuctionID)
	}

	_, err = scraper.FetchByURL(context.Background(), mustParseURL(t, srv.URL+"/auction/missing1"))
	var upstreamErr *importer.UpstreamFetchError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamFetchError, got %v", err)
	}
	if upstreamErr.StatusCode != http.StatusNotFound {
		t.Fatalf("StatusCode got %d, want 404", upstreamErr.StatusCode)
	}
}

func TestNewAuctionScraper_clientTimeout(t *testing.T) {
	t.Parallel()

	scraper := NewAuctionScraper(5 * time.Second).(*auctionScraper)
	if scraper.client.Timeout != 5*time.Second {
		t.Fatalf("timeout got %v, want 5s", scraper.client.Timeout)
	}

	scraper = NewAuctionScraper(0).(*auctionScraper)
	if scraper.client.Timeout != 30*time.Second {
		t.Fatalf("default timeout got %v, want 30s", scraper.client.Timeout)
	}
}

func TestFetchHTML_invalidRequestURL(t *testing.T) {
	t.Parallel()

	_, err := fetchHTML(context.Background(), http.DefaultClient, "http://example.com/\x7f")
	var upstreamErr *importer.UpstreamFetchError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected UpstreamFetchError, got %v", err)
	}
	if upstreamErr.StatusCode != 0 {
		t.Fatalf("StatusCode got %d, want 0", upstreamErr.StatusCode)
	}
}
