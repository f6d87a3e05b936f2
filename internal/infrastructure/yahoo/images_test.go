package yahoo

import (
	"fmt"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsLikelyProductImage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{
			name:  "auction image cdn",
			input: "https://images.auctions.yahoo.co.jp/image/foo.jpg",
			want:  true,
		},
		{
			name:  "yimg proxy with auction image path",
			input: "https://auctions.c.yimg.jp/images.auctions.yahoo.co.jp/image/abc.jpeg",
			want:  true,
		},
		{
			name:  "affiliate image cdn",
			input: "https://auctions.afimg.jp/item/image/foo.png",
			want:  true,
		},
		{
			name:  "extension followed by query string",
			input: "https://images.auctions.yahoo.co.jp/image/foo.webp?keep=1",
			want:  true,
		},
		{
			name:  "avatar host rejected regardless of path",
			input: "https://displayname-pctr.c.yimg.jp/image/foo.jpg",
			want:  false,
		},
		{
			name:  "cropped preview host rejected",
			input: "https://auc-pctr.c.yimg.jp/i/images.auctions.yahoo.co.jp/image/x.jpg",
			want:  false,
		},
		{
			name:  "tracking marker in query",
			input: "https://images.auctions.yahoo.co.jp/image/foo.jpg?nf_src=sp",
			want:  false,
		},
		{
			name:  "display-name path marker",
			input: "https://auctions.afimg.jp/d/display-name/image/foo.jpg",
			want:  false,
		},
		{
			name:  "unknown host rejected by allow-list",
			input: "https://example.com/image/foo.jpg",
			want:  false,
		},
		{
			name:  "allowed host but wrong path",
			input: "https://images.auctions.yahoo.co.jp/thumb/foo.jpg",
			want:  false,
		},
		{
			name:  "no image extension",
			input: "https://images.auctions.yahoo.co.jp/image/foo",
			want:  false,
		},
		{
			name:  "icon path still matches the allow-list",
			input: "https://auctions.afimg.jp/image/icon/foo.jpg",
			want:  true,
		},
		{
			name:  "unparseable url",
			input: "ht tp://broken",
			want:  false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, IsLikelyProductImage(tt.input))
		})
	}
}

func TestCleanImageURL_stripsTrackingParams(t *testing.T) {
	t.Parallel()

	got := CleanImageURL("https://images.auctions.yahoo.co.jp/image/foo.jpg?w=300&h=300&tag=x&nf_path=a&nf_st=b&up=1&keep=1")
	assert.Equal(t, "https://images.auctions.yahoo.co.jp/image/foo.jpg?keep=1", got)

	// パースできないものはそのまま返す
	assert.Equal(t, "ht tp://broken", CleanImageURL("ht tp://broken"))
}

func mustDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestExtractImages_seedsOGImageFirst(t *testing.T) {
	t.Parallel()

	html := `<img src="https://images.auctions.yahoo.co.jp/image/b.jpg">`
	got := ExtractImages(html, mustDoc(t, html), "https://images.auctions.yahoo.co.jp/image/a.jpg")

	assert.Equal(t, []string{
		"https://images.auctions.yahoo.co.jp/image/a.jpg",
		"https://images.auctions.yahoo.co.jp/image/b.jpg",
	}, got)
}

func TestExtractImages_ignoresOGImageFailingFilter(t *testing.T) {
	t.Parallel()

	html := `<img src="https://images.auctions.yahoo.co.jp/image/b.jpg">`
	got := ExtractImages(html, mustDoc(t, html), "https://displayname-pctr.c.yimg.jp/avatar.jpg")

	assert.Equal(t, []string{"https://images.auctions.yahoo.co.jp/image/b.jpg"}, got)
}

func TestExtractImages_decodesInlineJSONCandidates(t *testing.T) {
	t.Parallel()

	html := `{"imgHref":"https:\/\/images.auctions.yahoo.co.jp\/image\/a.jpg",` +
		`"imageUrl":"https://auctions.c.yimg.jp/images.auctions.yahoo.co.jp/image/b.jpg"}`
	got := ExtractImages(html, mustDoc(t, html), "")

	assert.Equal(t, []string{
		"https://images.auctions.yahoo.co.jp/image/a.jpg",
		"https://auctions.c.yimg.jp/images.auctions.yahoo.co.jp/image/b.jpg",
	}, got)
}

func TestExtractImages_takesFirstSrcsetToken(t *testing.T) {
	t.Parallel()

	html := `<picture><source srcset="https://images.auctions.yahoo.co.jp/image/a.jpg 1x, https://images.auctions.yahoo.co.jp/image/a-2x.jpg 2x"></picture>`
	got := ExtractImages(html, mustDoc(t, html), "")

	assert.Equal(t, []string{"https://images.auctions.yahoo.co.jp/image/a.jpg"}, got)
}

func TestExtractImages_collapsesTrackingVariants(t *testing.T) {
	t.Parallel()

	html := `<img src="https://images.auctions.yahoo.co.jp/image/a.jpg?w=120&h=120">` +
		`<img src="https://images.auctions.yahoo.co.jp/image/a.jpg?w=600&h=600">`
	got := ExtractImages(html, mustDoc(t, html), "")

	assert.Equal(t, []string{"https://images.auctions.yahoo.co.jp/image/a.jpg"}, got)
}

func TestExtractImages_rejectsIconCandidatesBeforeFiltering(t *testing.T) {
	t.Parallel()

	// 許可リスト自体は通るURLでも、抽出段階で /icon/ を含む候補は捨てられる
	iconURL := "https://auctions.afimg.jp/image/icon/foo.jpg"
	require.True(t, IsLikelyProductImage(iconURL))

	html := fmt.Sprintf(`<img src="%s">`, iconURL)
	got := ExtractImages(html, mustDoc(t, html), "")
	assert.Empty(t, got)
}

func TestExtractImages_capsAtTwenty(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, `{"imgHref":"https://images.auctions.yahoo.co.jp/image/img%02d.jpg"}`, i)
	}
	got := ExtractImages(sb.String(), mustDoc(t, ""), "")

	assert.Len(t, got, 20)
	assert.Equal(t, "https://images.auctions.yahoo.co.jp/image/img00.jpg", got[0])
	assert.Equal(t, "https://images.auctions.yahoo.co.jp/image/img19.jpg", got[19])
}

func TestExtractImages_ignoresRelativeAndNonHTTP(t *testing.T) {
	t.Parallel()

	html := `<img src="/image/a.jpg"><img src="data:image/png;base64,xxx">` +
		`<img src="https://images.auctions.yahoo.co.jp/image/real.jpg">`
	got := ExtractImages(html, mustDoc(t, html), "")

	assert.Equal(t, []string{"https://images.auctions.yahoo.co.jp/image/real.jpg"}, got)
}
