package yahoo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/guanrg/artstore/internal/domain/importer"
	"github.com/guanrg/artstore/internal/domain/model"
	"github.com/guanrg/artstore/internal/domain/repository"
	"github.com/guanrg/artstore/internal/infrastructure/htmltext"
)

// auctionScraper はヤフオクの商品ページをスクレイピングして商品情報を取得する実装です
// 腐敗防止層（Anti-Corruption Layer）として、外部システムの不安定な構造を
// ドメインモデルに変換する責務を持ちます
type auctionScraper struct {
	client *http.Client
}

// defaultFetchTimeout はtimeout未指定時のHTTPクライアントのタイムアウトです
const defaultFetchTimeout = 30 * time.Second

// NewAuctionScraper は新しいスクレイパーを作成します
// timeoutが0以下の場合は既定の30秒を使います
func NewAuctionScraper(timeout time.Duration) repository.AuctionPageRepository {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return newAuctionScraper(&http.Client{Timeout: timeout})
}

// newAuctionScraper はテスト容易性のための内部コンストラクタです。
// 本番コードは NewAuctionScraper を利用し、テストでは http.Client を注入します。
func newAuctionScraper(client *http.Client) repository.AuctionPageRepository {
	return &auctionScraper{client: client}
}

// FetchByURL は検証済みのオークションURLからページを取得・解析します
func (s *auctionScraper) FetchByURL(ctx context.Context, pageURL *url.URL) (*model.ParsedAuction, error) {
	html, err := fetchHTML(ctx, s.client, pageURL.String())
	if err != nil {
		return nil, err
	}
	return ParseAuctionPage(pageURL, html)
}

var auctionIDPattern = regexp.MustCompile(`/auction/([a-zA-Z0-9]+)`)

// ParseAuctionPage はHTMLから商品情報を抽出します
// オークションIDが抽出できない場合のみ失敗し、価格や画像は取得できなくても
// フォールバック値で埋めて成功させます
func ParseAuctionPage(pageURL *url.URL, html string) (*model.ParsedAuction, error) {
	pathMatch := auctionIDPattern.FindStringSubmatch(pageURL.Path)
	if len(pathMatch) < 2 {
		return nil, &importer.ParseError{Message: "cannot parse auction ID from URL"}
	}
	auctionID := pathMatch[1]

	// goqueryのドキュメントはimg/sourceタグの抽出とtitleフォールバックに使います
	// インラインJSONやmetaタグは生のHTMLに対する正規表現で拾います
	doc, docErr := goquery.NewDocumentFromReader(strings.NewReader(html))
	if docErr != nil {
		doc = nil
	}

	ogTitle := MetaContent(html, "og:title")
	ogDescription := MetaContent(html, "og:description")
	ogImage := MetaContent(html, "og:image")
	imageURLs := ExtractImages(html, doc, ogImage)

	title := ogTitle
	if title == "" && doc != nil {
		title = htmltext.Normalize(doc.Find("title").First().Text())
	}
	if title == "" {
		title = fmt.Sprintf("Yahoo Auction %s", auctionID)
	}

	description := ogDescription
	if description == "" {
		description = fmt.Sprintf("Imported from Yahoo Auctions: %s", pageURL.String())
	}

	return &model.ParsedAuction{
		AuctionID:   auctionID,
		Title:       title,
		Description: description,
		ImageURLs:   imageURLs,
		PriceJPY:    extractPriceJPY(html),
		SourceURL:   pageURL.String(),
	}, nil
}

// pricePatterns はページ内JSONの価格フィールドを優先順に並べたものです
// "JPY" の単位プレフィックスと桁区切りカンマの両方を許容します
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)"currentPrice"\s*:\s*"?(?:JPY)?\s*([\d,]+)"?`),
	regexp.MustCompile(`(?i)"bidOrBuyPrice"\s*:\s*"?(?:JPY)?\s*([\d,]+)"?`),
	regexp.MustCompile(`(?i)"price"\s*:\s*"?(?:JPY)?\s*([\d,]+)"?`),
	regexp.MustCompile(`(?i)"currentPriceValue"\s*:\s*"?(?:JPY)?\s*([\d,]+)"?`),
}

var nonDigitPattern = regexp.MustCompile(`[^\d]`)

// extractPriceJPY は優先順に価格パターンを試し、正の数値にパースできた
// 最初の値を返します。どれも一致しない場合は0です（価格は必須ではありません）
func extractPriceJPY(html string) int64 {
	for _, pattern := range pricePatterns {
		match := pattern.FindStringSubmatch(html)
		if len(match) < 2 || match[1] == "" {
			continue
		}
		raw := nonDigitPattern.ReplaceAllString(match[1], "")
		value, err := strconv.ParseInt(raw, 10, 64)
		if err == nil && value > 0 {
			return value
		}
	}
	return 0
}
