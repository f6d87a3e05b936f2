package yahoo

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/guanrg/artstore/internal/infrastructure/htmltext"
)

const maxImageURLs = 20

// imageRule は画像URL候補の抽出ルールです
// マークアップの変化に個別対応できるよう、パーサー本体から独立した
// 名前付きルールの列として管理します。ルールの宣言順 = 候補の優先順です
type imageRule struct {
	name    string
	extract func(html string, doc *goquery.Document) []string
}

func inlineJSONRule(name, key string) imageRule {
	pattern := regexp.MustCompile(`(?i)"` + key + `"\s*:\s*"([^"]+)"`)
	return imageRule{
		name: name,
		extract: func(html string, _ *goquery.Document) []string {
			var candidates []string
			for _, match := range pattern.FindAllStringSubmatch(html, -1) {
				candidates = append(candidates, match[1])
			}
			return candidates
		},
	}
}

func attributeRule(name, selector, attr string) imageRule {
	return imageRule{
		name: name,
		extract: func(_ string, doc *goquery.Document) []string {
			if doc == nil {
				return nil
			}
			var candidates []string
			doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
				if value, ok := sel.Attr(attr); ok {
					candidates = append(candidates, value)
				}
			})
			return candidates
		},
	}
}

// imageRules はヤフオクの商品ページで画像URLが現れる箇所に対応します
// 前半はNext.jsのインラインJSON、後半は通常のimg/sourceタグです
var imageRules = []imageRule{
	inlineJSONRule("json:imgHref", "imgHref"),
	inlineJSONRule("json:imageUrl", "imageUrl"),
	inlineJSONRule("json:fullImageUrl", "fullImageUrl"),
	attributeRule("tag:img-src", "img[src]", "src"),
	attributeRule("tag:source-srcset", "source[srcset]", "srcset"),
}

var httpSchemePattern = regexp.MustCompile(`(?i)^https?://`)

// ExtractImages はOGP画像と抽出ルール群から商品画像のURL一覧を構築します
// 重複はクリーニング後のURLで排除し、最大20件・発見順で返します
func ExtractImages(html string, doc *goquery.Document, ogImage string) []string {
	urls := make([]string, 0, maxImageURLs)
	seen := make(map[string]bool)

	add := func(candidate string) {
		cleaned := CleanImageURL(candidate)
		if !seen[cleaned] {
			seen[cleaned] = true
			urls = append(urls, cleaned)
		}
	}

	if ogImage != "" && httpSchemePattern.MatchString(ogImage) && IsLikelyProductImage(ogImage) {
		add(ogImage)
	}

	for _, rule := range imageRules {
		for _, raw := range rule.extract(html, doc) {
			candidate := strings.TrimSpace(strings.ReplaceAll(htmltext.Decode(raw), `\/`, "/"))
			if !httpSchemePattern.MatchString(candidate) || strings.Contains(candidate, "/icon/") {
				continue
			}
			// srcset形式 ("url1 1x, url2 2x") は先頭のURLだけを使います
			base := strings.TrimSpace(strings.SplitN(candidate, ",", 2)[0])
			base = strings.SplitN(base, " ", 2)[0]
			if IsLikelyProductImage(base) {
				add(base)
			}
		}
	}

	if len(urls) > maxImageURLs {
		urls = urls[:maxImageURLs]
	}
	return urls
}

var imageExtensionPattern = regexp.MustCompile(`\.(jpg|jpeg|png|webp)(\?|$)`)

// IsLikelyProductImage は商品画像として採用してよいURLかを判定します
// アバターや広告の混入を避けるため、既知のCDNの許可リストに一致するものだけを
// 通します。拒否リストではない点に注意してください
func IsLikelyProductImage(input string) bool {
	u, err := url.Parse(input)
	if err != nil {
		return false
	}

	host := strings.ToLower(u.Hostname())
	path := strings.ToLower(u.Path)
	href := strings.ToLower(u.String())

	if !imageExtensionPattern.MatchString(href) {
		return false
	}

	// 出品者アバターやトリミング済みプレビューの配信元は除外します
	if strings.Contains(host, "displayname-pctr.c.yimg.jp") || strings.Contains(host, "auc-pctr.c.yimg.jp") {
		return false
	}
	if strings.Contains(href, "nf_src=") || strings.Contains(href, "/d/display-name/") {
		return false
	}

	// 商品画像を配信する既知のオリジンとパスの組み合わせのみ許可します
	if host == "images.auctions.yahoo.co.jp" && strings.Contains(path, "/image/") {
		return true
	}
	if host == "auctions.c.yimg.jp" && strings.Contains(path, "/images.auctions.yahoo.co.jp/image/") {
		return true
	}
	if host == "auctions.afimg.jp" && strings.Contains(path, "/image/") {
		return true
	}

	return false
}

var trackingParams = []string{"nf_src", "nf_path", "nf_st", "tag", "w", "h", "up"}

// CleanImageURL はトラッキング・サムネイル用のクエリパラメータを取り除きます
// 同一画像のパラメータ違いが1件に集約されるようにするためです
func CleanImageURL(input string) string {
	u, err := url.Parse(input)
	if err != nil {
		return input
	}
	query := u.Query()
	for _, param := range trackingParams {
		query.Del(param)
	}
	u.RawQuery = query.Encode()
	return u.String()
}
