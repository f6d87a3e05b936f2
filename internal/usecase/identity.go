package usecase

import (
	"fmt"
	"hash/fnv"
	"regexp"
	"strings"
)

// ExternalIDFor はオークションIDから永続的な外部キーを導出します
// 再インポートの検出はこのキーで行います
func ExternalIDFor(auctionID string) string {
	return "yahoo:" + auctionID
}

var (
	nonSlugPattern  = regexp.MustCompile(`[^a-z0-9]+`)
	edgeDashPattern = regexp.MustCompile(`^-+|-+$`)
)

// HandleFor はオークションIDからURLスラッグを導出します
// external_id 導入前に作られたレコードの照合キーを兼ねます
func HandleFor(auctionID string) string {
	handle := toHandle("yahoo-" + auctionID)
	if handle == "" {
		handle = "yahoo-" + auctionID
	}
	return handle
}

func toHandle(input string) string {
	slug := strings.ToLower(input)
	slug = nonSlugPattern.ReplaceAllString(slug, "-")
	slug = edgeDashPattern.ReplaceAllString(slug, "")
	if len(slug) > 80 {
		slug = slug[:80]
	}
	return slug
}

// SKUFor はオークションIDから決定的なSKUを導出します
// サフィックスはIDのハッシュ値から作るため、同一オークションの再インポートでも
// SKUは変わりません（時刻由来にすると更新のたびにSKUが揺れてしまうため）
func SKUFor(auctionID string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(auctionID))
	return fmt.Sprintf("YAHOO-%s-%06d", auctionID, h.Sum32()%1000000)
}
