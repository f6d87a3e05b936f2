package usecase

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"strings"

	"github.com/guanrg/artstore/internal/domain/importer"
	"github.com/guanrg/artstore/internal/domain/model"
	"github.com/guanrg/artstore/internal/domain/repository"
	"go.uber.org/zap"
)

// yahooAuctionHost はインポートを受け付ける唯一のホストです
const yahooAuctionHost = "auctions.yahoo.co.jp"

var auctionPathPattern = regexp.MustCompile(`/auction/[a-zA-Z0-9]+`)

// ImportInput はインポートユースケースへの入力です
type ImportInput struct {
	URL        string
	PriceAUD   float64 // 0以下なら円価格からの換算を使います
	Publish    bool
	Translate  bool
	TargetLang string // 空ならデフォルト（設定値）を使います
}

// ImportUsecase はヤフオクのインポートパイプライン全体を調停します
// 検証 → 取得 → 解析 → （翻訳） → 照合 の直列パイプラインで、
// リトライや中間状態の永続化は行いません
type ImportUsecase struct {
	pages      repository.AuctionPageRepository
	products   repository.ProductRepository
	setup      repository.StoreSetupRepository
	translator repository.Translator
	sourceLang string
	targetLang string
	log        *zap.Logger
}

// NewImportUsecase は新しいImportUsecaseインスタンスを作成します
func NewImportUsecase(
	pages repository.AuctionPageRepository,
	products repository.ProductRepository,
	setup repository.StoreSetupRepository,
	translator repository.Translator,
	sourceLang, targetLang string,
	log *zap.Logger,
) *ImportUsecase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImportUsecase{
		pages:      pages,
		products:   products,
		setup:      setup,
		translator: translator,
		sourceLang: normalizeLanguageTag(sourceLang, "ja"),
		targetLang: normalizeLanguageTag(targetLang, "zh-CN"),
		log:        log,
	}
}

// Import はオークションURLを1件インポートします
func (u *ImportUsecase) Import(ctx context.Context, input ImportInput) (*model.ImportResult, error) {
	pageURL, err := u.validateURL(input.URL)
	if err != nil {
		return nil, err
	}

	parsed, err := u.pages.FetchByURL(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	u.log.Info("auction page parsed",
		zap.String("auction_id", parsed.AuctionID),
		zap.Int64("price_jpy", parsed.PriceJPY),
		zap.Int("image_count", len(parsed.ImageURLs)),
	)

	translated, translationError := u.translateIfRequested(ctx, input, parsed)

	result, err := u.reconcile(ctx, input, parsed, translated, translationError)
	if err != nil {
		return nil, err
	}

	u.log.Info("import finished",
		zap.String("auction_id", parsed.AuctionID),
		zap.String("mode", string(result.Mode)),
		zap.String("product_id", result.Product.ID),
	)
	return result, nil
}

// validateURL は入力URLを検証します。ネットワークアクセスより前に完了します
func (u *ImportUsecase) validateURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, &importer.ValidationError{Message: "Missing URL"}
	}

	pageURL, err := url.Parse(trimmed)
	if err != nil || !pageURL.IsAbs() || pageURL.Hostname() == "" {
		return nil, &importer.ValidationError{Message: "Invalid URL format"}
	}

	if pageURL.Hostname() != yahooAuctionHost || !auctionPathPattern.MatchString(pageURL.Path) {
		return nil, &importer.ValidationError{
			Message: "Only auctions.yahoo.co.jp auction detail URLs are supported",
		}
	}

	return pageURL, nil
}

// translateIfRequested は翻訳を試み、失敗してもエラーメッセージを返すだけで
// インポート自体は止めません（翻訳はfail-softです）
func (u *ImportUsecase) translateIfRequested(
	ctx context.Context,
	input ImportInput,
	parsed *model.ParsedAuction,
) (*model.TranslationResult, string) {
	if !input.Translate || u.translator == nil {
		return nil, ""
	}

	translated, err := u.translator.Translate(ctx, model.TranslationRequest{
		Title:       parsed.Title,
		Description: parsed.Description,
		SourceLang:  u.sourceLang,
		TargetLang:  normalizeLanguageTag(input.TargetLang, u.targetLang),
	})
	if err != nil {
		u.log.Warn("translation failed",
			zap.String("auction_id", parsed.AuctionID),
			zap.Error(err),
		)
		return nil, err.Error()
	}
	return translated, ""
}

// reconcile は解析結果を既存の商品レコードと突き合わせ、作成または更新します
func (u *ImportUsecase) reconcile(
	ctx context.Context,
	input ImportInput,
	parsed *model.ParsedAuction,
	translated *model.TranslationResult,
	translationError string,
) (*model.ImportResult, error) {
	shippingProfileID, err := u.setup.DefaultShippingProfileID(ctx)
	if err != nil {
		return nil, &importer.ReconciliationError{Err: err}
	}
	if shippingProfileID == "" {
		return nil, &importer.ConfigurationError{
			Message: "Default shipping profile not found. Run seed first.",
		}
	}

	salesChannelID, err := u.setup.DefaultSalesChannelID(ctx)
	if err != nil {
		return nil, &importer.ReconciliationError{Err: err}
	}
	stockLocationID, err := u.setup.DefaultStockLocationID(ctx)
	if err != nil {
		return nil, &importer.ReconciliationError{Err: err}
	}

	// 初回セットアップの紐付け。両方のIDが解決できた場合のみ行います（冪等）
	if salesChannelID != "" && stockLocationID != "" {
		if err := u.setup.LinkSalesChannelToStockLocation(ctx, salesChannelID, stockLocationID); err != nil {
			return nil, &importer.ReconciliationError{Err: err}
		}
	}

	externalID := ExternalIDFor(parsed.AuctionID)
	handle := HandleFor(parsed.AuctionID)

	existing, err := u.products.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, &importer.ReconciliationError{Err: err}
	}
	if existing == nil {
		// external_id 追跡の導入前に作られたレコードはhandleで拾います
		existing, err = u.products.FindByHandle(ctx, handle)
		if err != nil {
			return nil, &importer.ReconciliationError{Err: err}
		}
	}

	product := u.buildProduct(input, parsed, translated, translationError,
		externalID, handle, shippingProfileID, salesChannelID)

	if existing != nil {
		return u.update(ctx, existing, product, parsed, translated, translationError, input)
	}

	product.Options = []model.ProductOption{{Title: "Condition", Values: []string{"Auction Import"}}}
	product.Variants = []*model.Variant{u.buildVariant("", parsed, input)}

	if err := u.products.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateExternalID) {
			// 同時インポートが作成で競合した場合は更新にフォールバックします
			existing, lookupErr := u.products.FindByExternalID(ctx, externalID)
			if lookupErr != nil || existing == nil {
				return nil, &importer.ReconciliationError{Err: err}
			}
			retry := u.buildProduct(input, parsed, translated, translationError,
				externalID, handle, shippingProfileID, salesChannelID)
			return u.update(ctx, existing, retry, parsed, translated, translationError, input)
		}
		return nil, &importer.ReconciliationError{Err: err}
	}

	return &model.ImportResult{
		Mode:             model.ImportModeCreated,
		Product:          product,
		Parsed:           parsed,
		Translated:       translated,
		TranslationError: translationError,
	}, nil
}

func (u *ImportUsecase) update(
	ctx context.Context,
	existing, product *model.Product,
	parsed *model.ParsedAuction,
	translated *model.TranslationResult,
	translationError string,
	input ImportInput,
) (*model.ImportResult, error) {
	product.ID = existing.ID

	// 既存のバリアントがある場合のみ先頭のバリアントを上書きします
	// 更新時に新しいバリアントを勝手に作ることはしません
	if len(existing.Variants) > 0 {
		product.Variants = []*model.Variant{u.buildVariant(existing.Variants[0].ID, parsed, input)}
	}

	if err := u.products.Update(ctx, product); err != nil {
		return nil, &importer.ReconciliationError{Err: err}
	}

	return &model.ImportResult{
		Mode:             model.ImportModeUpdated,
		Product:          product,
		Parsed:           parsed,
		Translated:       translated,
		TranslationError: translationError,
	}, nil
}

// buildProduct は商品レコードのペイロードを組み立てます
// タイトルと説明は翻訳結果を優先し、なければ原文を使います
// メタデータには再インポート時の診断に必要な来歴をすべて残します
func (u *ImportUsecase) buildProduct(
	input ImportInput,
	parsed *model.ParsedAuction,
	translated *model.TranslationResult,
	translationError string,
	externalID, handle, shippingProfileID, salesChannelID string,
) *model.Product {
	title := parsed.Title
	description := parsed.Description
	if translated != nil {
		title = translated.Title
		description = translated.Description
	}

	status := model.ProductStatusPublished
	if !input.Publish {
		status = model.ProductStatusDraft
	}

	metadata := map[string]any{
		"source":                      "yahoo_auctions",
		"source_url":                  parsed.SourceURL,
		"source_auction_id":           parsed.AuctionID,
		"source_price_jpy":            nil,
		"source_title_original":       parsed.Title,
		"source_description_original": parsed.Description,
		"translated_title":            nil,
		"translated_description":      nil,
		"translation_provider":        nil,
		"translation_source_lang":     nil,
		"translation_target_lang":     nil,
		"translation_error":           nil,
	}
	if parsed.HasPrice() {
		metadata["source_price_jpy"] = parsed.PriceJPY
	}
	if translated != nil {
		metadata["translated_title"] = translated.Title
		metadata["translated_description"] = translated.Description
		metadata["translation_provider"] = translated.Provider
		metadata["translation_source_lang"] = translated.SourceLang
		metadata["translation_target_lang"] = translated.TargetLang
	}
	if translationError != "" {
		metadata["translation_error"] = translationError
	}

	var salesChannelIDs []string
	if salesChannelID != "" {
		salesChannelIDs = []string{salesChannelID}
	}

	return &model.Product{
		Title:             title,
		Subtitle:          parsed.Title,
		Handle:            handle,
		ExternalID:        externalID,
		Description:       description,
		Status:            status,
		ShippingProfileID: shippingProfileID,
		SalesChannelIDs:   salesChannelIDs,
		Images:            parsed.ImageURLs,
		Metadata:          metadata,
	}
}

func (u *ImportUsecase) buildVariant(id string, parsed *model.ParsedAuction, input ImportInput) *model.Variant {
	return &model.Variant{
		ID:              id,
		Title:           "Default",
		SKU:             SKUFor(parsed.AuctionID),
		ManageInventory: false,
		AllowBackorder:  true,
		Options:         map[string]string{"Condition": "Auction Import"},
		Prices: []model.Price{{
			CurrencyCode: "aud",
			Amount:       ResolveAmountCents(input.PriceAUD, parsed.PriceJPY),
		}},
	}
}

// normalizeLanguageTag は言語タグを正規化します。空白のみの入力はフォールバックします
func normalizeLanguageTag(input, fallback string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
