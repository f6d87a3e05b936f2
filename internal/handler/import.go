package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guanrg/artstore/internal/domain/importer"
	"github.com/guanrg/artstore/internal/domain/model"
	"github.com/guanrg/artstore/internal/usecase"
	"go.uber.org/zap"
)

// auctionImporter はハンドラーが必要とするユースケースの窓口です
type auctionImporter interface {
	Import(ctx context.Context, input usecase.ImportInput) (*model.ImportResult, error)
}

// ImportHandler はHTTPのハンドラー実装です
// プロトコル層（JSON）とドメイン層（usecase）を橋渡しします
type ImportHandler struct {
	uc  auctionImporter
	log *zap.Logger
}

// NewImportHandler は新しいImportHandlerインスタンスを作成します
func NewImportHandler(uc auctionImporter, log *zap.Logger) *ImportHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ImportHandler{uc: uc, log: log}
}

// importRequest はインポートAPIのリクエストボディです
// publish と translate は省略時 true です
type importRequest struct {
	URL        string   `json:"url"`
	PriceAUD   *float64 `json:"price_aud"`
	Publish    *bool    `json:"publish"`
	Translate  *bool    `json:"translate"`
	TargetLang string   `json:"target_lang"`
}

type productResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}

type parsedResponse struct {
	AuctionID        string   `json:"auction_id"`
	OriginalTitle    string   `json:"original_title"`
	TranslatedTitle  *string  `json:"translated_title"`
	PriceJPY         *int64   `json:"price_jpy"`
	ImageCount       int      `json:"image_count"`
	ImageURLs        []string `json:"image_urls"`
	TranslationError *string  `json:"translation_error"`
}

type importResponse struct {
	Message string          `json:"message"`
	Mode    string          `json:"mode"`
	Product productResponse `json:"product"`
	Parsed  parsedResponse  `json:"parsed"`
}

// Import はヤフオクのURLから商品をインポートするハンドラーです
// POST /admin/custom/yahoo-import
func (h *ImportHandler) Import(c *gin.Context) {
	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	input := usecase.ImportInput{
		URL:        req.URL,
		Publish:    req.Publish == nil || *req.Publish,
		Translate:  req.Translate == nil || *req.Translate,
		TargetLang: req.TargetLang,
	}
	if req.PriceAUD != nil {
		input.PriceAUD = *req.PriceAUD
	}

	result, err := h.uc.Import(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	message := "Import successful"
	if result.Mode == model.ImportModeUpdated {
		message = "Import successful (updated existing product)"
	}

	parsed := parsedResponse{
		AuctionID:     result.Parsed.AuctionID,
		OriginalTitle: result.Parsed.Title,
		ImageCount:    len(result.Parsed.ImageURLs),
		ImageURLs:     result.Parsed.ImageURLs,
	}
	if parsed.ImageURLs == nil {
		parsed.ImageURLs = []string{}
	}
	if result.Parsed.HasPrice() {
		price := result.Parsed.PriceJPY
		parsed.PriceJPY = &price
	}
	if result.Translated != nil {
		title := result.Translated.Title
		parsed.TranslatedTitle = &title
	}
	if result.TranslationError != "" {
		translationError := result.TranslationError
		parsed.TranslationError = &translationError
	}

	c.JSON(http.StatusOK, importResponse{
		Message: message,
		Mode:    string(result.Mode),
		Product: productResponse{
			ID:     result.Product.ID,
			Title:  result.Product.Title,
			Handle: result.Product.Handle,
		},
		Parsed: parsed,
	})
}

// respondError はエラー型をHTTPステータスに変換します
// 検証系は400、上流取得の失敗は502、それ以外は500です
func (h *ImportHandler) respondError(c *gin.Context, err error) {
	var (
		validationErr    *importer.ValidationError
		parseErr         *importer.ParseError
		configurationErr *importer.ConfigurationError
		upstreamErr      *importer.UpstreamFetchError
	)

	switch {
	case errors.As(err, &validationErr), errors.As(err, &parseErr), errors.As(err, &configurationErr):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.As(err, &upstreamErr):
		c.JSON(http.StatusBadGateway, gin.H{"message": err.Error()})
	default:
		h.log.Error("import failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
	}
}

// Health は死活監視用のエンドポイントです
// GET /health
func (h *ImportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
