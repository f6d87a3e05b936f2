package usecase

import "github.com/shopspring/decimal"

// defaultAmountCents は価格が取得できなかった場合の既定額（AUD $100.00）です
const defaultAmountCents = 10000

var (
	ten        = decimal.NewFromInt(10)
	one        = decimal.NewFromInt(1)
	oneHundred = decimal.NewFromInt(100)
)

// JPYToAUDCents は円建て価格をAUDセントに換算します
// 為替レートではなく「円 ÷ 10 = AUD」という固定の業務ルールです
// 端数は四捨五入し、最低でもAUD $1.00 になります
// 価格が不明（0以下）の場合は既定額を返します
func JPYToAUDCents(jpy int64) int64 {
	if jpy <= 0 {
		return defaultAmountCents
	}

	aud := decimal.NewFromInt(jpy).Div(ten).Round(0)
	if aud.LessThan(one) {
		aud = one
	}
	return aud.Mul(oneHundred).IntPart()
}

// ResolveAmountCents は最終的な販売価格を決定します
// 呼び出し元の明示的な上書き価格（AUDドル）が正であれば常に優先し、
// なければ円価格からの換算結果を使います
func ResolveAmountCents(overrideAUD float64, priceJPY int64) int64 {
	if overrideAUD > 0 {
		return decimal.NewFromFloat(overrideAUD).Mul(oneHundred).Round(0).IntPart()
	}
	return JPYToAUDCents(priceJPY)
}
