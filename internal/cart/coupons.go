package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// couponRates maps normalized coupon codes to their discount rate. No expiry
// or usage counting is modeled.
var couponRates = map[string]decimal.Decimal{
	"BEMVINDA10": decimal.RequireFromString("0.10"),
	"LYVEST2026": decimal.RequireFromString("0.15"),
	"PROMO5":     decimal.RequireFromString("0.05"),
}

// CouponResult is the one engine outcome surfaced to callers as data rather
// than swallowed: the UI has to display it either way.
type CouponResult struct {
	Applied bool   `json:"applied"`
	Message string `json:"message"`
}

// NormalizeCouponCode uppercases and trims a candidate code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// LookupCoupon resolves a normalized code to its rate.
func LookupCoupon(code string) (decimal.Decimal, bool) {
	rate, ok := couponRates[code]
	return rate, ok
}

func couponAppliedMessage(rate decimal.Decimal) string {
	percent := rate.Mul(decimal.NewFromInt(100))
	return fmt.Sprintf("coupon applied (%s%% off)", percent.String())
}
