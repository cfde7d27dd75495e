package domain

import "github.com/shopspring/decimal"

// Side identifies which leg of the blotter a trade belongs to.
type Side string

const (
	SideBuy  Side = "BUY"
	SideSell Side = "SELL"
)

// TradeRecord represents one line of the daily trade blotter as read from the uploaded file.
type TradeRecord struct {
	OperationName string          `json:"operation_name"`
	Symbol        string          `json:"symbol"`
	Quantity      decimal.Decimal `json:"quantity"`
}

// SideAggregate holds the summed quantity of one side for one base ticker.
type SideAggregate struct {
	BaseTicker    string          `json:"base_ticker"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
	DetailText    string          `json:"detail_text"` // "qty (symbol)" pairs in input order
}

// NetEntry is the joined buy/sell position of a base ticker.
type NetEntry struct {
	BaseTicker string          `json:"base_ticker"`
	BuyTotal   decimal.Decimal `json:"buy_total"`
	BuyDetail  string          `json:"buy_detail"`
	SellTotal  decimal.Decimal `json:"sell_total"`
	SellDetail string          `json:"sell_detail"`
	Net        decimal.Decimal `json:"net"`
}

// IsBalanced reports whether the buys and sells of the ticker cancel out exactly.
func (e NetEntry) IsBalanced() bool {
	return e.Net.IsZero()
}
