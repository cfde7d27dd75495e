package netting

import (
	"fmt"

	"github.com/shopspring/decimal"

	"trade-netting/internal/domain"
)

// emptyDetailPlaceholder stands in for a side without trades in the detail columns.
const emptyDetailPlaceholder = "0"

// FormatQuantity renders whole numbers without a decimal point and keeps every
// significant fractional digit otherwise.
func FormatQuantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.Truncate(0).String()
	}
	return q.String()
}

// FormatEntry derives the display fields of entry. Balance is decided on the
// numeric net, never on the rendered text.
func FormatEntry(entry domain.NetEntry) domain.FormattedEntry {
	buy := FormatQuantity(entry.BuyTotal)
	sell := FormatQuantity(entry.SellTotal)
	return domain.FormattedEntry{
		NetEntry:          entry,
		BuyDisplay:        buy,
		BuyDetailDisplay:  detailOrPlaceholder(entry.BuyDetail),
		SellDisplay:       sell,
		SellDetailDisplay: detailOrPlaceholder(entry.SellDetail),
		NetEquationText:   fmt.Sprintf("%s - %s = %s", buy, sell, FormatQuantity(entry.Net)),
		Balanced:          entry.IsBalanced(),
	}
}

func detailOrPlaceholder(detail string) string {
	if detail == "" {
		return emptyDetailPlaceholder
	}
	return detail
}
