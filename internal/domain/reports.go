package domain

// FormattedEntry is a NetEntry annotated with its display fields.
type FormattedEntry struct {
	NetEntry

	BuyDisplay        string `json:"buy_display"`
	BuyDetailDisplay  string `json:"buy_detail_display"`
	SellDisplay       string `json:"sell_display"`
	SellDetailDisplay string `json:"sell_detail_display"`
	NetEquationText   string `json:"net_equation_text"` // "<buy> - <sell> = <net>"
	Balanced          bool   `json:"is_balanced"`
}

// ReconciliationReport is the result of netting a single uploaded blotter.
type ReconciliationReport struct {
	Entries       []FormattedEntry `json:"entries"`
	Discrepancies []FormattedEntry `json:"discrepancies"`
	Balanced      bool             `json:"balanced"`
	RowsRead      int              `json:"rows_read"`
	RowsNetted    int              `json:"rows_netted"`
}
