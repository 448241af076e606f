package sheetpulse

// Default identity values substituted when a column cannot be resolved.
// A row whose identity AND value both end up at their defaults carries no
// real data and is rejected by its factory.
const (
	UnknownAsset   = "Unknown Asset"
	UnknownTicker  = "UNKNOWN"
	UnknownAccount = "Uncategorized"
)

// AssetClass is the coarse classification of an asset, derived from its
// declared type and a keyword scan of its name.
type AssetClass string

const (
	ClassInvestment AssetClass = "investment"
	ClassCash       AssetClass = "cash"
	ClassFixed      AssetClass = "fixed"
	ClassOther      AssetClass = "other"
)

// Asset is a generic net-worth line: a bank balance, a car, a house, a
// registered account total.
type Asset struct {
	Name    string
	Type    string // free text as entered in the sheet
	Class   AssetClass
	Value   Money
	Updated Date // zero when the sheet has no last-updated column
	Row     int  // source row, used only for write-back by collaborators
}

// Holding is a sheet-declared (or trade-synthesized) investment position.
type Holding struct {
	Ticker      string // normalized, usable as join key against trades
	Name        string
	Quantity    Quantity
	AvgCost     Money
	Price       Money
	MarketValue Money // optional explicit override, zero when absent
	Account     string
	Class       string // asset-class label, free text
	Synthetic   bool   // true when implied by trade history or cash injection
	Row         int
}

// TradeSide is the direction of a trade.
type TradeSide string

const (
	Buy  TradeSide = "BUY"
	Sell TradeSide = "SELL"
)

// Trade is a single executed order from the trade-history sheet.
type Trade struct {
	Date        Date
	Ticker      string // normalized
	Side        TradeSide
	Quantity    Quantity // unsigned
	Price       Money    // unit price
	Total       Money    // settlement total
	Fee         Money    // optional
	MarketPrice Money    // optional observed market price at trade time
	Row         int
}

// Subscription is a recurring charge line.
type Subscription struct {
	Name    string
	Amount  Money
	Cadence string
	Renewal Date
	Row     int
}

// BankAccount is a cash account line.
type BankAccount struct {
	Name    string
	Kind    string
	Balance Money
	Row     int
}

// DebtEntry is a liability line.
type DebtEntry struct {
	Name    string
	Balance Money
	Rate    Percent
	Payment Money
	Row     int
}

// TaxRecord is a per-year tax summary line.
type TaxRecord struct {
	Year   int
	Income Money
	Paid   Money
	Owed   Money
	Row    int
}

// NetWorthEntry is one point of the net-worth log time series.
type NetWorthEntry struct {
	Date  Date
	Value Money
}

// Direction discriminates timeline entries.
type Direction string

const (
	Income  Direction = "INCOME"
	Expense Direction = "EXPENSE"
)

// NormalizedTransaction is the unifying timeline record produced by
// flattening grid ledger data. It is the single input to the dimensional
// aggregator.
type NormalizedTransaction struct {
	ID          string
	Date        Date
	Category    string
	Subcategory string
	Amount      Money // unsigned
	Direction   Direction
}
