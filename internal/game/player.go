package game

type TransactionType string

const (
	TxRevenue   TransactionType = "revenue"
	TxExpense   TransactionType = "expense"
	TxBorrowing TransactionType = "borrowing"
	TxPurchase  TransactionType = "purchase"
	TxSaleGain  TransactionType = "sale_gain"
	TxSaleLoss  TransactionType = "sale_loss"
)

type Transaction struct {
	Turn      int             `json:"turn"`
	Type      TransactionType `json:"type"`
	Amount    int64           `json:"amount"`
	Reason    string          `json:"reason"`
	CashAfter int64           `json:"cash_after"`
}

type Player struct {
	Name     string `json:"name"`
	Seat     int    `json:"seat"`
	Position int    `json:"position"`

	Cash        int64               `json:"cash"`
	Assets      map[AssetKind]int64 `json:"assets"`
	Liabilities map[string]int64    `json:"liabilities"`

	Revenue  int64 `json:"revenue"`
	Expenses int64 `json:"expenses"`

	CFOperating int64 `json:"cf_operating"`
	CFInvesting int64 `json:"cf_investing"`
	CFFinancing int64 `json:"cf_financing"`

	History []Transaction `json:"history"`
}

const debtLiability = "debt"

func NewPlayer(name string, seat int) *Player {
	return &Player{
		Name: name,
		Seat: seat,
		Cash: StartingCash,
		Assets: map[AssetKind]int64{
			AssetProperty:  0,
			AssetInventory: 0,
		},
		Liabilities: map[string]int64{
			debtLiability: 0,
		},
	}
}

func (p *Player) appendTransaction(turn int, txType TransactionType, amount int64, reason string) {
	p.History = append(p.History, Transaction{
		Turn:      turn,
		Type:      txType,
		Amount:    amount,
		Reason:    reason,
		CashAfter: p.Cash,
	})
}

// RecordRevenue credits cash, revenue and operating cash flow.
func (p *Player) RecordRevenue(turn int, amount int64, reason string) {
	p.Cash += amount
	p.Revenue += amount
	p.CFOperating += amount
	p.appendTransaction(turn, TxRevenue, amount, reason)
}

// RecordExpense debits cash and operating cash flow and accrues the expense.
// Imposed losses apply unconditionally and may take cash below zero; the
// no-negative-cash rule binds voluntary spending, which the session checks
// before invoking the ledger.
func (p *Player) RecordExpense(turn int, amount int64, reason string) {
	p.Cash -= amount
	p.Expenses += amount
	p.CFOperating -= amount
	p.appendTransaction(turn, TxExpense, -amount, reason)
}

// RecordBorrowing credits cash and financing cash flow against the debt
// liability.
func (p *Player) RecordBorrowing(turn int, amount int64, reason string) {
	p.Cash += amount
	p.Liabilities[debtLiability] += amount
	p.CFFinancing += amount
	p.appendTransaction(turn, TxBorrowing, amount, reason)
}

// RecordAssetPurchase moves cash into the given asset category. The caller
// guarantees affordability.
func (p *Player) RecordAssetPurchase(turn int, kind AssetKind, amount int64, reason string) {
	p.Cash -= amount
	p.Assets[kind] += amount
	p.CFInvesting -= amount
	p.appendTransaction(turn, TxPurchase, -amount, reason)
}

// RecordAssetSale credits cash with the proceeds and removes the book value
// from the asset category, floored at zero. The history row is tagged as a
// gain or a loss by the sign of proceeds minus book value.
func (p *Player) RecordAssetSale(turn int, kind AssetKind, proceeds, bookValue int64, reason string) {
	p.Cash += proceeds
	p.Assets[kind] -= bookValue
	if p.Assets[kind] < 0 {
		p.Assets[kind] = 0
	}
	p.CFInvesting += proceeds
	txType := TxSaleGain
	if proceeds < bookValue {
		txType = TxSaleLoss
	}
	p.appendTransaction(turn, txType, proceeds, reason)
}

func (p *Player) TotalAssets() int64 {
	total := p.Cash
	for _, v := range p.Assets {
		total += v
	}
	return total
}

func (p *Player) TotalLiabilities() int64 {
	var total int64
	for _, v := range p.Liabilities {
		total += v
	}
	return total
}

func (p *Player) Equity() int64 {
	return p.TotalAssets() - p.TotalLiabilities()
}

func (p *Player) Profit() int64 {
	return p.Revenue - p.Expenses
}
