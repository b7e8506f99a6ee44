package domain

import "time"

const (
	CurrencyBRL = "BRL"

	CreditDebitTypeCredit = "CREDITO"

	LimitTypeTotalCredit = "LIMITE_CREDITO_TOTAL"
)

var TransactionTypes = []string{"COMPRA", "JUROS"}

type Bill struct {
	BillID              string
	AccountID           string
	DueDate             time.Time
	BillTotalAmount     float64
	BillTotalCurrency   string
	BillMinimumAmount   float64
	BillMinimumCurrency string
	IsPaid              bool
}

type Transaction struct {
	TransactionID       string
	AccountID           string
	BillID              string
	TransactionDate     time.Time
	TransactionalAmount float64
	MerchantName        string
	CreditDebitType     string
	TransactionType     string
}

// Limit is the credit line state of an account; AvailableAmount is
// always LimitAmount minus UsedAmount.
type Limit struct {
	AccountID           string
	CreditLineLimitType string
	LimitAmount         float64
	LimitCurrency       string
	UsedAmount          float64
	UsedCurrency        string
	AvailableAmount     float64
	AvailableCurrency   string
}
