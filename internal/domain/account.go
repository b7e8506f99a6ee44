package domain

import "time"

const (
	ProductTypeCredit = "CREDIT"

	IncomeFrequencyMonthly  = "MENSAL"
	RelationFrequencyYearly = "ANUAL"
)

var CardNetworks = []string{"VISA", "MASTERCARD", "ELO"}

type Account struct {
	AccountID         string
	BrandName         string
	CompanyCNPJ       string
	Name              string
	ProductType       string
	CreditCardNetwork string
	CreditLimit       float64
	UsedLimit         float64
}

type Qualification struct {
	AccountID       string
	UpdateDateTime  time.Time
	CompanyCNPJ     string
	OccupationCode  int
	IncomeFrequency string
	IncomeAmount    float64
}

type FinancialRelation struct {
	AccountID         string
	InformedPatrimony float64
	InformedIncome    float64
	Frequency         string
}
