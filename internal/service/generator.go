package service

import (
	"fmt"
	"math"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"cardgen/internal/config"
	"cardgen/internal/domain"

	"github.com/rs/zerolog"
)

type RandomSource interface {
	Uniform(min, max float64) float64
	Weighted(weights []float64) int
	Bernoulli(p float64) bool
	IntBetween(min, max int) int
	Choice(options []string) string
	DateBetween(start, end time.Time) time.Time
}

type FakeProvider interface {
	CompanyName() string
	Word() string
	TaxID() string
	UUID() string
}

type Source interface {
	RandomSource
	FakeProvider
}

// Entity is one synthetic account with every record that depends on it.
type Entity struct {
	Class             domain.SocialClass
	Account           domain.Account
	Qualification     domain.Qualification
	FinancialRelation domain.FinancialRelation
	Limit             domain.Limit
	Bills             []domain.Bill
	Transactions      []domain.Transaction
}

// Dataset keeps the six record collections in generation order.
type Dataset struct {
	Accounts           []domain.Account
	Qualifications     []domain.Qualification
	FinancialRelations []domain.FinancialRelation
	Bills              []domain.Bill
	Transactions       []domain.Transaction
	Limits             []domain.Limit
}

func (d *Dataset) add(e Entity) {
	d.Accounts = append(d.Accounts, e.Account)
	d.Qualifications = append(d.Qualifications, e.Qualification)
	d.FinancialRelations = append(d.FinancialRelations, e.FinancialRelation)
	d.Limits = append(d.Limits, e.Limit)
	d.Bills = append(d.Bills, e.Bills...)
	d.Transactions = append(d.Transactions, e.Transactions...)
}

type Generator struct {
	src     Source
	profile config.Profile
	weights []float64
	now     time.Time
	log     zerolog.Logger
}

// NewGenerator validates profile and returns a generator whose date windows
// are anchored at now.
func NewGenerator(src Source, profile config.Profile, now time.Time, log zerolog.Logger) (*Generator, error) {
	if src == nil {
		return nil, fmt.Errorf("generator: nil source")
	}
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		src:     src,
		profile: profile,
		weights: profile.Weights(),
		now:     now.UTC(),
		log:     log,
	}, nil
}

// Generate builds n entities and flattens them into a Dataset.
func (g *Generator) Generate(n int) Dataset {
	var ds Dataset
	counts := make(map[domain.SocialClass]int, len(domain.SocialClasses))

	for i := 0; i < n; i++ {
		class := g.SampleClass()
		counts[class]++
		ds.add(g.GenerateEntity(g.src.UUID(), class))
	}

	g.log.Debug().
		Int("entities", n).
		Int("bills", len(ds.Bills)).
		Int("transactions", len(ds.Transactions)).
		Interface("classes", counts).
		Msg("dataset generated")

	return ds
}

func (g *Generator) SampleClass() domain.SocialClass {
	return domain.SocialClasses[g.src.Weighted(g.weights)]
}

func (g *Generator) GenerateEntity(accountID string, class domain.SocialClass) Entity {
	e := Entity{
		Class:             class,
		Account:           g.NewAccount(accountID, class),
		Qualification:     g.NewQualification(accountID, class),
		FinancialRelation: g.NewFinancialRelation(accountID),
		Limit:             g.NewLimit(accountID, class),
	}
	e.Bills = g.NewBills(accountID, class)
	for _, b := range e.Bills {
		e.Transactions = append(e.Transactions, g.NewTransactions(b)...)
	}
	return e
}

func (g *Generator) NewAccount(accountID string, class domain.SocialClass) domain.Account {
	limit := round2(g.uniform(g.profile.Classes[class].CreditLimit))
	return domain.Account{
		AccountID:         accountID,
		BrandName:         g.src.CompanyName(),
		CompanyCNPJ:       g.src.TaxID(),
		Name:              capitalize(g.src.Word()) + " Crédito",
		ProductType:       domain.ProductTypeCredit,
		CreditCardNetwork: g.src.Choice(domain.CardNetworks),
		CreditLimit:       limit,
		UsedLimit:         g.usedOf(limit),
	}
}

func (g *Generator) NewQualification(accountID string, class domain.SocialClass) domain.Qualification {
	updated := g.src.DateBetween(time.Unix(0, 0).UTC(), g.now).Truncate(time.Second)
	return domain.Qualification{
		AccountID:       accountID,
		UpdateDateTime:  updated,
		CompanyCNPJ:     g.src.TaxID(),
		OccupationCode:  g.src.IntBetween(g.profile.OccupationCode[0], g.profile.OccupationCode[1]),
		IncomeFrequency: domain.IncomeFrequencyMonthly,
		IncomeAmount:    round2(g.uniform(g.profile.Classes[class].Income)),
	}
}

func (g *Generator) NewFinancialRelation(accountID string) domain.FinancialRelation {
	patrimony := round2(g.uniform(g.profile.Patrimony))
	return domain.FinancialRelation{
		AccountID:         accountID,
		InformedPatrimony: patrimony,
		InformedIncome:    round2(patrimony * g.uniform(g.profile.IncomeShare)),
		Frequency:         domain.RelationFrequencyYearly,
	}
}

// NewLimit draws its own total independently of the account's credit limit.
func (g *Generator) NewLimit(accountID string, class domain.SocialClass) domain.Limit {
	total := round2(g.uniform(g.profile.Classes[class].CreditLimit))
	used := g.usedOf(total)
	return domain.Limit{
		AccountID:           accountID,
		CreditLineLimitType: domain.LimitTypeTotalCredit,
		LimitAmount:         total,
		LimitCurrency:       domain.CurrencyBRL,
		UsedAmount:          used,
		UsedCurrency:        domain.CurrencyBRL,
		AvailableAmount:     round2(total - used),
		AvailableCurrency:   domain.CurrencyBRL,
	}
}

// NewBills returns one bill per month, due between today and the end of the
// current year.
func (g *Generator) NewBills(accountID string, class domain.SocialClass) []domain.Bill {
	today := dayOf(g.now)
	yearEnd := time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, time.UTC)
	delinquency := g.profile.Classes[class].DelinquencyRate

	bills := make([]domain.Bill, 0, config.BillsPerYear)
	for i := 0; i < config.BillsPerYear; i++ {
		due := dayOf(g.src.DateBetween(today, yearEnd))
		total := round2(g.uniform(g.profile.BillTotal))
		paid := g.src.Bernoulli(1 - delinquency)
		bills = append(bills, domain.Bill{
			BillID:              g.src.UUID(),
			AccountID:           accountID,
			DueDate:             due,
			BillTotalAmount:     total,
			BillTotalCurrency:   domain.CurrencyBRL,
			BillMinimumAmount:   math.Min(round2(total*g.uniform(g.profile.MinimumShare)), total),
			BillMinimumCurrency: domain.CurrencyBRL,
			IsPaid:              paid,
		})
	}
	return bills
}

// NewTransactions dates every transaction inside the window that closes on
// the bill's due date. The window is not clamped to the start of the year.
func (g *Generator) NewTransactions(bill domain.Bill) []domain.Transaction {
	n := g.src.IntBetween(g.profile.TransactionsPerBill[0], g.profile.TransactionsPerBill[1])
	windowStart := bill.DueDate.AddDate(0, 0, -g.profile.TransactionWindowDays)

	txs := make([]domain.Transaction, 0, n)
	for i := 0; i < n; i++ {
		txs = append(txs, domain.Transaction{
			TransactionID:       g.src.UUID(),
			AccountID:           bill.AccountID,
			BillID:              bill.BillID,
			TransactionDate:     dayOf(g.src.DateBetween(windowStart, bill.DueDate)),
			TransactionalAmount: round2(g.uniform(g.profile.TransactionAmount)),
			MerchantName:        g.src.CompanyName(),
			CreditDebitType:     domain.CreditDebitTypeCredit,
			TransactionType:     g.src.Choice(domain.TransactionTypes),
		})
	}
	return txs
}

func (g *Generator) uniform(r config.Range) float64 {
	return g.src.Uniform(r.Min, r.Max)
}

// usedOf draws a used amount in [0, limit].
func (g *Generator) usedOf(limit float64) float64 {
	return math.Min(round2(g.src.Uniform(0, limit)), limit)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func dayOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
