package service

import (
	"strconv"
	"time"

	"cardgen/internal/domain"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = time.RFC3339
)

// Column renders one field of a record. Headers double as CSV header names.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// pythonic booleans keep the files readable by the tools that consumed the
// original fixtures.
func flag(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

var accountColumns = []Column[domain.Account]{
	{Header: "accountId", Value: func(a domain.Account) string { return a.AccountID }},
	{Header: "brandName", Value: func(a domain.Account) string { return a.BrandName }},
	{Header: "companyCnpj", Value: func(a domain.Account) string { return a.CompanyCNPJ }},
	{Header: "name", Value: func(a domain.Account) string { return a.Name }},
	{Header: "productType", Value: func(a domain.Account) string { return a.ProductType }},
	{Header: "creditCardNetwork", Value: func(a domain.Account) string { return a.CreditCardNetwork }},
	{Header: "creditLimit", Value: func(a domain.Account) string { return money(a.CreditLimit) }},
	{Header: "usedLimit", Value: func(a domain.Account) string { return money(a.UsedLimit) }},
}

var qualificationColumns = []Column[domain.Qualification]{
	{Header: "accountId", Value: func(q domain.Qualification) string { return q.AccountID }},
	{Header: "updateDateTime", Value: func(q domain.Qualification) string { return q.UpdateDateTime.Format(dateTimeLayout) }},
	{Header: "companyCnpj", Value: func(q domain.Qualification) string { return q.CompanyCNPJ }},
	{Header: "occupationCode", Value: func(q domain.Qualification) string { return strconv.Itoa(q.OccupationCode) }},
	{Header: "incomeFrequency", Value: func(q domain.Qualification) string { return q.IncomeFrequency }},
	{Header: "incomeAmount", Value: func(q domain.Qualification) string { return money(q.IncomeAmount) }},
}

var financialRelationColumns = []Column[domain.FinancialRelation]{
	{Header: "accountId", Value: func(f domain.FinancialRelation) string { return f.AccountID }},
	{Header: "informedPatrimony", Value: func(f domain.FinancialRelation) string { return money(f.InformedPatrimony) }},
	{Header: "informedIncome", Value: func(f domain.FinancialRelation) string { return money(f.InformedIncome) }},
	{Header: "frequency", Value: func(f domain.FinancialRelation) string { return f.Frequency }},
}

var billColumns = []Column[domain.Bill]{
	{Header: "billId", Value: func(b domain.Bill) string { return b.BillID }},
	{Header: "accountId", Value: func(b domain.Bill) string { return b.AccountID }},
	{Header: "dueDate", Value: func(b domain.Bill) string { return b.DueDate.Format(dateLayout) }},
	{Header: "billTotalAmount", Value: func(b domain.Bill) string { return money(b.BillTotalAmount) }},
	{Header: "billTotalCurrency", Value: func(b domain.Bill) string { return b.BillTotalCurrency }},
	{Header: "billMinimumAmount", Value: func(b domain.Bill) string { return money(b.BillMinimumAmount) }},
	{Header: "billMinimumCurrency", Value: func(b domain.Bill) string { return b.BillMinimumCurrency }},
	{Header: "isPaid", Value: func(b domain.Bill) string { return flag(b.IsPaid) }},
}

var transactionColumns = []Column[domain.Transaction]{
	{Header: "transactionId", Value: func(t domain.Transaction) string { return t.TransactionID }},
	{Header: "accountId", Value: func(t domain.Transaction) string { return t.AccountID }},
	{Header: "billId", Value: func(t domain.Transaction) string { return t.BillID }},
	{Header: "transactionDate", Value: func(t domain.Transaction) string { return t.TransactionDate.Format(dateLayout) }},
	{Header: "transactionalAmount", Value: func(t domain.Transaction) string { return money(t.TransactionalAmount) }},
	{Header: "merchantName", Value: func(t domain.Transaction) string { return t.MerchantName }},
	{Header: "creditDebitType", Value: func(t domain.Transaction) string { return t.CreditDebitType }},
	{Header: "transactionType", Value: func(t domain.Transaction) string { return t.TransactionType }},
}

var limitColumns = []Column[domain.Limit]{
	{Header: "accountId", Value: func(l domain.Limit) string { return l.AccountID }},
	{Header: "creditLineLimitType", Value: func(l domain.Limit) string { return l.CreditLineLimitType }},
	{Header: "limitAmount", Value: func(l domain.Limit) string { return money(l.LimitAmount) }},
	{Header: "limitCurrency", Value: func(l domain.Limit) string { return l.LimitCurrency }},
	{Header: "usedAmount", Value: func(l domain.Limit) string { return money(l.UsedAmount) }},
	{Header: "usedCurrency", Value: func(l domain.Limit) string { return l.UsedCurrency }},
	{Header: "availableAmount", Value: func(l domain.Limit) string { return money(l.AvailableAmount) }},
	{Header: "availableCurrency", Value: func(l domain.Limit) string { return l.AvailableCurrency }},
}

// Table is a record collection rendered to header and rows, ready for any
// tabular writer.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

func buildTable[T any](name string, cols []Column[T], records []T) Table {
	t := Table{Name: name, Header: make([]string, len(cols)), Rows: make([][]string, 0, len(records))}
	for i, c := range cols {
		t.Header[i] = c.Header
	}
	for _, r := range records {
		row := make([]string, len(cols))
		for i, c := range cols {
			row[i] = c.Value(r)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Tables renders the dataset in the fixed export order.
func (d Dataset) Tables() []Table {
	return []Table{
		buildTable("accounts", accountColumns, d.Accounts),
		buildTable("qualifications", qualificationColumns, d.Qualifications),
		buildTable("financial_relations", financialRelationColumns, d.FinancialRelations),
		buildTable("bills", billColumns, d.Bills),
		buildTable("transactions", transactionColumns, d.Transactions),
		buildTable("limits", limitColumns, d.Limits),
	}
}
