package classification

import (
	"sort"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LineAmount is the raw debit-positive sum of one line.
// Gross excludes contra accounts; Net includes them.
type LineAmount struct {
	Net   decimal.Decimal
	Gross decimal.Decimal
}

// Contra returns the part of the line contributed by contra accounts.
func (a LineAmount) Contra() decimal.Decimal {
	return a.Net.Sub(a.Gross)
}

// Aggregation is the result of mapping a balance snapshot onto a rule table.
type Aggregation struct {
	Lines        map[string]LineAmount
	Unclassified []apperrors.UnclassifiedAccountWarning
}

// Values returns the net amount per line code.
func (a Aggregation) Values() map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(a.Lines))
	for code, amt := range a.Lines {
		out[code] = amt.Net
	}
	return out
}

// Aggregate sums every balance into the line whose pattern claims its account number.
// Every line of the table is present in the result, zero when nothing matched.
// Non-zero balances matching no line are reported as unclassified, in account order.
func (t *RuleTable) Aggregate(balances domain.AccountBalances) Aggregation {
	result := Aggregation{Lines: make(map[string]LineAmount, len(t.rules))}
	for _, rule := range t.rules {
		result.Lines[rule.LineCode] = LineAmount{Net: decimal.Zero, Gross: decimal.Zero}
	}

	accounts := make([]string, 0, len(balances))
	for account := range balances {
		accounts = append(accounts, account)
	}
	sort.Strings(accounts)

	for _, account := range accounts {
		balance := balances[account]
		code, contra, ok := t.Classify(account)
		if !ok {
			if !balance.IsZero() {
				result.Unclassified = append(result.Unclassified, apperrors.UnclassifiedAccountWarning{
					AccountNumber: account,
					Balance:       balance,
					Statement:     string(t.statement),
				})
			}
			continue
		}
		amt := result.Lines[code]
		amt.Net = amt.Net.Add(balance)
		if !contra {
			amt.Gross = amt.Gross.Add(balance)
		}
		result.Lines[code] = amt
	}
	return result
}

// Aggregate compiles an ad-hoc rule list and sums the balances into it.
// It returns the net value per line code and the unclassified accounts.
func Aggregate(balances domain.AccountBalances, rules []domain.StatementLineRule) (map[string]decimal.Decimal, []apperrors.UnclassifiedAccountWarning, error) {
	table, err := NewRuleTable("", "", "", rules)
	if err != nil {
		return nil, nil, err
	}
	agg := table.Aggregate(balances)
	return agg.Values(), agg.Unclassified, nil
}
