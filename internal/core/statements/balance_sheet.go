package statements

import (
	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

const (
	resultLine           = "CJ"
	retainedEarningsLine = "CH"
)

var balanceSheetTotals = []totalDef{
	{Code: "AD", Label: "Immobilisations incorporelles", Section: "ACTIF_IMMOBILISE", Compute: sumOf("AE", "AF", "AG", "AH")},
	{Code: "AI", Label: "Immobilisations corporelles", Section: "ACTIF_IMMOBILISE", Compute: sumOf("AJ", "AK", "AL", "AM", "AN")},
	{Code: "AQ", Label: "Immobilisations financières", Section: "ACTIF_IMMOBILISE", Compute: sumOf("AR", "AS")},
	{Code: "AZ", Label: "Total actif immobilisé", Section: "ACTIF_IMMOBILISE", Compute: sumOf("AD", "AI", "AP", "AQ")},
	{Code: "BG", Label: "Créances et emplois assimilés", Section: "ACTIF_CIRCULANT", Compute: sumOf("BH", "BI", "BJ")},
	{Code: "BK", Label: "Total actif circulant", Section: "ACTIF_CIRCULANT", Compute: sumOf("BA", "BB", "BG")},
	{Code: "BT", Label: "Total trésorerie-actif", Section: "TRESORERIE_ACTIF", Compute: sumOf("BQ", "BR", "BS")},
	{Code: "BZ", Label: "Total général actif", Section: "ACTIF", Compute: sumOf("AZ", "BK", "BT", "BU")},
	{Code: "CP", Label: "Total capitaux propres et ressources assimilées", Section: "CAPITAUX_PROPRES", Compute: sumOf("CA", "CB", "CD", "CE", "CF", "CG", "CH", "CJ", "CL", "CM")},
	{Code: "DD", Label: "Total dettes financières et ressources assimilées", Section: "DETTES_FINANCIERES", Compute: sumOf("DA", "DB", "DC")},
	{Code: "DF", Label: "Total ressources stables", Section: "DETTES_FINANCIERES", Compute: sumOf("CP", "DD")},
	{Code: "DP", Label: "Total passif circulant", Section: "PASSIF_CIRCULANT", Compute: sumOf("DH", "DI", "DJ", "DK", "DM", "DN")},
	{Code: "DT", Label: "Total trésorerie-passif", Section: "TRESORERIE_PASSIF", Compute: sumOf("DQ", "DR")},
	{Code: "DZ", Label: "Total général passif", Section: "PASSIF", Compute: sumOf("DF", "DP", "DT", "DV")},
}

// BalanceSheetFigures holds the presented net and gross values of one balance-sheet snapshot,
// totals included.
type BalanceSheetFigures struct {
	Net          Figures
	Gross        Figures
	Unclassified []apperrors.UnclassifiedAccountWarning
}

// ComputeBalanceSheet aggregates cumulative balances into balance-sheet figures.
func ComputeBalanceSheet(table *classification.RuleTable, balances domain.AccountBalances) *BalanceSheetFigures {
	agg := table.Aggregate(balances)
	net, gross := present(table, agg)
	applyTotals(net, balanceSheetTotals)
	applyTotals(gross, balanceSheetTotals)
	return &BalanceSheetFigures{Net: net, Gross: gross, Unclassified: agg.Unclassified}
}

// CarryForwardResult moves the part of the result line accumulated before the fiscal year into
// retained earnings, so CJ shows the result of the year alone. opening is the balance sheet of the
// day before the year starts. Totals are unchanged since both lines belong to CP.
func (f *BalanceSheetFigures) CarryForwardResult(opening *BalanceSheetFigures) {
	if opening == nil {
		return
	}
	for _, fig := range []struct{ target, source Figures }{{f.Net, opening.Net}, {f.Gross, opening.Gross}} {
		carried := fig.source.Get(resultLine)
		fig.target[resultLine] = fig.target.Get(resultLine).Sub(carried)
		fig.target[retainedEarningsLine] = fig.target.Get(retainedEarningsLine).Add(carried)
	}
}

// BalanceSheetDocument assembles lines and totals. A nil prior reads as zero.
func BalanceSheetDocument(table *classification.RuleTable, current, prior *BalanceSheetFigures) (lines, totals []domain.StatementLineValue) {
	priorNet := Figures{}
	if prior != nil {
		priorNet = prior.Net
	}
	lines = ruleLines(table, current.Net, priorNet, current.Gross)
	totals = totalLines(balanceSheetTotals, current.Net, priorNet)
	return lines, totals
}
