package statements

import (
	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Soldes intermédiaires de gestion. Produits and charges are both presented positive,
// so each balance subtracts charges explicitly.
var incomeStatementTotals = []totalDef{
	{Code: "XA", Label: "Marge commerciale", Section: "EXPLOITATION", Compute: func(f Figures) decimal.Decimal {
		return f.Get("TA").Sub(f.Sum("RA", "RB"))
	}},
	{Code: "XB", Label: "Chiffre d'affaires", Section: "EXPLOITATION", Compute: sumOf("TA", "TB", "TC", "TD")},
	{Code: "XC", Label: "Valeur ajoutée", Section: "EXPLOITATION", Compute: func(f Figures) decimal.Decimal {
		return f.Get("XA").
			Add(f.Sum("TB", "TC", "TD", "TE", "TF", "TG", "TH", "TI")).
			Sub(f.Sum("RC", "RD", "RE", "RF", "RG", "RH", "RI", "RJ"))
	}},
	{Code: "XD", Label: "Excédent brut d'exploitation", Section: "EXPLOITATION", Compute: func(f Figures) decimal.Decimal {
		return f.Get("XC").Sub(f.Get("RK"))
	}},
	{Code: "XE", Label: "Résultat d'exploitation", Section: "EXPLOITATION", Compute: func(f Figures) decimal.Decimal {
		return f.Get("XD").Add(f.Get("TJ")).Sub(f.Get("RL"))
	}},
	{Code: "XF", Label: "Résultat financier", Section: "FINANCIER", Compute: func(f Figures) decimal.Decimal {
		return f.Sum("TK", "TL", "TM").Sub(f.Sum("RM", "RN"))
	}},
	{Code: "XG", Label: "Résultat des activités ordinaires", Section: "RESULTAT", Compute: sumOf("XE", "XF")},
	{Code: "XH", Label: "Résultat hors activités ordinaires", Section: "HAO", Compute: func(f Figures) decimal.Decimal {
		return f.Sum("TN", "TO").Sub(f.Sum("RO", "RP"))
	}},
	{Code: "XI", Label: "Résultat net", Section: "RESULTAT", Compute: func(f Figures) decimal.Decimal {
		return f.Sum("XG", "XH").Sub(f.Sum("RQ", "RS"))
	}},
}

// IncomeStatementFigures holds the presented values of one period, SIG included.
type IncomeStatementFigures struct {
	Values       Figures
	Unclassified []apperrors.UnclassifiedAccountWarning
}

// NetResult returns XI.
func (f *IncomeStatementFigures) NetResult() decimal.Decimal {
	return f.Values.Get("XI")
}

// ComputeIncomeStatement aggregates period flows into income-statement figures.
func ComputeIncomeStatement(table *classification.RuleTable, flows domain.AccountBalances) *IncomeStatementFigures {
	agg := table.Aggregate(flows)
	values, _ := present(table, agg)
	applyTotals(values, incomeStatementTotals)
	return &IncomeStatementFigures{Values: values, Unclassified: agg.Unclassified}
}

// IncomeStatementDocument assembles lines and totals. A nil prior reads as zero.
func IncomeStatementDocument(table *classification.RuleTable, current, prior *IncomeStatementFigures) (lines, totals []domain.StatementLineValue) {
	priorValues := Figures{}
	if prior != nil {
		priorValues = prior.Values
	}
	lines = ruleLines(table, current.Values, priorValues, nil)
	totals = totalLines(incomeStatementTotals, current.Values, priorValues)
	return lines, totals
}
