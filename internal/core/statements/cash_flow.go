package statements

import (
	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

const cashFlowName = "cash-flow statement"

// CashFlowInputs are the statements the cash-flow statement is derived from.
type CashFlowInputs struct {
	Income  *IncomeStatementFigures
	Current *BalanceSheetFigures
	Prior   *BalanceSheetFigures
}

type cashFlowDef struct {
	Code    string
	Label   string
	Section string
	Compute func(in CashFlowInputs) decimal.Decimal
}

func (in CashFlowInputs) deltaNet(codes ...string) decimal.Decimal {
	return in.Current.Net.Sum(codes...).Sub(in.Prior.Net.Sum(codes...))
}

// deltaGross ignores amortization and depreciation, which already flow through the income statement.
func (in CashFlowInputs) deltaGross(codes ...string) decimal.Decimal {
	return in.Current.Gross.Sum(codes...).Sub(in.Prior.Gross.Sum(codes...))
}

// An increase of an asset line consumes cash and is shown negated; an increase of a
// liability or equity line provides cash.
var cashFlowLines = []cashFlowDef{
	{Code: "ZA", Label: "Trésorerie nette au 1er janvier", Section: "OUVERTURE", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.Prior.Gross.Get("BT").Sub(in.Prior.Net.Get("DT"))
	}},
	{Code: "FA", Label: "Capacité d'autofinancement globale (CAFG)", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.Income.Values.Get("XI").Add(in.Income.Values.Get("RL"))
	}},
	{Code: "FR", Label: "Dotations financières nettes des reprises", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.Income.Values.Get("RN").Sub(in.Income.Values.Sum("TJ", "TL"))
	}},
	{Code: "FB", Label: "Variation de l'actif circulant HAO", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("BA").Neg()
	}},
	{Code: "FC", Label: "Variation des stocks", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaGross("BB").Neg()
	}},
	{Code: "FD", Label: "Variation des créances", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaGross("BG").Neg()
	}},
	{Code: "FE", Label: "Variation du passif circulant", Section: "OPERATIONNEL", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("DH", "DI", "DJ", "DK", "DM")
	}},
	{Code: "FF", Label: "Décaissements liés aux acquisitions d'immobilisations incorporelles", Section: "INVESTISSEMENT", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaGross("AD").Neg()
	}},
	{Code: "FG", Label: "Décaissements liés aux acquisitions d'immobilisations corporelles", Section: "INVESTISSEMENT", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaGross("AI", "AP").Neg()
	}},
	{Code: "FH", Label: "Décaissements liés aux acquisitions d'immobilisations financières", Section: "INVESTISSEMENT", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaGross("AQ").Neg()
	}},
	{Code: "FK", Label: "Augmentations de capital par apports nouveaux", Section: "CAPITAUX_PROPRES", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("CA", "CB", "CD", "CE")
	}},
	{Code: "FL", Label: "Subventions d'investissement reçues", Section: "CAPITAUX_PROPRES", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("CL")
	}},
	{Code: "FM", Label: "Prélèvements sur le capital et dividendes", Section: "CAPITAUX_PROPRES", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("CF", "CG", "CH", "CJ", "CM").Sub(in.Income.Values.Get("XI"))
	}},
	{Code: "FN", Label: "Emprunts et dettes financières", Section: "CAPITAUX_ETRANGERS", Compute: func(in CashFlowInputs) decimal.Decimal {
		return in.deltaNet("DA", "DB")
	}},
}

var cashFlowTotals = []totalDef{
	{Code: "ZB", Label: "Flux de trésorerie provenant des activités opérationnelles", Section: "OPERATIONNEL", Compute: sumOf("FA", "FR", "FB", "FC", "FD", "FE")},
	{Code: "ZC", Label: "Flux de trésorerie provenant des activités d'investissement", Section: "INVESTISSEMENT", Compute: sumOf("FF", "FG", "FH")},
	{Code: "ZD", Label: "Flux de trésorerie provenant des capitaux propres", Section: "CAPITAUX_PROPRES", Compute: sumOf("FK", "FL", "FM")},
	{Code: "ZE", Label: "Flux de trésorerie provenant des capitaux étrangers", Section: "CAPITAUX_ETRANGERS", Compute: sumOf("FN")},
	{Code: "ZF", Label: "Flux de trésorerie provenant des activités de financement", Section: "FINANCEMENT", Compute: sumOf("ZD", "ZE")},
	{Code: "ZG", Label: "Variation de la trésorerie nette de la période", Section: "CLOTURE", Compute: sumOf("ZB", "ZC", "ZF")},
	{Code: "ZH", Label: "Trésorerie nette au 31 décembre", Section: "CLOTURE", Compute: sumOf("ZA", "ZG")},
}

// ComputeCashFlow derives the cash-flow figures. Every input is required: a missing
// statement fails instead of reading as zero.
func ComputeCashFlow(in CashFlowInputs) (Figures, error) {
	switch {
	case in.Income == nil:
		return nil, &apperrors.MissingPrerequisiteError{Statement: cashFlowName, Missing: "income statement"}
	case in.Current == nil:
		return nil, &apperrors.MissingPrerequisiteError{Statement: cashFlowName, Missing: "balance sheet"}
	case in.Prior == nil:
		return nil, &apperrors.MissingPrerequisiteError{Statement: cashFlowName, Missing: "prior-period balance sheet"}
	}

	f := make(Figures, len(cashFlowLines)+len(cashFlowTotals))
	for _, def := range cashFlowLines {
		f[def.Code] = def.Compute(in)
	}
	applyTotals(f, cashFlowTotals)
	return f, nil
}

// CashFlowDocument assembles lines and totals. A nil prior reads as zero.
func CashFlowDocument(current, prior Figures) (lines, totals []domain.StatementLineValue) {
	if prior == nil {
		prior = Figures{}
	}
	lines = make([]domain.StatementLineValue, 0, len(cashFlowLines))
	for _, def := range cashFlowLines {
		lines = append(lines, domain.StatementLineValue{
			LineCode: def.Code,
			Label:    def.Label,
			Section:  def.Section,
			Current:  current.Get(def.Code),
			Prior:    prior.Get(def.Code),
		})
	}
	return lines, totalLines(cashFlowTotals, current, prior)
}
