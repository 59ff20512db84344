// Package statements derives SYSCOHADA statement figures from aggregated balances.
// Every function is pure; callers own snapshots, persistence and identifiers.
package statements

import (
	"github.com/SscSPs/ohada_ledger/internal/core/classification"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Figures holds presented values by line or total code. Missing codes read as zero.
type Figures map[string]decimal.Decimal

// Get returns the value of a code, zero when absent.
func (f Figures) Get(code string) decimal.Decimal {
	if v, ok := f[code]; ok {
		return v
	}
	return decimal.Zero
}

// Sum adds the values of the given codes.
func (f Figures) Sum(codes ...string) decimal.Decimal {
	total := decimal.Zero
	for _, code := range codes {
		total = total.Add(f.Get(code))
	}
	return total
}

// totalDef is one hardcoded derived total of a statement.
type totalDef struct {
	Code    string
	Label   string
	Section string
	Compute func(f Figures) decimal.Decimal
}

// sumOf builds a total that adds line codes.
func sumOf(codes ...string) func(Figures) decimal.Decimal {
	return func(f Figures) decimal.Decimal { return f.Sum(codes...) }
}

// applyTotals evaluates totals in order so later totals can use earlier ones.
func applyTotals(f Figures, defs []totalDef) {
	for _, def := range defs {
		f[def.Code] = def.Compute(f)
	}
}

// present applies each rule's presentation sign to the raw aggregation.
func present(table *classification.RuleTable, agg classification.Aggregation) (net, gross Figures) {
	net = make(Figures, len(agg.Lines))
	gross = make(Figures, len(agg.Lines))
	for _, rule := range table.Rules() {
		amt := agg.Lines[rule.LineCode]
		sign := decimal.NewFromInt(int64(rule.PresentationSign))
		net[rule.LineCode] = amt.Net.Mul(sign)
		gross[rule.LineCode] = amt.Gross.Mul(sign)
	}
	return net, gross
}

// ruleLines lists the rule lines of a table with current and prior presented values.
func ruleLines(table *classification.RuleTable, current, prior Figures, gross Figures) []domain.StatementLineValue {
	rules := table.Rules()
	lines := make([]domain.StatementLineValue, 0, len(rules))
	for _, rule := range rules {
		lv := domain.StatementLineValue{
			LineCode: rule.LineCode,
			Label:    rule.Label,
			Section:  rule.Section,
			Current:  current.Get(rule.LineCode),
			Prior:    prior.Get(rule.LineCode),
		}
		if gross != nil && len(rule.ContraPatterns) > 0 {
			g := gross.Get(rule.LineCode)
			c := lv.Current.Sub(g)
			lv.Gross = &g
			lv.Contra = &c
		}
		lines = append(lines, lv)
	}
	return lines
}

// totalLines lists derived totals with current and prior values.
func totalLines(defs []totalDef, current, prior Figures) []domain.StatementLineValue {
	lines := make([]domain.StatementLineValue, 0, len(defs))
	for _, def := range defs {
		lines = append(lines, domain.StatementLineValue{
			LineCode: def.Code,
			Label:    def.Label,
			Section:  def.Section,
			Current:  current.Get(def.Code),
			Prior:    prior.Get(def.Code),
		})
	}
	return lines
}
