package classification

import (
	"fmt"
	"strings"

	"github.com/SscSPs/ohada_ledger/internal/core/domain"
)

// RuleTable is an immutable, compiled mapping from account-number prefixes to statement line codes.
type RuleTable struct {
	standard  domain.AccountingStandard
	statement domain.StatementType
	version   string
	rules     []domain.StatementLineRule
	byCode    map[string]int
	index     *prefixTrie
}

// NewRuleTable validates the rules and compiles them into a prefix trie.
// Loading fails when two patterns overlap, whether or not they belong to the same line.
func NewRuleTable(standard domain.AccountingStandard, statement domain.StatementType, version string, rules []domain.StatementLineRule) (*RuleTable, error) {
	t := &RuleTable{
		standard:  standard,
		statement: statement,
		version:   version,
		rules:     make([]domain.StatementLineRule, 0, len(rules)),
		byCode:    make(map[string]int, len(rules)),
		index:     newPrefixTrie(),
	}

	for _, rule := range rules {
		if rule.LineCode == "" {
			return nil, fmt.Errorf("%s %s rules: line code is required", standard, statement)
		}
		if _, dup := t.byCode[rule.LineCode]; dup {
			return nil, fmt.Errorf("%s %s rules: duplicate line code %s", standard, statement, rule.LineCode)
		}
		if rule.PresentationSign == 0 {
			rule.PresentationSign = 1
		}
		if rule.PresentationSign != 1 && rule.PresentationSign != -1 {
			return nil, fmt.Errorf("%s %s rules: line %s has sign %d, want 1 or -1", standard, statement, rule.LineCode, rule.PresentationSign)
		}
		if len(rule.Patterns) == 0 {
			return nil, fmt.Errorf("%s %s rules: line %s has no account patterns", standard, statement, rule.LineCode)
		}

		compiled := domain.StatementLineRule{
			LineCode:         rule.LineCode,
			Label:            rule.Label,
			Section:          rule.Section,
			PresentationSign: rule.PresentationSign,
		}
		for _, raw := range rule.Patterns {
			p, err := normalizePattern(raw)
			if err != nil {
				return nil, fmt.Errorf("%s %s rules: line %s: %w", standard, statement, rule.LineCode, err)
			}
			if err := t.index.insert(patternRef{lineCode: rule.LineCode, pattern: p}); err != nil {
				return nil, fmt.Errorf("%s %s rules: %w", standard, statement, err)
			}
			compiled.Patterns = append(compiled.Patterns, p)
		}
		for _, raw := range rule.ContraPatterns {
			p, err := normalizePattern(raw)
			if err != nil {
				return nil, fmt.Errorf("%s %s rules: line %s: %w", standard, statement, rule.LineCode, err)
			}
			if err := t.index.insert(patternRef{lineCode: rule.LineCode, pattern: p, contra: true}); err != nil {
				return nil, fmt.Errorf("%s %s rules: %w", standard, statement, err)
			}
			compiled.ContraPatterns = append(compiled.ContraPatterns, p)
		}

		t.byCode[rule.LineCode] = len(t.rules)
		t.rules = append(t.rules, compiled)
	}
	return t, nil
}

// normalizePattern accepts "62" and "62*" as the same prefix.
func normalizePattern(raw string) (string, error) {
	p := strings.TrimSuffix(strings.TrimSpace(raw), "*")
	if p == "" {
		return "", fmt.Errorf("empty account pattern %q", raw)
	}
	return p, nil
}

func (t *RuleTable) Standard() domain.AccountingStandard { return t.standard }
func (t *RuleTable) Statement() domain.StatementType     { return t.statement }
func (t *RuleTable) Version() string                     { return t.version }

// Rules returns a copy of the rules in presentation order.
func (t *RuleTable) Rules() []domain.StatementLineRule {
	out := make([]domain.StatementLineRule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Rule returns the rule for a line code.
func (t *RuleTable) Rule(lineCode string) (domain.StatementLineRule, bool) {
	i, ok := t.byCode[lineCode]
	if !ok {
		return domain.StatementLineRule{}, false
	}
	return t.rules[i], true
}

// Classify returns the line code claiming the account and whether it is claimed as a contra account.
func (t *RuleTable) Classify(accountNumber string) (lineCode string, contra bool, ok bool) {
	ref, ok := t.index.match(accountNumber)
	if !ok {
		return "", false, false
	}
	return ref.lineCode, ref.contra, true
}
