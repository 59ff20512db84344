package classification

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"

	"github.com/SscSPs/ohada_ledger/internal/apperrors"
	"github.com/SscSPs/ohada_ledger/internal/core/domain"
	"gopkg.in/yaml.v3"
)

//go:embed rules/*.yaml
var embeddedRules embed.FS

const standardsFile = "standards.yaml"

type standardsDocument struct {
	Standards []standardDocument `yaml:"standards"`
}

type standardDocument struct {
	Code          string            `yaml:"code"`
	Name          string            `yaml:"name"`
	AccountFormat string            `yaml:"accountFormat"`
	Tables        map[string]string `yaml:"tables"`
}

type tableDocument struct {
	Standard  string         `yaml:"standard"`
	Statement string         `yaml:"statement"`
	Version   string         `yaml:"version"`
	Lines     []lineDocument `yaml:"lines"`
}

type lineDocument struct {
	Code     string   `yaml:"code"`
	Label    string   `yaml:"label"`
	Section  string   `yaml:"section"`
	Sign     int      `yaml:"sign"`
	Accounts []string `yaml:"accounts"`
	Contra   []string `yaml:"contra"`
}

// Standard describes one accounting standard known to the registry.
type Standard struct {
	Code          domain.AccountingStandard
	Name          string
	AccountFormat *regexp.Regexp // nil when the standard imposes no account format
}

type tableKey struct {
	standard  domain.AccountingStandard
	statement domain.StatementType
}

// Registry holds the accounting standards and their compiled rule tables. It is read-only after loading.
type Registry struct {
	standards map[domain.AccountingStandard]Standard
	tables    map[tableKey]*RuleTable
}

// LoadEmbedded loads the rule tables shipped with the binary.
func LoadEmbedded() (*Registry, error) {
	sub, err := fs.Sub(embeddedRules, "rules")
	if err != nil {
		return nil, fmt.Errorf("failed to open embedded rules: %w", err)
	}
	return Load(sub)
}

// LoadDir loads rule tables from a directory holding standards.yaml and the table files it names.
func LoadDir(dir string) (*Registry, error) {
	return Load(os.DirFS(dir))
}

// Load reads standards.yaml from fsys and compiles every rule table it references.
func Load(fsys fs.FS) (*Registry, error) {
	raw, err := fs.ReadFile(fsys, standardsFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", standardsFile, err)
	}
	var doc standardsDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", standardsFile, err)
	}

	reg := &Registry{
		standards: make(map[domain.AccountingStandard]Standard, len(doc.Standards)),
		tables:    make(map[tableKey]*RuleTable),
	}
	for _, sd := range doc.Standards {
		code := domain.AccountingStandard(sd.Code)
		std := Standard{Code: code, Name: sd.Name}
		if sd.AccountFormat != "" {
			re, err := regexp.Compile(sd.AccountFormat)
			if err != nil {
				return nil, fmt.Errorf("standard %s: invalid account format: %w", sd.Code, err)
			}
			std.AccountFormat = re
		}
		reg.standards[code] = std

		for statement, file := range sd.Tables {
			table, err := loadTable(fsys, file)
			if err != nil {
				return nil, err
			}
			if table.standard != code || string(table.statement) != statement {
				return nil, fmt.Errorf("%s declares %s %s but standards.yaml expects %s %s",
					file, table.standard, table.statement, code, statement)
			}
			reg.tables[tableKey{standard: code, statement: table.statement}] = table
		}
	}
	return reg, nil
}

func loadTable(fsys fs.FS, file string) (*RuleTable, error) {
	raw, err := fs.ReadFile(fsys, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read rule table %s: %w", file, err)
	}
	var doc tableDocument
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse rule table %s: %w", file, err)
	}
	rules := make([]domain.StatementLineRule, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		rules = append(rules, domain.StatementLineRule{
			LineCode:         l.Code,
			Label:            l.Label,
			Section:          l.Section,
			Patterns:         l.Accounts,
			ContraPatterns:   l.Contra,
			PresentationSign: l.Sign,
		})
	}
	table, err := NewRuleTable(domain.AccountingStandard(doc.Standard), domain.StatementType(doc.Statement), doc.Version, rules)
	if err != nil {
		return nil, fmt.Errorf("rule table %s: %w", file, err)
	}
	return table, nil
}

// Standard returns the definition of an accounting standard.
func (r *Registry) Standard(code domain.AccountingStandard) (Standard, error) {
	std, ok := r.standards[code]
	if !ok {
		return Standard{}, fmt.Errorf("%w: unknown accounting standard %q", apperrors.ErrValidation, code)
	}
	return std, nil
}

// AccountFormat returns the account-number pattern of a standard, nil when it defines none.
func (r *Registry) AccountFormat(code domain.AccountingStandard) (*regexp.Regexp, error) {
	std, err := r.Standard(code)
	if err != nil {
		return nil, err
	}
	return std.AccountFormat, nil
}

// Table returns the rule table of a standard for a statement type.
func (r *Registry) Table(code domain.AccountingStandard, statement domain.StatementType) (*RuleTable, error) {
	if _, err := r.Standard(code); err != nil {
		return nil, err
	}
	table, ok := r.tables[tableKey{standard: code, statement: statement}]
	if !ok {
		return nil, fmt.Errorf("%w: standard %s has no %s rule table", apperrors.ErrValidation, code, statement)
	}
	return table, nil
}

// Tables lists every loaded rule table, ordered by standard then statement.
func (r *Registry) Tables() []*RuleTable {
	out := make([]*RuleTable, 0, len(r.tables))
	for _, t := range r.tables {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].standard != out[j].standard {
			return out[i].standard < out[j].standard
		}
		return out[i].statement < out[j].statement
	})
	return out
}
