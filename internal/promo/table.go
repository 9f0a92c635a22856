package promo

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/angelmondragon/storefront/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var referenceRules []byte

// Table is an immutable code to rule lookup.
type Table struct {
	rules map[string]Rule
	order []string
}

// NewTable validates rules and indexes them by normalized code.
func NewTable(rules ...Rule) (*Table, error) {
	t := &Table{rules: make(map[string]Rule, len(rules)), order: make([]string, 0, len(rules))}
	for _, r := range rules {
		if err := r.Validate(); err != nil {
			return nil, err
		}
		r.Code = NormalizeCode(r.Code)
		if _, dup := t.rules[r.Code]; dup {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "duplicate promo code").WithDetails(map[string]string{"code": r.Code})
		}
		t.rules[r.Code] = r
		t.order = append(t.order, r.Code)
	}
	return t, nil
}

// Lookup finds the rule for code, ignoring case and surrounding space.
func (t *Table) Lookup(code string) (Rule, bool) {
	if t == nil {
		return Rule{}, false
	}
	r, ok := t.rules[NormalizeCode(code)]
	return r, ok
}

// Rules lists the table in declaration order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, 0, len(t.order))
	for _, code := range t.order {
		out = append(out, t.rules[code])
	}
	return out
}

// Len is the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.order)
}

type tableFile struct {
	Rules []ruleEntry `yaml:"rules"`
}

type ruleEntry struct {
	Code   string `yaml:"code"`
	Kind   string `yaml:"kind"`
	Amount string `yaml:"amount"`
}

// ParseTable decodes a YAML rule table.
func ParseTable(data []byte) (*Table, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode promo rules")
	}
	rules := make([]Rule, 0, len(file.Rules))
	for i, entry := range file.Rules {
		kind, err := enums.ParsePromoKind(entry.Kind)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("promo rule %d", i))
		}
		amount, err := decimal.NewFromString(strings.TrimSpace(entry.Amount))
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, fmt.Sprintf("promo rule %d: amount", i))
		}
		rules = append(rules, Rule{Code: entry.Code, Kind: kind, Amount: amount})
	}
	return NewTable(rules...)
}

// LoadTable reads a YAML rule table from path.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading promo rules %s: %w", path, err)
	}
	return ParseTable(data)
}

// ReferenceTable is the built-in table (SAVE10, FREEFRIES).
func ReferenceTable() *Table {
	t, err := ParseTable(referenceRules)
	if err != nil {
		panic(fmt.Sprintf("embedded promo rules are invalid: %v", err))
	}
	return t
}
