package rewrite

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/vvka-141/as6mig/pkg/as6mig"
)

// ErrInvalidTable is returned when a mapping table fails validation.
var ErrInvalidTable = errors.New("invalid mapping table")

// Mode selects how a rule's Old identifier is matched.
type Mode int

const (
	// Literal matches Old anywhere, including inside longer identifiers.
	Literal Mode = iota

	// Word matches Old only as a whole token: the characters on either side
	// must not be ASCII letters, digits or underscore.
	Word

	// Member matches ".Old" as a whole token and replaces it with ".New".
	// It targets structure member access such as fb.Parameter.AxesGroup.
	Member
)

func (m Mode) String() string {
	switch m {
	case Literal:
		return "literal"
	case Word:
		return "word"
	case Member:
		return "member"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode converts a mode name to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "literal", "":
		return Literal, nil
	case "word":
		return Word, nil
	case "member":
		return Member, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidTable, s)
	}
}

// Category says what a table is used for. Only Replace tables are ever
// written to disk; the other two only produce notices.
type Category string

const (
	Replace  Category = "replace"
	WarnOnly Category = "warn"
	Removal  Category = "removal"
)

// ParseCategory converts a category name to a Category.
func ParseCategory(s string) (Category, error) {
	switch c := Category(strings.ToLower(strings.TrimSpace(s))); c {
	case "":
		return Replace, nil
	case Replace, WarnOnly, Removal:
		return c, nil
	default:
		return "", fmt.Errorf("%w: unknown category %q", ErrInvalidTable, s)
	}
}

// Rule maps an old identifier to its replacement.
type Rule struct {
	Old string `yaml:"old"`
	New string `yaml:"new"`
}

// Table is an ordered list of rules sharing a match mode.
// Rules are applied in order, one after another, over the same content.
type Table struct {
	Name     string
	Mode     Mode
	Category Category
	Rules    []Rule

	patterns []*regexp.Regexp
}

// NewTable validates rules and compiles their patterns.
// Old identifiers must be non-empty and unique within the table.
func NewTable(name string, mode Mode, category Category, rules []Rule) (*Table, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: table has no name", ErrInvalidTable)
	}
	if mode < Literal || mode > Member {
		return nil, fmt.Errorf("%w: table %q: unknown mode %d", ErrInvalidTable, name, int(mode))
	}
	if category == "" {
		category = Replace
	}

	seen := make(map[string]struct{}, len(rules))
	patterns := make([]*regexp.Regexp, 0, len(rules))
	for i, rule := range rules {
		if strings.TrimSpace(rule.Old) == "" {
			return nil, fmt.Errorf("%w: table %q rule %d: empty identifier", ErrInvalidTable, name, i+1)
		}
		if category != WarnOnly && rule.New == "" {
			return nil, fmt.Errorf("%w: table %q rule %q: empty replacement", ErrInvalidTable, name, rule.Old)
		}
		if _, dup := seen[rule.Old]; dup {
			return nil, fmt.Errorf("%w: table %q: duplicate identifier %q", ErrInvalidTable, name, rule.Old)
		}
		seen[rule.Old] = struct{}{}
		patterns = append(patterns, compile(mode, rule.Old))
	}

	return &Table{
		Name:     name,
		Mode:     mode,
		Category: category,
		Rules:    append([]Rule(nil), rules...),
		patterns: patterns,
	}, nil
}

// MustTable is NewTable for statically known tables.
func MustTable(name string, mode Mode, category Category, rules []Rule) *Table {
	t, err := NewTable(name, mode, category, rules)
	if err != nil {
		panic(err)
	}
	return t
}

func compile(mode Mode, old string) *regexp.Regexp {
	quoted := regexp.QuoteMeta(old)
	switch mode {
	case Word:
		return regexp.MustCompile(`\b` + quoted + `\b`)
	case Member:
		return regexp.MustCompile(`\b\.` + quoted + `\b`)
	default:
		return regexp.MustCompile(quoted)
	}
}

// replacement returns the text substituted for a match of rule i.
func (t *Table) replacement(i int) string {
	if t.Mode == Member {
		return "." + t.Rules[i].New
	}
	return t.Rules[i].New
}

// Find reports how often each rule matches content without changing it.
// Rules without a match are omitted.
func (t *Table) Find(content string) []as6mig.RuleHit {
	var hits []as6mig.RuleHit
	for i, rule := range t.Rules {
		if n := len(t.patterns[i].FindAllStringIndex(content, -1)); n > 0 {
			hits = append(hits, as6mig.RuleHit{Table: t.Name, Old: rule.Old, New: rule.New, Count: n})
		}
	}
	return hits
}

// apply runs every rule in order and returns the new content with per-rule hits.
// Replacement text is inserted literally.
func (t *Table) apply(content string) (string, []as6mig.RuleHit) {
	var hits []as6mig.RuleHit
	for i, rule := range t.Rules {
		re := t.patterns[i]
		n := len(re.FindAllStringIndex(content, -1))
		if n == 0 {
			continue
		}
		content = re.ReplaceAllLiteralString(content, t.replacement(i))
		hits = append(hits, as6mig.RuleHit{Table: t.Name, Old: rule.Old, New: rule.New, Count: n})
	}
	return content, hits
}

// ChainRisk is a pair of rules where the output of the earlier one can be
// matched again by the later one during the same pass.
type ChainRisk struct {
	Earlier Rule
	Later   Rule
	Table   string
}

func (c ChainRisk) String() string {
	return fmt.Sprintf("%s: %q -> %q is matched again by %q -> %q", c.Table, c.Earlier.Old, c.Earlier.New, c.Later.Old, c.Later.New)
}

// ChainRisks returns the rule pairs within this table whose application could chain.
func (t *Table) ChainRisks() []ChainRisk {
	return ChainRisks(t)
}

// ChainRisks checks the tables in application order and reports every later rule
// whose pattern matches the replacement text of an earlier rule.
// Passes are single-shot, so such a pair rewrites a token twice.
func ChainRisks(tables ...*Table) []ChainRisk {
	type applied struct {
		rule Rule
		text string
	}

	var risks []ChainRisk
	var earlier []applied
	for _, t := range tables {
		if t.Category != Replace {
			continue
		}
		for i, rule := range t.Rules {
			re := t.patterns[i]
			for _, e := range earlier {
				if e.rule == rule {
					continue
				}
				if re.MatchString(e.text) {
					risks = append(risks, ChainRisk{Earlier: e.rule, Later: rule, Table: t.Name})
				}
			}
			earlier = append(earlier, applied{rule: rule, text: t.replacement(i)})
		}
	}
	return risks
}

// RemovalNotice is a notice for an identifier whose functionality moved elsewhere.
type RemovalNotice struct {
	Old string

	// Owner is the function block that now covers the functionality.
	Owner string

	// Element is the member of Owner that covers it, empty when the whole block does.
	Element string

	Count int
}

// Removals reports whole-token occurrences of the table's identifiers.
// Nothing is ever rewritten.
func (t *Table) Removals(content string) []RemovalNotice {
	var out []RemovalNotice
	for _, hit := range t.Find(content) {
		owner, element, _ := strings.Cut(hit.New, ".")
		out = append(out, RemovalNotice{Old: hit.Old, Owner: owner, Element: element, Count: hit.Count})
	}
	return out
}
