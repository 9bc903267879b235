// Package catalog holds the static, versioned pattern catalog: textual
// matching rules per semantic category plus the scoring vocabularies.
// The catalog is data; the extractors own all evaluation logic.
package catalog

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"github.com/grantsieve/grantsieve/internal/model"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Rule is one compiled matching rule
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
}

// DateField marks which end of a range a single-cue date rule populates
type DateField string

const (
	FieldStart DateField = "start"
	FieldEnd   DateField = "end"
)

// SingleDateRule is a one-capture date cue bound to a range end
type SingleDateRule struct {
	Rule
	Field DateField
}

// Catalog is the compiled pattern catalog
type Catalog struct {
	Version int

	// Grant cascade in priority order
	GrantRules []Rule

	// Vocabularies for confidence scoring
	Keywords      []string
	Organizations []string
	ContextTerms  []string

	// OrgPattern matches any organization name on word boundaries
	OrgPattern *regexp.Regexp

	Financial map[model.FinancialCategory][]Rule

	DateRanges  []Rule
	DateSingles []SingleDateRule

	ProjectTitle       []Rule
	ProjectDescription []Rule
}

type rawRule struct {
	Name    string `yaml:"name"`
	Field   string `yaml:"field"`
	Pattern string `yaml:"pattern"`
}

type rawCatalog struct {
	Version       int                  `yaml:"version"`
	Grants        []rawRule            `yaml:"grants"`
	Keywords      []string             `yaml:"keywords"`
	Organizations []string             `yaml:"organizations"`
	ContextTerms  []string             `yaml:"context_terms"`
	Financial     map[string][]rawRule `yaml:"financial"`
	Dates         struct {
		Ranges  []rawRule `yaml:"ranges"`
		Singles []rawRule `yaml:"singles"`
	} `yaml:"dates"`
	Project struct {
		Title       []rawRule `yaml:"title"`
		Description []rawRule `yaml:"description"`
	} `yaml:"project"`
}

// Load parses and compiles the embedded catalog. A malformed rule is a
// build-time defect: Load fails rather than skipping it.
func Load() (*Catalog, error) {
	return loadBytes(catalogYAML)
}

func loadBytes(data []byte) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if raw.Version < 1 {
		return nil, fmt.Errorf("catalog version missing")
	}

	c := &Catalog{
		Version:       raw.Version,
		Keywords:      raw.Keywords,
		Organizations: raw.Organizations,
		ContextTerms:  raw.ContextTerms,
		Financial:     make(map[model.FinancialCategory][]Rule),
	}

	var err error
	if c.GrantRules, err = compileRules("grants", raw.Grants); err != nil {
		return nil, err
	}
	if len(c.GrantRules) == 0 {
		return nil, fmt.Errorf("catalog has no grant rules")
	}

	for _, cat := range model.Categories() {
		rawRules, ok := raw.Financial[string(cat)]
		if !ok {
			return nil, fmt.Errorf("catalog missing financial category %q", cat)
		}
		rules, err := compileRules("financial."+string(cat), rawRules)
		if err != nil {
			return nil, err
		}
		for _, r := range rules {
			if r.Pattern.NumSubexp() != 1 {
				return nil, fmt.Errorf("financial rule %q must have exactly one capture", r.Name)
			}
		}
		c.Financial[cat] = rules
	}

	if c.DateRanges, err = compileRules("dates.ranges", raw.Dates.Ranges); err != nil {
		return nil, err
	}
	for _, r := range c.DateRanges {
		if r.Pattern.NumSubexp() != 2 {
			return nil, fmt.Errorf("range rule %q must have exactly two captures", r.Name)
		}
	}

	for _, rr := range raw.Dates.Singles {
		rule, err := compileRule("dates.singles", rr)
		if err != nil {
			return nil, err
		}
		field := DateField(rr.Field)
		if field != FieldStart && field != FieldEnd {
			return nil, fmt.Errorf("single-cue rule %q has invalid field %q", rr.Name, rr.Field)
		}
		if rule.Pattern.NumSubexp() != 1 {
			return nil, fmt.Errorf("single-cue rule %q must have exactly one capture", rr.Name)
		}
		c.DateSingles = append(c.DateSingles, SingleDateRule{Rule: rule, Field: field})
	}

	if c.ProjectTitle, err = compileRules("project.title", raw.Project.Title); err != nil {
		return nil, err
	}
	if c.ProjectDescription, err = compileRules("project.description", raw.Project.Description); err != nil {
		return nil, err
	}

	if len(c.Organizations) > 0 {
		quoted := make([]string, len(c.Organizations))
		for i, org := range c.Organizations {
			quoted[i] = regexp.QuoteMeta(org)
		}
		c.OrgPattern, err = regexp.Compile(`\b(?:` + strings.Join(quoted, "|") + `)\b`)
		if err != nil {
			return nil, fmt.Errorf("compile organization pattern: %w", err)
		}
	}

	return c, nil
}

func compileRules(section string, raw []rawRule) ([]Rule, error) {
	rules := make([]Rule, 0, len(raw))
	for _, rr := range raw {
		rule, err := compileRule(section, rr)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func compileRule(section string, rr rawRule) (Rule, error) {
	if rr.Name == "" {
		return Rule{}, fmt.Errorf("%s: rule without a name", section)
	}
	re, err := regexp.Compile(rr.Pattern)
	if err != nil {
		return Rule{}, fmt.Errorf("%s.%s: %w", section, rr.Name, err)
	}
	return Rule{Name: rr.Name, Pattern: re}, nil
}
