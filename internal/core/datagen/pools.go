package datagen

import (
	"embed"
	"fmt"
	"nlu-datagen/internal/core/types"
	"slices"
	"strings"

	"gopkg.in/yaml.v2"
)

//go:embed pools/*.yaml
var poolFS embed.FS

const (
	catalogsFile    = "pools/catalogs.yaml"
	bankPlaceholder = "bank"
)

// EntityKind names the provider that fills a placeholder.
type EntityKind string

const (
	AmountKind   EntityKind = "amount"
	BankKind     EntityKind = "bank"
	CurrencyKind EntityKind = "currency"
	PersonKind   EntityKind = "person"
)

func (k EntityKind) EntityType() (types.EntityType, error) {
	switch k {
	case AmountKind:
		return types.AmountEntity, nil
	case BankKind:
		return types.BankEntity, nil
	case CurrencyKind:
		return types.CurrencyEntity, nil
	case PersonKind:
		return types.UserEntity, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityKind, string(k))
	}
}

// Rule rewrites a template when the bank placeholder resolves to a generic
// value such as "default", so that the sentence stays grammatical.
type Rule struct {
	Trigger     string `yaml:"trigger"`
	Replacement string `yaml:"replacement"`
}

// PlainMode selects how plain sentence datasets are collected for a pool.
type PlainMode string

const (
	// PlainUnique keeps distinct sentences only, up to an attempt cap.
	PlainUnique PlainMode = "unique"
	// PlainFixed always produces the requested count, repeating sentences of
	// small pools.
	PlainFixed PlainMode = "fixed"
)

// Pool is the template data of a single intent.
type Pool struct {
	Intent       types.Intent          `yaml:"intent"`
	PlainMode    PlainMode             `yaml:"plain_mode"`
	Placeholders map[string]EntityKind `yaml:"placeholders"`
	Rules        []Rule                `yaml:"rules"`
	Templates    []string              `yaml:"templates"`
}

func LoadPool(intent types.Intent) (*Pool, error) {
	data, err := poolFS.ReadFile(fmt.Sprintf("pools/%s.yaml", intent))
	if err != nil {
		return nil, fmt.Errorf("error reading template pool for intent '%s': %w", intent, err)
	}

	pool, err := ParsePool(data)
	if err != nil {
		return nil, err
	}
	if pool.Intent != intent {
		return nil, fmt.Errorf("template pool for intent '%s' declares intent '%s'", intent, pool.Intent)
	}
	return pool, nil
}

func ParsePool(data []byte) (*Pool, error) {
	var pool Pool
	if err := yaml.UnmarshalStrict(data, &pool); err != nil {
		return nil, fmt.Errorf("error parsing template pool: %w", err)
	}
	if err := pool.validate(); err != nil {
		return nil, fmt.Errorf("invalid template pool for intent '%s': %w", pool.Intent, err)
	}
	return &pool, nil
}

func (p *Pool) validate() error {
	if _, err := p.Intent.Code(); err != nil {
		return err
	}
	if len(p.Templates) == 0 {
		return fmt.Errorf("no templates")
	}
	switch p.PlainMode {
	case "":
		p.PlainMode = PlainUnique
	case PlainUnique, PlainFixed:
	default:
		return fmt.Errorf("unknown plain mode %q", p.PlainMode)
	}
	for name, kind := range p.Placeholders {
		if _, err := kind.EntityType(); err != nil {
			return fmt.Errorf("placeholder {%s}: %w", name, err)
		}
	}
	for _, template := range p.Templates {
		for _, name := range Placeholders(template) {
			if _, ok := p.Placeholders[name]; !ok {
				return fmt.Errorf("template %q uses undeclared placeholder {%s}", template, name)
			}
		}
	}
	for _, rule := range p.Rules {
		if !slices.Equal(Placeholders(rule.Trigger), Placeholders(rule.Replacement)) {
			return fmt.Errorf("rule %q -> %q changes the placeholders", rule.Trigger, rule.Replacement)
		}
	}
	return nil
}

// Rewrite applies the first rule whose trigger occurs in the template,
// replacing every occurrence. Rules only fire for generic bank values and only
// when the template does not already mention the bank account.
func (p *Pool) Rewrite(template, bank string, catalogs *Catalogs) string {
	bankRef := "{" + bankPlaceholder + "}"
	if !strings.Contains(template, bankRef) || !catalogs.IsGenericBank(bank) {
		return template
	}
	if strings.Contains(template, bankRef+" account") {
		return template
	}
	for _, rule := range p.Rules {
		if strings.Contains(template, rule.Trigger) {
			return strings.ReplaceAll(template, rule.Trigger, rule.Replacement)
		}
	}
	return template
}

// Catalogs holds the fixed value lists the entity providers draw from.
type Catalogs struct {
	GenericBanks      []string `yaml:"generic_banks"`
	CurrencySymbols   []string `yaml:"currency_symbols"`
	CurrencyLiterals  []string `yaml:"currency_literals"`
	Banks             []string `yaml:"banks"`
	EnglishFirstNames []string `yaml:"english_first_names"`
	EnglishSurnames   []string `yaml:"english_surnames"`
	ItalianFirstNames []string `yaml:"italian_first_names"`
	ItalianSurnames   []string `yaml:"italian_surnames"`
	Relatives         []string `yaml:"relatives"`
	Professions       []string `yaml:"professions"`
}

func LoadCatalogs() (*Catalogs, error) {
	data, err := poolFS.ReadFile(catalogsFile)
	if err != nil {
		return nil, fmt.Errorf("error reading catalogs: %w", err)
	}

	var catalogs Catalogs
	if err := yaml.UnmarshalStrict(data, &catalogs); err != nil {
		return nil, fmt.Errorf("error parsing catalogs: %w", err)
	}

	for name, list := range map[string][]string{
		"generic_banks":       catalogs.GenericBanks,
		"currency_symbols":    catalogs.CurrencySymbols,
		"currency_literals":   catalogs.CurrencyLiterals,
		"banks":               catalogs.Banks,
		"english_first_names": catalogs.EnglishFirstNames,
		"english_surnames":    catalogs.EnglishSurnames,
		"italian_first_names": catalogs.ItalianFirstNames,
		"italian_surnames":    catalogs.ItalianSurnames,
		"relatives":           catalogs.Relatives,
		"professions":         catalogs.Professions,
	} {
		if len(list) == 0 {
			return nil, fmt.Errorf("catalog '%s' is empty", name)
		}
	}

	return &catalogs, nil
}

// BankNames is the full bank catalog including the generic values.
func (c *Catalogs) BankNames() []string {
	return slices.Concat(c.Banks, c.GenericBanks)
}

func (c *Catalogs) IsGenericBank(bank string) bool {
	return slices.Contains(c.GenericBanks, bank)
}

func (c *Catalogs) commonNames() []string {
	return slices.Concat(c.Relatives, c.Professions)
}
