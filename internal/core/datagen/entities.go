package datagen

import (
	"fmt"
	"slices"
)

// NameMix is the number of names of each family to draw.
type NameMix struct {
	EnglishFirst int `yaml:"english_first" json:"english_first"`
	EnglishFull  int `yaml:"english_full" json:"english_full"`
	ItalianFirst int `yaml:"italian_first" json:"italian_first"`
	ItalianFull  int `yaml:"italian_full" json:"italian_full"`
	Common       int `yaml:"common" json:"common"`
}

// DefaultNameMix is the pool of person names shared by the intent generators.
var DefaultNameMix = NameMix{
	EnglishFirst: 100,
	EnglishFull:  100,
	ItalianFirst: 100,
	ItalianFull:  100,
	Common:       50,
}

// EvenNameMix splits total evenly across the five name families, dropping
// the remainder.
func EvenNameMix(total int) NameMix {
	share := total / 5
	return NameMix{
		EnglishFirst: share,
		EnglishFull:  share,
		ItalianFirst: share,
		ItalianFull:  share,
		Common:       share,
	}
}

func (m NameMix) Total() int {
	return m.EnglishFirst + m.EnglishFull + m.ItalianFirst + m.ItalianFull + m.Common
}

// PickNames draws first and full names without replacement, fills the common
// names, and shuffles the result.
func PickNames(r Rand, c *Catalogs, mix NameMix) ([]string, error) {
	names := make([]string, 0, mix.Total())

	englishFirst, err := sample(r, c.EnglishFirstNames, mix.EnglishFirst)
	if err != nil {
		return nil, fmt.Errorf("english first names: %w", err)
	}
	names = append(names, englishFirst...)

	englishFull, err := pickFullNames(r, c.EnglishFirstNames, c.EnglishSurnames, mix.EnglishFull)
	if err != nil {
		return nil, fmt.Errorf("english full names: %w", err)
	}
	names = append(names, englishFull...)

	italianFirst, err := sample(r, c.ItalianFirstNames, mix.ItalianFirst)
	if err != nil {
		return nil, fmt.Errorf("italian first names: %w", err)
	}
	names = append(names, italianFirst...)

	italianFull, err := pickFullNames(r, c.ItalianFirstNames, c.ItalianSurnames, mix.ItalianFull)
	if err != nil {
		return nil, fmt.Errorf("italian full names: %w", err)
	}
	names = append(names, italianFull...)

	for range mix.Common {
		names = append(names, randomCommonName(r, c))
	}

	Shuffle(r, names)
	return names, nil
}

func pickFullNames(r Rand, firstNames, surnames []string, n int) ([]string, error) {
	first, err := sample(r, firstNames, n)
	if err != nil {
		return nil, err
	}
	last, err := sample(r, surnames, n)
	if err != nil {
		return nil, err
	}
	full := make([]string, n)
	for i := range full {
		full[i] = first[i] + " " + last[i]
	}
	return full, nil
}

// RandomNames draws names with replacement, so any mix size is allowed.
func RandomNames(r Rand, c *Catalogs, mix NameMix) []string {
	names := make([]string, 0, mix.Total())
	for range mix.EnglishFirst {
		names = append(names, choice(r, c.EnglishFirstNames))
	}
	for range mix.EnglishFull {
		names = append(names, choice(r, c.EnglishFirstNames)+" "+choice(r, c.EnglishSurnames))
	}
	for range mix.ItalianFirst {
		names = append(names, choice(r, c.ItalianFirstNames))
	}
	for range mix.ItalianFull {
		names = append(names, choice(r, c.ItalianFirstNames)+" "+choice(r, c.ItalianSurnames))
	}
	for range mix.Common {
		names = append(names, randomCommonName(r, c))
	}
	Shuffle(r, names)
	return names
}

// randomCommonName is a relative or profession, followed half of the time by
// an English or Italian first name ("mum Sarah").
func randomCommonName(r Rand, c *Catalogs) string {
	name := choice(r, c.commonNames())
	if coin(r) {
		return name
	}
	if coin(r) {
		return name + " " + choice(r, c.EnglishFirstNames)
	}
	return name + " " + choice(r, c.ItalianFirstNames)
}

// Entities provides values for every entity kind. Person names come from a
// pool picked once at construction.
type Entities struct {
	catalogs *Catalogs
	names    []string
}

func NewEntities(r Rand, c *Catalogs, mix NameMix) (*Entities, error) {
	names, err := PickNames(r, c, mix)
	if err != nil {
		return nil, fmt.Errorf("error picking person names: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("name mix is empty")
	}
	return &Entities{catalogs: c, names: names}, nil
}

func (e *Entities) Catalogs() *Catalogs {
	return e.catalogs
}

func (e *Entities) Names() []string {
	return slices.Clone(e.names)
}

func (e *Entities) Sample(r Rand, kind EntityKind) (string, error) {
	switch kind {
	case AmountKind:
		return RandomAmount(r, e.catalogs), nil
	case BankKind:
		return RandomBank(r, e.catalogs), nil
	case CurrencyKind:
		return RandomCurrency(r, e.catalogs), nil
	case PersonKind:
		return choice(r, e.names), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownEntityKind, string(kind))
	}
}
