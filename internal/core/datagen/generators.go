package datagen

import (
	"fmt"
	"nlu-datagen/internal/core/types"
)

// Generator produces sentences of a single intent.
type Generator interface {
	Intent() types.Intent
	// Generate returns a labelled example aligned with the given aligner.
	Generate(r Rand, aligner *Aligner) (types.Example, error)
	// Sentence returns only the rendered sentence.
	Sentence(r Rand) (string, error)
	// PlainMode is how plain datasets of this intent are collected.
	PlainMode() PlainMode
}

type templateGenerator struct {
	pool     *Pool
	entities *Entities
}

func NewTemplateGenerator(pool *Pool, entities *Entities) Generator {
	return &templateGenerator{pool: pool, entities: entities}
}

func (g *templateGenerator) Intent() types.Intent {
	return g.pool.Intent
}

func (g *templateGenerator) PlainMode() PlainMode {
	return g.pool.PlainMode
}

// compose picks a template, samples a value for each placeholder it declares,
// trims punctuation and applies the pool's rewrite rules.
func (g *templateGenerator) compose(r Rand) (string, Bindings, error) {
	template := TrimPunctuation(choice(r, g.pool.Templates))

	bindings := make(Bindings)
	for _, name := range Placeholders(template) {
		kind := g.pool.Placeholders[name]
		entity, err := kind.EntityType()
		if err != nil {
			return "", nil, fmt.Errorf("placeholder {%s}: %w", name, err)
		}
		value, err := g.entities.Sample(r, kind)
		if err != nil {
			return "", nil, fmt.Errorf("placeholder {%s}: %w", name, err)
		}
		bindings[name] = Binding{Value: value, Entity: entity}
	}

	if bank, ok := bindings[bankPlaceholder]; ok {
		template = g.pool.Rewrite(template, bank.Value, g.entities.Catalogs())
	}

	return template, bindings, nil
}

func (g *templateGenerator) Generate(r Rand, aligner *Aligner) (types.Example, error) {
	template, bindings, err := g.compose(r)
	if err != nil {
		return types.Example{}, err
	}
	return alignExample(aligner, g.Intent(), template, bindings)
}

func (g *templateGenerator) Sentence(r Rand) (string, error) {
	template, bindings, err := g.compose(r)
	if err != nil {
		return "", err
	}
	return Render(template, bindings.values())
}

func (b Bindings) values() map[string]string {
	values := make(map[string]string, len(b))
	for name, binding := range b {
		values[name] = binding.Value
	}
	return values
}

func alignExample(aligner *Aligner, intent types.Intent, template string, bindings Bindings) (types.Example, error) {
	alignment, err := aligner.Align(template, bindings)
	if err != nil {
		return types.Example{}, err
	}
	return types.Example{
		Sentence: alignment.Sentence,
		Intent:   intent,
		Tokens:   alignment.Tokens,
		Labels:   alignment.Labels,
	}, nil
}

var bareBankTemplates = []string{"{bank}", "{bank}", "{bank} account"}

// noneGenerator mixes off-topic chatter with bare entity values (a person, an
// amount or a bank), all labelled with the none intent.
type noneGenerator struct {
	chatter  *templateGenerator
	entities *Entities
}

func NewNoneGenerator(chatter *Pool, entities *Entities) Generator {
	return &noneGenerator{
		chatter:  &templateGenerator{pool: chatter, entities: entities},
		entities: entities,
	}
}

func (g *noneGenerator) Intent() types.Intent {
	return types.NoneIntent
}

func (g *noneGenerator) PlainMode() PlainMode {
	return g.chatter.PlainMode()
}

func (g *noneGenerator) compose(r Rand) (string, Bindings, error) {
	var (
		template string
		kind     EntityKind
		name     string
	)
	switch r.Intn(4) {
	case 0:
		return g.chatter.compose(r)
	case 1:
		template, name, kind = "{user}", "user", PersonKind
	case 2:
		template, name, kind = "{amount}", "amount", AmountKind
	default:
		template, name, kind = choice(r, bareBankTemplates), bankPlaceholder, BankKind
	}

	value, err := g.entities.Sample(r, kind)
	if err != nil {
		return "", nil, err
	}
	entity, err := kind.EntityType()
	if err != nil {
		return "", nil, err
	}
	return template, Bindings{name: {Value: value, Entity: entity}}, nil
}

func (g *noneGenerator) Generate(r Rand, aligner *Aligner) (types.Example, error) {
	template, bindings, err := g.compose(r)
	if err != nil {
		return types.Example{}, err
	}
	return alignExample(aligner, types.NoneIntent, template, bindings)
}

func (g *noneGenerator) Sentence(r Rand) (string, error) {
	template, bindings, err := g.compose(r)
	if err != nil {
		return "", err
	}
	return Render(template, bindings.values())
}

// NewGenerators loads every template pool and returns one generator per
// intent, ordered by intent code. The person-name pool is drawn once from r
// and shared by all generators.
func NewGenerators(r Rand, mix NameMix) ([]Generator, error) {
	catalogs, err := LoadCatalogs()
	if err != nil {
		return nil, err
	}

	entities, err := NewEntities(r, catalogs, mix)
	if err != nil {
		return nil, err
	}

	generators := make([]Generator, 0, len(types.Intents))
	for _, intent := range types.Intents {
		pool, err := LoadPool(intent)
		if err != nil {
			return nil, err
		}
		if intent == types.NoneIntent {
			generators = append(generators, NewNoneGenerator(pool, entities))
		} else {
			generators = append(generators, NewTemplateGenerator(pool, entities))
		}
	}

	return generators, nil
}
