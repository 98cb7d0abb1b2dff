package datagen

import (
	"fmt"
	"nlu-datagen/internal/core/tokenizer"
	"nlu-datagen/internal/core/types"
	"regexp"
	"slices"
	"strings"
)

// Binding is the value substituted for a placeholder and the entity type its
// tokens are labelled with.
type Binding struct {
	Value  string
	Entity types.EntityType
}

type Bindings map[string]Binding

type Alignment struct {
	Sentence string
	Tokens   []string
	Labels   []types.Label
}

var placeholderRe = regexp.MustCompile(`\{(\w+)\}`)

type piece struct {
	text        string
	placeholder bool
}

// splitTemplate partitions a template into literal and placeholder pieces in
// order. Literal pieces may be empty.
func splitTemplate(template string) []piece {
	matches := placeholderRe.FindAllStringSubmatchIndex(template, -1)
	pieces := make([]piece, 0, 2*len(matches)+1)

	last := 0
	for _, m := range matches {
		pieces = append(pieces, piece{text: template[last:m[0]]})
		pieces = append(pieces, piece{text: template[m[2]:m[3]], placeholder: true})
		last = m[1]
	}
	pieces = append(pieces, piece{text: template[last:]})

	return pieces
}

// Placeholders returns the distinct placeholder names of a template in order of
// first appearance.
func Placeholders(template string) []string {
	var names []string
	for _, m := range placeholderRe.FindAllStringSubmatch(template, -1) {
		if !slices.Contains(names, m[1]) {
			names = append(names, m[1])
		}
	}
	return names
}

// Aligner renders templates and produces BIO labels aligned to the tokens of
// the rendered sentence. Literal text and substituted values are tokenized
// independently, so entity spans line up with token boundaries exactly.
type Aligner struct {
	tokenizer tokenizer.Tokenizer
}

func NewAligner(tok tokenizer.Tokenizer) *Aligner {
	return &Aligner{tokenizer: tok}
}

func (a *Aligner) Align(template string, bindings Bindings) (Alignment, error) {
	if len(bindings) == 0 {
		tokens := a.tokenizer.Tokenize(template)
		return Alignment{
			Sentence: template,
			Tokens:   tokens,
			Labels:   types.OutsideLabels(len(tokens)),
		}, nil
	}

	var (
		out      Alignment
		sentence strings.Builder
		used     = make(map[string]bool, len(bindings))
	)

	for _, p := range splitTemplate(template) {
		if !p.placeholder {
			if p.text == "" {
				continue
			}
			tokens := a.tokenizer.Tokenize(p.text)
			out.Tokens = append(out.Tokens, tokens...)
			out.Labels = append(out.Labels, types.OutsideLabels(len(tokens))...)
			sentence.WriteString(p.text)
			continue
		}

		binding, ok := bindings[p.text]
		if !ok {
			return Alignment{}, fmt.Errorf("%w: {%s} in template %q", ErrUnboundPlaceholder, p.text, template)
		}
		if _, err := types.Begin(binding.Entity).Code(); err != nil {
			return Alignment{}, fmt.Errorf("binding for {%s}: %w", p.text, err)
		}
		used[p.text] = true

		tokens := a.tokenizer.Tokenize(binding.Value)
		out.Tokens = append(out.Tokens, tokens...)
		out.Labels = append(out.Labels, types.SpanLabels(binding.Entity, len(tokens))...)
		sentence.WriteString(binding.Value)
	}

	if err := checkUnused(bindings, used); err != nil {
		return Alignment{}, fmt.Errorf("template %q: %w", template, err)
	}

	out.Sentence = sentence.String()
	return out, nil
}

// Render substitutes values into a template without tokenizing. The same
// binding rules as Align apply.
func Render(template string, values map[string]string) (string, error) {
	if len(values) == 0 {
		return template, nil
	}

	var (
		sentence strings.Builder
		used     = make(map[string]bool, len(values))
	)
	for _, p := range splitTemplate(template) {
		if !p.placeholder {
			sentence.WriteString(p.text)
			continue
		}
		value, ok := values[p.text]
		if !ok {
			return "", fmt.Errorf("%w: {%s} in template %q", ErrUnboundPlaceholder, p.text, template)
		}
		used[p.text] = true
		sentence.WriteString(value)
	}

	if err := checkUnused(values, used); err != nil {
		return "", fmt.Errorf("template %q: %w", template, err)
	}
	return sentence.String(), nil
}

func checkUnused[V any](bindings map[string]V, used map[string]bool) error {
	var unused []string
	for name := range bindings {
		if !used[name] {
			unused = append(unused, name)
		}
	}
	if len(unused) > 0 {
		slices.Sort(unused)
		return fmt.Errorf("%w: %s", ErrUnusedBinding, strings.Join(unused, ", "))
	}
	return nil
}
