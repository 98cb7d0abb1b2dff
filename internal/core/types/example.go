package types

import "fmt"

// Example is one labelled sentence of the corpus.
type Example struct {
	Sentence string
	Intent   Intent
	Tokens   []string
	Labels   []Label
}

func (e *Example) Validate() error {
	if _, err := e.Intent.Code(); err != nil {
		return err
	}
	if len(e.Tokens) != len(e.Labels) {
		return fmt.Errorf("token count mismatch for %q: %d tokens vs %d labels", e.Sentence, len(e.Tokens), len(e.Labels))
	}
	if err := ValidateBIO(e.Labels); err != nil {
		return fmt.Errorf("invalid labels for %q: %w", e.Sentence, err)
	}
	return nil
}

func (e *Example) LabelStrings() []string {
	out := make([]string, len(e.Labels))
	for i, l := range e.Labels {
		out[i] = string(l)
	}
	return out
}
