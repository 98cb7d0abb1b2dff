package tokenizer

import (
	"fmt"

	"github.com/daulet/tokenizers"
)

// HuggingFace wraps a tokenizer.json loaded through the Rust tokenizers
// library. Special tokens are never added so that literal pieces and
// placeholder values tokenize the same way in isolation.
type HuggingFace struct {
	tk *tokenizers.Tokenizer
}

func LoadHuggingFace(path, model string) (*HuggingFace, error) {
	var (
		tk  *tokenizers.Tokenizer
		err error
	)
	switch {
	case path != "":
		tk, err = tokenizers.FromFile(path)
	case model != "":
		tk, err = tokenizers.FromPretrained(model)
	default:
		return nil, fmt.Errorf("huggingface tokenizer requires a tokenizer.json path or a model id")
	}
	if err != nil {
		return nil, fmt.Errorf("error loading huggingface tokenizer: %w", err)
	}
	return &HuggingFace{tk: tk}, nil
}

func (h *HuggingFace) Tokenize(text string) []string {
	_, tokens := h.tk.Encode(text, false)
	return tokens
}

func (h *HuggingFace) Close() error {
	return h.tk.Close()
}
