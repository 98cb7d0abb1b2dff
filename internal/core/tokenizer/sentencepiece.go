package tokenizer

import (
	"fmt"

	"github.com/eliben/go-sentencepiece"
)

type SentencePiece struct {
	proc *sentencepiece.Processor
}

func LoadSentencePiece(path string) (*SentencePiece, error) {
	proc, err := sentencepiece.NewProcessorFromPath(path)
	if err != nil {
		return nil, fmt.Errorf("error loading sentencepiece model %s: %w", path, err)
	}
	return &SentencePiece{proc: proc}, nil
}

func (s *SentencePiece) Tokenize(text string) []string {
	encoded := s.proc.Encode(text)
	tokens := make([]string, 0, len(encoded))
	for _, tok := range encoded {
		tokens = append(tokens, tok.Text)
	}
	return tokens
}
