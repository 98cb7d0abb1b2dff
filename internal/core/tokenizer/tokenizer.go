// Package tokenizer adapts subword tokenizers to the single operation the
// corpus generator needs: splitting a piece of text into token strings.
package tokenizer

import (
	"fmt"
	"io"
	"strings"
)

// Tokenizer splits text into an ordered sequence of token strings. It must be
// a deterministic function of its input.
type Tokenizer interface {
	Tokenize(text string) []string
}

type Kind string

const (
	KindWhitespace    Kind = "whitespace"
	KindWordPiece     Kind = "wordpiece"
	KindHuggingFace   Kind = "huggingface"
	KindSentencePiece Kind = "sentencepiece"
)

type Options struct {
	Kind Kind
	// Path is the vocab.txt (wordpiece), tokenizer.json (huggingface) or
	// tokenizer.model (sentencepiece) file.
	Path string
	// Model is a HuggingFace hub model id, used when Path is empty.
	Model string
}

// New creates the tokenizer described by opts. Callers should release it with
// Close when it is done.
func New(opts Options) (Tokenizer, error) {
	switch opts.Kind {
	case KindWhitespace, "":
		return Whitespace{}, nil
	case KindWordPiece:
		if opts.Path == "" {
			return nil, fmt.Errorf("wordpiece tokenizer requires a vocab path")
		}
		return LoadWordPieceFromVocab(opts.Path)
	case KindHuggingFace:
		return LoadHuggingFace(opts.Path, opts.Model)
	case KindSentencePiece:
		if opts.Path == "" {
			return nil, fmt.Errorf("sentencepiece tokenizer requires a model path")
		}
		return LoadSentencePiece(opts.Path)
	default:
		return nil, fmt.Errorf("unknown tokenizer kind '%s'", opts.Kind)
	}
}

func Close(t Tokenizer) error {
	if closer, ok := t.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

// Whitespace splits on unicode whitespace only.
type Whitespace struct{}

func (Whitespace) Tokenize(text string) []string {
	return strings.Fields(text)
}

const (
	wordPieceContinuation = "##"
	sentencePieceSpace    = "▁"
)

// Detokenize concatenates tokens after removing subword markers. The result
// matches the tokenized text with all whitespace removed, modulo the
// tokenizer's own normalization (e.g. lowercasing).
func Detokenize(tokens []string) string {
	var sb strings.Builder
	for _, tok := range tokens {
		tok = strings.TrimPrefix(tok, wordPieceContinuation)
		tok = strings.ReplaceAll(tok, sentencePieceSpace, "")
		sb.WriteString(tok)
	}
	return sb.String()
}
