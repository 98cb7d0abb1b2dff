package tokenizer

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	unknownToken         = "[UNK]"
	maxInputCharsPerWord = 100
)

// WordPiece reproduces the tokenization of BERT uncased models: basic
// tokenization (lowercasing, accent stripping, punctuation splitting) followed
// by greedy longest-match-first wordpiece splitting.
type WordPiece struct {
	vocab     map[string]struct{}
	lowercase bool
}

func NewWordPiece(vocab []string, lowercase bool) *WordPiece {
	wp := &WordPiece{vocab: make(map[string]struct{}, len(vocab)), lowercase: lowercase}
	for _, tok := range vocab {
		wp.vocab[tok] = struct{}{}
	}
	return wp
}

func LoadWordPieceFromVocab(path string) (*WordPiece, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening vocab file %s: %w", path, err)
	}
	defer f.Close()

	var vocab []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tok := strings.TrimSpace(scanner.Text())
		if tok == "" {
			continue
		}
		vocab = append(vocab, tok)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading vocab file %s: %w", path, err)
	}

	return NewWordPiece(vocab, true), nil
}

func (w *WordPiece) Tokenize(text string) []string {
	var tokens []string
	for _, word := range w.basicTokenize(text) {
		tokens = append(tokens, w.wordPieces(word)...)
	}
	return tokens
}

func (w *WordPiece) basicTokenize(text string) []string {
	var cleaned strings.Builder
	for _, r := range text {
		if r == 0 || r == unicode.ReplacementChar || isControl(r) {
			continue
		}
		if unicode.IsSpace(r) {
			cleaned.WriteRune(' ')
		} else {
			cleaned.WriteRune(r)
		}
	}

	var words []string
	for _, word := range strings.Fields(cleaned.String()) {
		if w.lowercase {
			word = stripAccents(strings.ToLower(word))
		}
		words = append(words, splitPunctuation(word)...)
	}
	return words
}

func (w *WordPiece) wordPieces(word string) []string {
	chars := []rune(word)
	if len(chars) > maxInputCharsPerWord {
		return []string{unknownToken}
	}

	var pieces []string
	for start := 0; start < len(chars); {
		end := len(chars)
		found := ""
		for start < end {
			candidate := string(chars[start:end])
			if start > 0 {
				candidate = wordPieceContinuation + candidate
			}
			if _, ok := w.vocab[candidate]; ok {
				found = candidate
				break
			}
			end--
		}
		if found == "" {
			return []string{unknownToken}
		}
		pieces = append(pieces, found)
		start = end
	}
	return pieces
}

func stripAccents(s string) string {
	var sb strings.Builder
	for _, r := range norm.NFD.String(s) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

func splitPunctuation(word string) []string {
	var out []string
	var current strings.Builder
	for _, r := range word {
		if isPunctuation(r) {
			if current.Len() > 0 {
				out = append(out, current.String())
				current.Reset()
			}
			out = append(out, string(r))
			continue
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		out = append(out, current.String())
	}
	return out
}

// Non-letter/number ASCII characters are treated as punctuation, as BERT does.
func isPunctuation(r rune) bool {
	if (r >= 33 && r <= 47) || (r >= 58 && r <= 64) || (r >= 91 && r <= 96) || (r >= 123 && r <= 126) {
		return true
	}
	return unicode.IsPunct(r)
}

func isControl(r rune) bool {
	if r == '\t' || r == '\n' || r == '\r' {
		return false
	}
	return unicode.IsControl(r) || unicode.In(r, unicode.Cf)
}
