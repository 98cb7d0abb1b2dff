package storage

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"nlu-datagen/internal/core/types"
	"os"
	"path/filepath"
	"strconv"
)

const (
	IntentsFile       = "intents.csv"
	NamedEntitiesFile = "named_entities.csv"
	plainHeader       = "Sentence"
)

// WriteCorpus writes one [sentence, intent, intent code] row per example to
// intents and one [token, label, label code] row per token to entities, with
// an empty row after each sentence's tokens.
func WriteCorpus(intents, entities io.Writer, examples []types.Example) error {
	intentsWriter := csv.NewWriter(intents)
	entitiesWriter := csv.NewWriter(entities)

	for _, example := range examples {
		if len(example.Tokens) != len(example.Labels) {
			return fmt.Errorf("token count mismatch for %q: %d tokens vs %d labels", example.Sentence, len(example.Tokens), len(example.Labels))
		}

		intentCode, err := example.Intent.Code()
		if err != nil {
			return err
		}
		if err := intentsWriter.Write([]string{example.Sentence, string(example.Intent), strconv.Itoa(intentCode)}); err != nil {
			return fmt.Errorf("error writing intent row: %w", err)
		}

		for i, token := range example.Tokens {
			labelCode, err := example.Labels[i].Code()
			if err != nil {
				return err
			}
			if err := entitiesWriter.Write([]string{token, string(example.Labels[i]), strconv.Itoa(labelCode)}); err != nil {
				return fmt.Errorf("error writing token row: %w", err)
			}
		}
		if err := entitiesWriter.Write([]string{}); err != nil {
			return fmt.Errorf("error writing token row: %w", err)
		}
	}

	intentsWriter.Flush()
	entitiesWriter.Flush()
	return errors.Join(intentsWriter.Error(), entitiesWriter.Error())
}

// WriteCorpusFiles writes intents.csv and named_entities.csv into dir and
// returns their paths.
func WriteCorpusFiles(dir string, examples []types.Example) ([]string, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}

	intentsPath := filepath.Join(dir, IntentsFile)
	entitiesPath := filepath.Join(dir, NamedEntitiesFile)

	intents, err := os.Create(intentsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", intentsPath, err)
	}
	defer intents.Close()

	entities, err := os.Create(entitiesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", entitiesPath, err)
	}
	defer entities.Close()

	if err := WriteCorpus(intents, entities, examples); err != nil {
		return nil, fmt.Errorf("error writing corpus to %s: %w", dir, err)
	}

	return []string{intentsPath, entitiesPath}, nil
}

// ReadCorpus parses the two files written by WriteCorpus back into examples.
func ReadCorpus(intents, entities io.Reader) ([]types.Example, error) {
	intentsReader := csv.NewReader(intents)
	intentsReader.FieldsPerRecord = 3

	intentRows, err := intentsReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading intents: %w", err)
	}

	examples := make([]types.Example, 0, len(intentRows))
	for _, row := range intentRows {
		intent, err := types.ParseIntent(row[1])
		if err != nil {
			return nil, err
		}
		examples = append(examples, types.Example{Sentence: row[0], Intent: intent})
	}

	// Blank rows separate sentences, so they are read line by line instead of
	// being skipped by csv.Reader.
	lines, err := readTokenBlocks(entities)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(examples) {
		return nil, fmt.Errorf("found %d token blocks for %d sentences", len(lines), len(examples))
	}

	for i, block := range lines {
		for _, row := range block {
			if len(row) != 3 {
				return nil, fmt.Errorf("expected 3 fields in token row, found %d", len(row))
			}
			label := types.Label(row[1])
			if _, err := label.Code(); err != nil {
				return nil, err
			}
			examples[i].Tokens = append(examples[i].Tokens, row[0])
			examples[i].Labels = append(examples[i].Labels, label)
		}
	}

	return examples, nil
}

func readTokenBlocks(r io.Reader) ([][][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading named entities: %w", err)
	}

	var (
		blocks  [][][]string
		current [][]string
		start   int
	)
	for i := 0; i <= len(data); i++ {
		if i < len(data) && data[i] != '\n' {
			continue
		}
		line := data[start:i]
		start = i + 1
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}
		if len(line) == 0 {
			if i < len(data) {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}

		row, err := csv.NewReader(bytes.NewReader(line)).Read()
		if err != nil {
			return nil, fmt.Errorf("error parsing token row %q: %w", line, err)
		}
		current = append(current, row)
	}
	if len(current) > 0 {
		return nil, fmt.Errorf("named entities do not end with a blank row")
	}
	return blocks, nil
}

// WritePlain writes a single Sentence column with a header row.
func WritePlain(w io.Writer, sentences []string) error {
	writer := csv.NewWriter(w)
	if err := writer.Write([]string{plainHeader}); err != nil {
		return err
	}
	for _, sentence := range sentences {
		if err := writer.Write([]string{sentence}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func WritePlainFile(path string, sentences []string) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := WritePlain(f, sentences); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return nil
}
