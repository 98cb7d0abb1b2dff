package datagen

import (
	"errors"
	"nlu-datagen/internal/core/tokenizer"
	"nlu-datagen/internal/core/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPools(t *testing.T) {
	for _, intent := range types.Intents {
		pool, err := LoadPool(intent)
		require.NoError(t, err, intent)
		assert.Equal(t, intent, pool.Intent)
		assert.NotEmpty(t, pool.Templates)
	}

	balance, err := LoadPool(types.CheckBalanceIntent)
	require.NoError(t, err)
	assert.Empty(t, balance.Rules)
	assert.Equal(t, map[string]EntityKind{"bank": BankKind, "currency": CurrencyKind}, balance.Placeholders)
}

func TestParsePoolErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown intent", "intent: pay_bills\ntemplates: [\"Pay\"]\n"},
		{"no templates", "intent: yes\n"},
		{"undeclared placeholder", "intent: send_money\ntemplates: [\"Send {amount}\"]\n"},
		{"unknown kind", "intent: send_money\nplaceholders: {amount: money}\ntemplates: [\"Send {amount}\"]\n"},
		{"rule drops placeholder", "intent: send_money\nplaceholders: {bank: bank}\nrules: [{trigger: \"from {bank}\", replacement: \"from my account\"}]\ntemplates: [\"Send from {bank}\"]\n"},
		{"unknown field", "intent: yes\nsentences: [\"Yes\"]\ntemplates: [\"Yes\"]\n"},
		{"unknown plain mode", "intent: yes\nplain_mode: sometimes\ntemplates: [\"Yes\"]\n"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParsePool([]byte(test.data))
			require.Error(t, err)
		})
	}
}

func TestRewrite(t *testing.T) {
	catalogs := loadCatalogs(t)

	load := func(intent types.Intent) *Pool {
		pool, err := LoadPool(intent)
		require.NoError(t, err)
		return pool
	}
	transactions := load(types.CheckTransactionsIntent)
	request := load(types.RequestMoneyIntent)
	send := load(types.SendMoneyIntent)
	balance := load(types.CheckBalanceIntent)

	tests := []struct {
		name     string
		pool     *Pool
		template string
		bank     string
		expected string
	}{
		{"transactions using account", transactions, "Show transactions using account {bank}", "default", "Show transactions using {bank} account"},
		{"transactions from", transactions, "Transactions with {user} from {bank}", "primary", "Transactions with {user} from my {bank} account"},
		{"request priority", request, "Request money to my account at {bank}", "default", "Request money to my {bank} account"},
		{"request at", request, "Ask {sender} for {amount} at {bank}", "default", "Ask {sender} for {amount} at {bank} account"},
		{"request using", request, "Request {amount} using {bank}", "primary", "Request {amount} using my {bank} account"},
		{"send using", send, "Send {amount} using {bank}", "default", "Send {amount} using {bank} account"},
		{"send replaces all", send, "Send from {bank} and from {bank}", "default", "Send from my {bank} account and from my {bank} account"},
		{"specific bank", send, "Send {amount} using {bank}", "Top Bank", "Send {amount} using {bank}"},
		{"already an account", send, "Send from {bank} using my {bank} account", "default", "Send from {bank} using my {bank} account"},
		{"no rule matches", send, "Pay {recipient} with {bank}", "default", "Pay {recipient} with {bank}"},
		{"no bank", send, "Send {amount} from default", "default", "Send {amount} from default"},
		{"no rules", balance, "Show my balance at {bank}", "default", "Show my balance at {bank}"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.pool.Rewrite(test.template, test.bank, catalogs))
		})
	}
}

func TestTemplateGenerator(t *testing.T) {
	catalogs := loadCatalogs(t)
	entities := &Entities{catalogs: catalogs, names: []string{"Luca Rossi"}}
	pool := &Pool{
		Intent: types.SendMoneyIntent,
		Placeholders: map[string]EntityKind{
			"amount":    AmountKind,
			"recipient": PersonKind,
			"bank":      BankKind,
		},
		Rules:     []Rule{{Trigger: "from {bank}", Replacement: "from my {bank} account"}},
		Templates: []string{"Send {amount}, to {recipient} from {bank}."},
	}
	gen := NewTemplateGenerator(pool, entities)
	aligner := NewAligner(tokenizer.Whitespace{})

	draws := []int{0, 41, 50, 0, 0, 0, 0, len(catalogs.Banks)}

	example, err := gen.Generate(newSeqRand(t, draws...), aligner)
	require.NoError(t, err)
	assert.Equal(t, types.SendMoneyIntent, example.Intent)
	assert.Equal(t, "Send $42.50 to Luca Rossi from my default account", example.Sentence)
	assert.Equal(t, []string{"Send", "$42.50", "to", "Luca", "Rossi", "from", "my", "default", "account"}, example.Tokens)
	assert.Equal(t, labels("O", "B-AMOUNT", "O", "B-USER", "I-USER", "O", "O", "B-BANK", "O"), example.Labels)

	sentence, err := gen.Sentence(newSeqRand(t, draws...))
	require.NoError(t, err)
	assert.Equal(t, example.Sentence, sentence)
}

func TestNoneGenerator(t *testing.T) {
	catalogs := loadCatalogs(t)
	entities := &Entities{catalogs: catalogs, names: []string{"mum Giulia"}}
	chatter := &Pool{Intent: types.NoneIntent, Templates: []string{"Tell me a joke."}}
	gen := NewNoneGenerator(chatter, entities)
	aligner := NewAligner(tokenizer.Whitespace{})

	tests := []struct {
		name     string
		draws    []int
		tokens   []string
		expected []types.Label
	}{
		{"chatter", []int{0, 0}, []string{"Tell", "me", "a", "joke"}, labels("O", "O", "O", "O")},
		{"user", []int{1, 0}, []string{"mum", "Giulia"}, labels("B-USER", "I-USER")},
		{"amount", []int{2, 41, 50, 0, 0, 0}, []string{"$42.50"}, labels("B-AMOUNT")},
		{"bank account", []int{3, 2, 0}, []string{"Top", "Bank", "account"}, labels("B-BANK", "I-BANK", "O")},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			example, err := gen.Generate(newSeqRand(t, test.draws...), aligner)
			require.NoError(t, err)
			assert.Equal(t, types.NoneIntent, example.Intent)
			assert.Equal(t, test.tokens, example.Tokens)
			assert.Equal(t, test.expected, example.Labels)
		})
	}
}

func TestGeneratorsProduceAlignedExamples(t *testing.T) {
	r := NewRand(42)
	generators, err := NewGenerators(r, DefaultNameMix)
	require.NoError(t, err)
	require.Len(t, generators, len(types.Intents))

	vocabAligner := NewAligner(tokenizer.Whitespace{})

	for i, gen := range generators {
		assert.Equal(t, types.Intents[i], gen.Intent())

		for range 300 {
			example, err := gen.Generate(r, vocabAligner)
			require.NoError(t, err)
			require.NoError(t, example.Validate())
			assert.Equal(t, gen.Intent(), example.Intent)
			assert.NotContains(t, example.Sentence, ",")
			assert.NotContains(t, example.Sentence, "{")
			assert.Equal(t, strings.ReplaceAll(example.Sentence, " ", ""), tokenizer.Detokenize(example.Tokens))

			sentence, err := gen.Sentence(r)
			require.NoError(t, err)
			assert.NotEmpty(t, sentence)
		}
	}
}

func TestFixedCount(t *testing.T) {
	out, err := FixedCount(5, func() (string, error) { return "yes", nil })
	require.NoError(t, err)
	assert.Equal(t, []string{"yes", "yes", "yes", "yes", "yes"}, out)

	calls := 0
	_, err = FixedCount(5, func() (string, error) {
		calls++
		if calls == 3 {
			return "", errors.New("writer failed")
		}
		return "ok", nil
	})
	require.ErrorContains(t, err, "writer failed")
	assert.Equal(t, 3, calls)
}

func TestBoundedUnique(t *testing.T) {
	counter := 0
	cycle := func() (int, error) {
		counter++
		return counter % 3, nil
	}

	out, err := BoundedUnique(5, 20, cycle)
	assert.Equal(t, []int{1, 2, 0}, out)
	require.ErrorIs(t, err, ErrCapacityExhausted)

	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, ShortfallError{Requested: 5, Produced: 3, Attempts: 20}, *shortfall)

	counter = 0
	out, err = BoundedUnique(3, 20, cycle)
	require.NoError(t, err)
	assert.Len(t, out, 3)
	assert.Equal(t, 3, counter)
}

func TestBuildCorpus(t *testing.T) {
	r := NewRand(9)
	generators, err := NewGenerators(r, DefaultNameMix)
	require.NoError(t, err)

	corpus, err := BuildCorpus(r, NewAligner(tokenizer.Whitespace{}), generators, CorpusOpts{PerIntent: 10, NoneMultiplier: 4})
	require.NoError(t, err)
	assert.Len(t, corpus, 6*10+40)

	counts := CountIntents(corpus)
	for _, intent := range types.Intents {
		if intent == types.NoneIntent {
			assert.Equal(t, 40, counts[intent])
		} else {
			assert.Equal(t, 10, counts[intent], intent)
		}
	}
}

func TestPlainSentences(t *testing.T) {
	r := NewRand(4)
	generators, err := NewGenerators(r, DefaultNameMix)
	require.NoError(t, err)

	for _, intent := range []types.Intent{types.YesIntent, types.NoIntent} {
		gen := generators[mustCode(t, intent)]
		require.Equal(t, intent, gen.Intent())
		assert.Equal(t, PlainFixed, gen.PlainMode())

		sentences, err := PlainSentences(r, gen, 3000, 5, false)
		require.NoError(t, err, intent)
		assert.Len(t, sentences, 3000, intent)
	}

	send := generators[mustCode(t, types.SendMoneyIntent)]
	assert.Equal(t, PlainUnique, send.PlainMode())
	sentences, err := PlainSentences(r, send, 200, 10, false)
	require.NoError(t, err)
	assert.Len(t, sentences, 200)

	pool, err := ParsePool([]byte("intent: check_balance\ntemplates: [\"Balance?\", \"Balance please\"]\n"))
	require.NoError(t, err)
	require.Equal(t, PlainUnique, pool.PlainMode)
	entities, err := NewEntities(r, loadCatalogs(t), DefaultNameMix)
	require.NoError(t, err)
	small := NewTemplateGenerator(pool, entities)

	unique, err := PlainSentences(r, small, 50, 5, false)
	require.ErrorIs(t, err, ErrCapacityExhausted)
	var shortfall *ShortfallError
	require.ErrorAs(t, err, &shortfall)
	assert.Equal(t, 50, shortfall.Requested)
	assert.Equal(t, 250, shortfall.Attempts)
	assert.ElementsMatch(t, []string{"Balance", "Balance please"}, unique)

	all, err := PlainSentences(r, small, 50, 5, true)
	require.NoError(t, err)
	assert.Len(t, all, 50)
}

func mustCode(t *testing.T, intent types.Intent) int {
	code, err := intent.Code()
	require.NoError(t, err)
	return code
}
