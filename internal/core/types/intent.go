package types

import "fmt"

type Intent string

const (
	NoneIntent              Intent = "none"
	CheckBalanceIntent      Intent = "check_balance"
	CheckTransactionsIntent Intent = "check_transactions"
	SendMoneyIntent         Intent = "send_money"
	RequestMoneyIntent      Intent = "request_money"
	YesIntent               Intent = "yes"
	NoIntent                Intent = "no"
)

// Intents is ordered by intent code.
var Intents = []Intent{
	NoneIntent,
	CheckBalanceIntent,
	CheckTransactionsIntent,
	SendMoneyIntent,
	RequestMoneyIntent,
	YesIntent,
	NoIntent,
}

func (i Intent) Code() (int, error) {
	for code, intent := range Intents {
		if intent == i {
			return code, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, string(i))
}

func ParseIntent(s string) (Intent, error) {
	intent := Intent(s)
	if _, err := intent.Code(); err != nil {
		return "", err
	}
	return intent, nil
}
