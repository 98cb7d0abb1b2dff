package types

import (
	"fmt"
	"strings"
)

type EntityType string

const (
	AmountEntity   EntityType = "AMOUNT"
	BankEntity     EntityType = "BANK"
	CurrencyEntity EntityType = "CURRENCY"
	UserEntity     EntityType = "USER"
)

var EntityTypes = []EntityType{AmountEntity, BankEntity, CurrencyEntity, UserEntity}

// Label is a BIO tag: "O", "B-<TYPE>" or "I-<TYPE>".
type Label string

const Outside Label = "O"

const (
	beginPrefix  = "B-"
	insidePrefix = "I-"
)

func Begin(t EntityType) Label {
	return Label(beginPrefix + string(t))
}

func Inside(t EntityType) Label {
	return Label(insidePrefix + string(t))
}

var labelCodes = map[Label]int{
	Outside:                0,
	Begin(AmountEntity):    1,
	Inside(AmountEntity):   2,
	Begin(BankEntity):      3,
	Inside(BankEntity):     4,
	Begin(CurrencyEntity):  5,
	Inside(CurrencyEntity): 6,
	Begin(UserEntity):      7,
	Inside(UserEntity):     8,
}

func (l Label) Code() (int, error) {
	code, ok := labelCodes[l]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLabel, string(l))
	}
	return code, nil
}

func (l Label) IsBegin() bool {
	return strings.HasPrefix(string(l), beginPrefix)
}

func (l Label) IsInside() bool {
	return strings.HasPrefix(string(l), insidePrefix)
}

// Entity returns the entity type of a B-/I- label, or "" for O.
func (l Label) Entity() EntityType {
	switch {
	case l.IsBegin():
		return EntityType(strings.TrimPrefix(string(l), beginPrefix))
	case l.IsInside():
		return EntityType(strings.TrimPrefix(string(l), insidePrefix))
	default:
		return ""
	}
}

// SpanLabels returns [B-t, I-t, I-t, ...] with n elements.
func SpanLabels(t EntityType, n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		if i == 0 {
			labels[i] = Begin(t)
		} else {
			labels[i] = Inside(t)
		}
	}
	return labels
}

func OutsideLabels(n int) []Label {
	labels := make([]Label, n)
	for i := range labels {
		labels[i] = Outside
	}
	return labels
}

// ValidateBIO checks that every label is known and that no I- label starts a
// span or continues a span of a different type.
func ValidateBIO(labels []Label) error {
	var prev Label = Outside
	for i, label := range labels {
		if _, err := label.Code(); err != nil {
			return fmt.Errorf("label %d: %w", i, err)
		}
		if label.IsInside() && (prev == Outside || prev.Entity() != label.Entity()) {
			return fmt.Errorf("%w: %s at position %d follows %s", ErrInvalidLabel, label, i, prev)
		}
		prev = label
	}
	return nil
}
