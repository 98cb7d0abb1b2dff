package datagen

import (
	"fmt"
	"strconv"
	"strings"
)

var literalDigits = []string{"zero", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}

// RandomAmount draws a money amount. Whole amounts below ten are spelled out
// with a currency word half of the time; everything else is numeric with
// either a currency symbol prefix or a currency word suffix.
func RandomAmount(r Rand, c *Catalogs) string {
	whole := 1 + r.Intn(500)
	cents := r.Intn(100)

	if whole < 10 && coin(r) {
		amount := literalDigits[whole] + " " + currencyWord(choice(r, c.CurrencyLiterals), whole)
		return amount + centsPhrase(r, cents)
	}

	if coin(r) {
		amount := fmt.Sprintf("%d.%02d", whole, cents)
		if coin(r) {
			return choice(r, c.CurrencySymbols) + amount
		}
		return amount + " " + choice(r, c.CurrencyLiterals)
	}

	var amount string
	if coin(r) {
		amount = choice(r, c.CurrencySymbols) + strconv.Itoa(whole)
	} else {
		amount = strconv.Itoa(whole) + " " + currencyWord(choice(r, c.CurrencyLiterals), whole)
	}
	return amount + centsPhrase(r, cents)
}

func currencyWord(literal string, n int) string {
	if n == 1 {
		return strings.TrimSuffix(literal, "s")
	}
	return literal
}

// centsPhrase is empty for zero cents; cents below ten are spelled out half of
// the time.
func centsPhrase(r Rand, cents int) string {
	if cents == 0 {
		return ""
	}
	text := strconv.Itoa(cents)
	if cents < 10 && coin(r) {
		text = literalDigits[cents]
	}
	if cents == 1 {
		return " and " + text + " cent"
	}
	return " and " + text + " cents"
}

func RandomCurrency(r Rand, c *Catalogs) string {
	if coin(r) {
		return choice(r, c.CurrencySymbols)
	}
	return choice(r, c.CurrencyLiterals)
}

func RandomBank(r Rand, c *Catalogs) string {
	return choice(r, c.BankNames())
}

// RandomAmounts draws n amounts.
func RandomAmounts(r Rand, c *Catalogs, n int) []string {
	amounts := make([]string, n)
	for i := range amounts {
		amounts[i] = RandomAmount(r, c)
	}
	return amounts
}

// RandomBankAccounts draws n bank names, suffixing " account" a third of the
// time.
func RandomBankAccounts(r Rand, c *Catalogs, n int) []string {
	accounts := make([]string, n)
	for i := range accounts {
		bank := RandomBank(r, c)
		if r.Intn(3) == 0 {
			bank += " account"
		}
		accounts[i] = bank
	}
	return accounts
}
