package payment

import (
	"fmt"
	"strings"
)

type Method string

const (
	MethodCash         Method = "cash"
	MethodBankTransfer Method = "bank_transfer"
	MethodUPI          Method = "upi"
	MethodCard         Method = "card"
	MethodCheque       Method = "cheque"
)

var validMethods = map[Method]bool{
	MethodCash:         true,
	MethodBankTransfer: true,
	MethodUPI:          true,
	MethodCard:         true,
	MethodCheque:       true,
}

func ParseMethod(value string) (Method, error) {
	m := Method(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(value)), "-", "_"))
	if !validMethods[m] {
		return "", fmt.Errorf("%w: %q", ErrInvalidMethod, value)
	}
	return m, nil
}

func (m Method) String() string {
	return string(m)
}

func (m Method) IsValid() bool {
	return validMethods[m]
}
