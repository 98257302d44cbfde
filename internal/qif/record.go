package qif

import (
	"errors"
	"regexp"
	"strings"

	"dtarbill/csv-qif/internal/parsererror"

	"github.com/shopspring/decimal"
)

const (
	// DefaultFundPrefix is prepended to security names from a "Fund" column.
	DefaultFundPrefix = "SF "

	memoBeforeTax   = "Before-Tax"
	memoWithdrawals = "Withdrawals"

	actionBuyX  = "BuyX"
	actionBuy   = "Buy"
	actionSellX = "SellX"

	defaultCommission = "0.0"
	defaultCleared    = "X"
	cashAccount       = "Cash"
)

// leadingNumber matches the numeric prefix of an amount token.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ErrNotNumeric is wrapped by the ParseError returned for strict amounts.
var ErrNotNumeric = errors.New("not a number")

// Options tunes row transcription.
type Options struct {
	// FundPrefix replaces DefaultFundPrefix when non-empty.
	FundPrefix string

	// StrictAmounts rejects amount tokens that are not entirely numeric
	// instead of treating them as zero.
	StrictAmounts bool
}

func (o Options) fundPrefix() string {
	if o.FundPrefix == "" {
		return DefaultFundPrefix
	}
	return o.FundPrefix
}

// Field is one tagged QIF line.
type Field struct {
	Role  Role
	Value string
}

// Line renders the field as it appears in the QIF file, without the newline.
func (f Field) Line() string {
	return string(f.Role.Tag()) + f.Value
}

// Record holds the fields of one transaction in output order.
type Record struct {
	Fields []Field

	// Derived counts the trailing fields synthesized rather than read from the row.
	Derived int
}

// Transcribe converts one data line into a record: the row's own fields in
// column order followed by the derived fields. Rows with fewer tokens than
// columns stop early.
func Transcribe(layout Layout, line string, opts Options) (Record, error) {
	var (
		rec       Record
		amount    decimal.Decimal
		amountRaw string
		memo      string
	)

	tokens := Tokenize(line)
	n := min(len(layout.Columns), len(tokens))

	for i := 0; i < n; i++ {
		col, tok := layout.Columns[i], tokens[i]

		switch col.Role {
		case RoleAmount:
			v, err := ParseAmount(tok, opts.StrictAmounts)
			if err != nil {
				return Record{}, err
			}
			amount, amountRaw = v, tok
		case RoleMemo:
			memo = tok
		}

		if !col.Role.Emits() {
			continue
		}
		if col.Role == RoleSecurity && layout.FundPrefix {
			tok = opts.fundPrefix() + tok
		}
		rec.Fields = append(rec.Fields, Field{Role: col.Role, Value: tok})
	}

	derived := Derive(layout.Presence, amount, amountRaw, memo)
	rec.Fields = append(rec.Fields, derived...)
	rec.Derived = len(derived)
	return rec, nil
}

// Derive synthesizes the fields the header did not supply. Order is fixed:
// action, commission, cleared status, transfer account, transfer amount.
func Derive(p Presence, amount decimal.Decimal, amountRaw, memo string) []Field {
	var out []Field

	if !p.Action {
		action := actionBuy
		switch {
		case amount.IsNegative():
			action = actionSellX
		case strings.EqualFold(memo, memoBeforeTax):
			action = actionBuyX
		}
		out = append(out, Field{Role: RoleAction, Value: action})
	}

	if !p.Commission {
		out = append(out, Field{Role: RoleCommission, Value: defaultCommission})
	}

	if !p.Cleared {
		out = append(out, Field{Role: RoleCleared, Value: defaultCleared})
	}

	if strings.EqualFold(memo, memoBeforeTax) || strings.EqualFold(memo, memoWithdrawals) {
		if !p.TransferAccount {
			out = append(out, Field{Role: RoleTransferAccount, Value: cashAccount})
		}
		if !p.TransferAmount {
			out = append(out, Field{Role: RoleTransferAmount, Value: amountRaw})
		}
	}

	return out
}

// ParseAmount reads the leading number of s. Without strict, a token with no
// leading number is zero and trailing garbage is ignored.
func ParseAmount(s string, strict bool) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(s)
	num := leadingNumber.FindString(trimmed)

	if strict && (num == "" || num != trimmed) {
		return decimal.Zero, &parsererror.ParseError{
			Parser: "qif",
			Field:  RoleAmount.String(),
			Value:  s,
			Err:    ErrNotNumeric,
		}
	}
	if num == "" {
		return decimal.Zero, nil
	}

	d, err := decimal.NewFromString(normalizeNumber(num))
	if err != nil {
		if strict {
			return decimal.Zero, &parsererror.ParseError{
				Parser: "qif",
				Field:  RoleAmount.String(),
				Value:  s,
				Err:    err,
			}
		}
		return decimal.Zero, nil
	}
	return d, nil
}

// normalizeNumber rewrites forms leadingNumber admits but decimal rejects:
// an explicit plus sign, a bare fraction or a trailing decimal point.
func normalizeNumber(num string) string {
	num = strings.TrimPrefix(num, "+")
	neg := strings.HasPrefix(num, "-")
	if neg {
		num = num[1:]
	}
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	}
	num = strings.Replace(num, ".e", "e", 1)
	num = strings.Replace(num, ".E", "E", 1)
	num = strings.TrimSuffix(num, ".")
	if neg {
		return "-" + num
	}
	return num
}
