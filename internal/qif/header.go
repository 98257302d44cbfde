package qif

import (
	"strings"
)

const (
	// DefaultMaxColumns is the number of header columns honoured; later columns are dropped.
	DefaultMaxColumns = 20

	// ColumnNameLen caps the column name kept for display.
	ColumnNameLen = 20
)

type synonym struct {
	role       Role
	fundPrefix bool
}

// synonyms maps case-folded header text to its role. Unlisted headers are ignored.
var synonyms = map[string]synonym{
	"date":              {role: RoleDate},
	"posting date":      {role: RoleDate},
	"valuation date":    {role: RoleIgnore},
	"memo":              {role: RoleMemo},
	"activity type":     {role: RoleMemo},
	"account":           {role: RoleIgnore},
	"plan":              {role: RoleIgnore},
	"fund":              {role: RoleSecurity, fundPrefix: true},
	"security name":     {role: RoleSecurity},
	"investment action": {role: RoleAction},
	"commission":        {role: RoleCommission},
	"amount":            {role: RoleAmount},
	"price":             {role: RolePrice},
	"fund nav/price":    {role: RolePrice},
	"quantity":          {role: RoleQuantity},
	"fund units":        {role: RoleQuantity},
	"cleared":           {role: RoleCleared},
	"transfer account":  {role: RoleTransferAccount},
	"amount transfered": {role: RoleTransferAmount},
}

// Classify returns the role for a header token and whether security values in
// that column get the fund prefix.
func Classify(name string) (Role, bool) {
	s, ok := synonyms[strings.ToLower(name)]
	if !ok {
		return RoleIgnore, false
	}
	return s.role, s.fundPrefix
}

// Column describes one input column as classified from the header.
type Column struct {
	Name       string
	Role       Role
	FundPrefix bool
}

// Presence records which derivable roles the header supplied.
type Presence struct {
	Commission      bool
	Cleared         bool
	Action          bool
	TransferAccount bool
	TransferAmount  bool
}

func (p *Presence) mark(r Role) {
	switch r {
	case RoleCommission:
		p.Commission = true
	case RoleCleared:
		p.Cleared = true
	case RoleAction:
		p.Action = true
	case RoleTransferAccount:
		p.TransferAccount = true
	case RoleTransferAmount:
		p.TransferAmount = true
	}
}

// Layout is the file-wide column classification. It is built once from the
// header line and not modified afterwards.
type Layout struct {
	Columns  []Column
	Presence Presence

	// FundPrefix is set when any column classified with the fund prefix; it
	// then applies to every Security column in the file.
	FundPrefix bool
}

// Recognized returns the number of columns that emit a field.
func (l Layout) Recognized() int {
	n := 0
	for _, c := range l.Columns {
		if c.Role.Emits() {
			n++
		}
	}
	return n
}

// Tokenize splits a line on commas and line terminators. Empty tokens are
// discarded, so consecutive delimiters collapse.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
}

// ParseHeader classifies every header token. Tokens past maxColumns are
// dropped; a non-positive maxColumns means DefaultMaxColumns.
func ParseHeader(line string, maxColumns int) Layout {
	if maxColumns <= 0 {
		maxColumns = DefaultMaxColumns
	}

	tokens := Tokenize(line)
	if len(tokens) > maxColumns {
		tokens = tokens[:maxColumns]
	}

	layout := Layout{Columns: make([]Column, 0, len(tokens))}
	for _, tok := range tokens {
		role, prefix := Classify(tok)
		layout.Columns = append(layout.Columns, Column{
			Name:       truncate(tok, ColumnNameLen),
			Role:       role,
			FundPrefix: prefix,
		})
		layout.Presence.mark(role)
		if prefix {
			layout.FundPrefix = true
		}
	}
	return layout
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
