// Package qif maps brokerage CSV columns onto QIF investment transaction fields.
package qif

// Role is the semantic meaning assigned to a CSV column.
type Role int

const (
	RoleIgnore Role = iota
	RoleDate
	RoleAction
	RoleSecurity
	RolePrice
	RoleQuantity
	RoleAmount
	RoleCleared
	RoleMemo
	RoleCommission
	RoleTransferAccount
	RoleTransferAmount
)

// QIF investment field tags, indexed by Role. Ignore has no tag.
var roleTags = [...]byte{
	RoleIgnore:          0,
	RoleDate:            'D',
	RoleAction:          'N',
	RoleSecurity:        'Y',
	RolePrice:           'I',
	RoleQuantity:        'Q',
	RoleAmount:          'T',
	RoleCleared:         'C',
	RoleMemo:            'M',
	RoleCommission:      'O',
	RoleTransferAccount: 'L',
	RoleTransferAmount:  '$',
}

var roleNames = [...]string{
	RoleIgnore:          "Ignore",
	RoleDate:            "Date",
	RoleAction:          "Action",
	RoleSecurity:        "Security",
	RolePrice:           "Price",
	RoleQuantity:        "Quantity",
	RoleAmount:          "Amount",
	RoleCleared:         "Cleared",
	RoleMemo:            "Memo",
	RoleCommission:      "Commission",
	RoleTransferAccount: "TransferAccount",
	RoleTransferAmount:  "TransferAmount",
}

// Tag returns the one-character QIF field tag, or 0 for RoleIgnore and unknown roles.
func (r Role) Tag() byte {
	if r < 0 || int(r) >= len(roleTags) {
		return 0
	}
	return roleTags[r]
}

// Emits reports whether the role produces an output line.
func (r Role) Emits() bool {
	return r.Tag() != 0
}

func (r Role) String() string {
	if r < 0 || int(r) >= len(roleNames) {
		return "Unknown"
	}
	return roleNames[r]
}
