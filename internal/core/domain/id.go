package domain

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// ID prefixes for ledger entities. IDs are K-sortable TypeIDs such as
// "camp_01h2xcejqtf2nbrexx3vqjhp41".
const (
	PrefixCampaign   = "camp"
	PrefixWithdrawal = "wdr"
	PrefixDeposit    = "dep"
)

// NewID generates a new TypeID with the given prefix. It panics on an invalid
// prefix, which is a programming error.
func NewID(prefix string) string {
	tid, err := typeid.Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return tid.String()
}

// ParseID validates that s is a TypeID carrying the expected prefix.
func ParseID(s, prefix string) (string, error) {
	if s == "" {
		return "", Invalid("id", "empty")
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return "", Invalid("id", "%q is not a valid id", s)
	}
	if tid.Prefix() != prefix {
		return "", Invalid("id", "expected prefix %q, got %q", prefix, tid.Prefix())
	}
	return tid.String(), nil
}
