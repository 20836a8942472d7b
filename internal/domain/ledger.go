package domain

import (
	"fmt"
	"time"
)

// Ledger is a fungible-balance ledger. The proxy-backed token and the
// fee-paying governance token are both Ledger instances; the proxy ledger
// additionally carries minter and burner capability sets.
type Ledger struct {
	Address   Account
	Owner     Account
	Name      string
	Symbol    string
	Decimals  int
	CreatedAt time.Time
}

// MinterSet returns the capability set name holding the ledger's minters.
func MinterSet(ledger Account) string {
	return fmt.Sprintf("%s/minters", ledger)
}

// BurnerSet returns the capability set name holding the ledger's burners.
func BurnerSet(ledger Account) string {
	return fmt.Sprintf("%s/burners", ledger)
}
