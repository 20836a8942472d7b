package domain

import (
	"fmt"
	"time"
)

// Controller coordinates requesters, fulfillers, the proxy ledger, the
// governance ledger, and a request store. Its address acts as the
// controller's own account: it is the minter/burner on the proxy ledger and
// the spender the fee payer approves on the governance ledger.
type Controller struct {
	Address          Account
	Owner            Account
	ProxyLedger      Account
	GovernanceLedger Account
	Store            Account
	FeeBeneficiary   Account
	MintFee          int64
	BurnFee          int64
	CreatedAt        time.Time
}

// Role set names for the controller's four capability registries. An
// account holds at most one of {requester, fulfiller} per action.

func MintRequesterSet(controller Account) string {
	return fmt.Sprintf("%s/mint-requesters", controller)
}

func MintFulfillerSet(controller Account) string {
	return fmt.Sprintf("%s/mint-fulfillers", controller)
}

func BurnRequesterSet(controller Account) string {
	return fmt.Sprintf("%s/burn-requesters", controller)
}

func BurnFulfillerSet(controller Account) string {
	return fmt.Sprintf("%s/burn-fulfillers", controller)
}
