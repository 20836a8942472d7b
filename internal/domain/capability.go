package domain

// CapabilitySet is owner-managed set membership for a single capability.
// The owner is fixed at creation and is never itself a member; every role
// list in the system (minters, burners, writers, requesters, fulfillers) is
// one of these.
type CapabilitySet struct {
	Name  string
	Owner Account
}
