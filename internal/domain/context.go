package domain

import "context"

type callerKey struct{}

// WithCaller stores the calling account in the context. Every gated
// operation reads its caller identity from here; components acting on their
// own behalf (a controller minting on its ledger) re-wrap the context with
// their own address.
func WithCaller(ctx context.Context, caller Account) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext extracts the calling account from the context. The
// second return is false when no caller is present.
func CallerFromContext(ctx context.Context) (Account, bool) {
	a, ok := ctx.Value(callerKey{}).(Account)
	return a, ok
}
