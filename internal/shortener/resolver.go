package shortener

import (
	"context"
	"errors"
	"fmt"

	"github.com/serroba/short-links/internal/diagnostics"
	"github.com/serroba/short-links/internal/store"
)

// Resolver looks codes up in the shared store and checks them against the clock.
// It never writes to the store.
type Resolver struct {
	store store.Store
	clock Clock
	diag  diagnostics.Logger
}

// NewResolver creates a Resolver.
func NewResolver(s store.Store, clock Clock, diag diagnostics.Logger) *Resolver {
	return &Resolver{
		store: s,
		clock: clock,
		diag:  diag,
	}
}

// Resolve returns Redirect while now is strictly before the mapping's expiry, Expired after,
// and NotFound for unknown codes. Store failures are returned as errors.
func (r *Resolver) Resolve(ctx context.Context, code string) (Outcome, error) {
	value, err := r.store.Get(ctx, code)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.diag.Log(diagnostics.LevelInfo, PackageResolver, "short url not found: "+code)

			return NotFound(), nil
		}

		return Outcome{}, fmt.Errorf("lookup code %q: %w", code, err)
	}

	mapping, err := DecodeMapping(Code(code), value)
	if err != nil {
		r.diag.Log(diagnostics.LevelError, PackageResolver, err.Error())

		return NotFound(), nil
	}

	if !mapping.ActiveAt(r.clock.Now()) {
		r.diag.Log(diagnostics.LevelInfo, PackageResolver, "short url expired: "+code)

		return Expired(), nil
	}

	return Redirect(mapping.LongURL), nil
}
