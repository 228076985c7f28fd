package services

import (
	"context"
	"errors"
	"fieldsales-route-service/internal/platform/obs"
	"fieldsales-route-service/internal/ports"
	"fmt"
	"log"
)

type BackfillResult struct {
	Updated []int64
	// Accounts with an address that could not be geocoded.
	Unresolved []int64
	// Accounts with neither coordinates nor an address.
	NoAddress []int64
}

// BackfillAccountLocations geocodes a user's accounts that have an address
// but no coordinates, so they become routable.
//
// Accounts are updated one by one; a failed write aborts the run but keeps
// the updates already made.
func BackfillAccountLocations(
	ctx context.Context,
	userID string,
	accounts ports.AccountRepository,
	writer ports.AccountLocationWriter,
	geocoder ports.Geocoder,
) (_ BackfillResult, err error) {
	defer obs.Time(ctx, "services.BackfillAccountLocations")(&err)

	var res BackfillResult

	if geocoder == nil || writer == nil {
		return res, errors.New("backfill locations: geocoder and writer are required")
	}

	list, err := accounts.ListAccounts(ctx, userID)
	if err != nil {
		return res, fmt.Errorf("backfill locations: list accounts: %w", err)
	}

	pending := make(map[int64]string)
	addresses := make([]string, 0, len(list))
	for _, acc := range list {
		if _, ok := acc.Location(); ok {
			continue
		}
		addr := ports.NormalizeAddress(acc.FormattedAddress())
		if addr == "" {
			res.NoAddress = append(res.NoAddress, acc.ID)
			continue
		}
		pending[acc.ID] = addr
		addresses = append(addresses, addr)
	}

	if len(addresses) == 0 {
		return res, nil
	}

	coords, err := geocoder.Geocode(ctx, addresses)
	if err != nil {
		return res, fmt.Errorf("backfill locations: geocode: %w", err)
	}

	for _, acc := range list {
		addr, ok := pending[acc.ID]
		if !ok {
			continue
		}
		p, ok := coords[addr]
		if !ok {
			res.Unresolved = append(res.Unresolved, acc.ID)
			continue
		}
		if err := writer.UpdateAccountLocation(ctx, acc.ID, p); err != nil {
			return res, fmt.Errorf("backfill locations: %w", err)
		}
		res.Updated = append(res.Updated, acc.ID)
	}

	log.Printf(
		"user_id=%s backfill updated=%d unresolved=%d no_address=%d",
		userID, len(res.Updated), len(res.Unresolved), len(res.NoAddress),
	)

	return res, nil
}
