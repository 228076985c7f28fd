package services

import (
	"fieldsales-route-service/internal/domain"
	"sort"
	"time"
)

// Days without contact after which an account climbs a priority bucket.
const (
	HighPriorityDays   = 30
	MediumPriorityDays = 14
	LowPriorityDays    = 7
)

// ContactPriority scores how urgently an account should be called.
// Staleness adds 0..3 and the account type adds 2 for active, 1 for prospect.
func ContactPriority(daysSinceContact int, accountType domain.AccountType) int {
	priority := 0

	switch {
	case daysSinceContact > HighPriorityDays:
		priority += 3
	case daysSinceContact > MediumPriorityDays:
		priority += 2
	case daysSinceContact > LowPriorityDays:
		priority += 1
	}

	switch accountType {
	case domain.AccountActive:
		priority += 2
	case domain.AccountProspect:
		priority += 1
	}

	return priority
}

// BuildCallList returns the accounts not contacted within thresholdDays of
// now, most urgent first. A threshold of zero or less keeps every account.
//
// Never-contacted accounts are always listed and score as the stalest
// bucket. Ties are broken by staleness, then business name, then ID.
func BuildCallList(accounts []domain.Account, now time.Time, thresholdDays int) []domain.CallListEntry {
	cutoff := now.AddDate(0, 0, -thresholdDays)

	out := make([]domain.CallListEntry, 0, len(accounts))
	for _, acc := range accounts {
		entry := domain.CallListEntry{Account: acc}

		if acc.LastContactDate.IsZero() {
			entry.NeverContacted = true
			entry.Priority = ContactPriority(HighPriorityDays+1, acc.AccountType)
			out = append(out, entry)
			continue
		}

		if thresholdDays > 0 && !acc.LastContactDate.Before(cutoff) {
			continue
		}

		days := int(now.Sub(acc.LastContactDate) / (24 * time.Hour))
		if days < 0 {
			days = 0
		}
		entry.DaysSinceContact = days
		entry.Priority = ContactPriority(days, acc.AccountType)
		out = append(out, entry)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.NeverContacted != b.NeverContacted {
			return a.NeverContacted
		}
		if a.DaysSinceContact != b.DaysSinceContact {
			return a.DaysSinceContact > b.DaysSinceContact
		}
		if a.Account.BusinessName != b.Account.BusinessName {
			return a.Account.BusinessName < b.Account.BusinessName
		}
		return a.Account.ID < b.Account.ID
	})

	return out
}
