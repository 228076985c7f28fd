package domain

// Represents an account on a sales rep's call list.
//
// DaysSinceContact counts whole days since LastContactDate and is zero when
// the account was never contacted (NeverContacted is set instead).
type CallListEntry struct {
	Account          Account
	DaysSinceContact int
	NeverContacted   bool
	Priority         int
}
