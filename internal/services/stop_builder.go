package services

import (
	"fieldsales-route-service/internal/domain"
)

// BuildStops resolves each appointment to its account's location.
//
// Appointments whose account is missing, has no coordinates, or has
// out-of-range coordinates are left off the result and reported in the
// returned exclusion list. The batch never fails as a whole: a partial
// route is more useful to a rep in the field than none.
// Stops keep the input appointment order.
func BuildStops(
	appointments []domain.Appointment,
	accounts []domain.Account,
) ([]domain.RouteStop, []domain.ExcludedStop) {
	byID := make(map[int64]domain.Account, len(accounts))
	for _, acc := range accounts {
		// First occurrence wins if the caller passes duplicate IDs.
		if _, ok := byID[acc.ID]; !ok {
			byID[acc.ID] = acc
		}
	}

	stops := make([]domain.RouteStop, 0, len(appointments))
	var excluded []domain.ExcludedStop

	for _, appt := range appointments {
		acc, ok := byID[appt.AccountID]
		if !ok {
			excluded = append(excluded, exclude(appt, domain.ReasonAccountNotFound))
			continue
		}

		loc, ok := acc.Location()
		if !ok {
			excluded = append(excluded, exclude(appt, domain.ReasonMissingLocation))
			continue
		}
		if !loc.Valid() {
			excluded = append(excluded, exclude(appt, domain.ReasonInvalidLocation))
			continue
		}

		stops = append(stops, domain.RouteStop{
			Appointment: appt,
			Location:    loc,
		})
	}

	return stops, excluded
}

func exclude(appt domain.Appointment, reason domain.ExclusionReason) domain.ExcludedStop {
	return domain.ExcludedStop{
		AppointmentID: appt.ID,
		AccountID:     appt.AccountID,
		Reason:        reason,
	}
}
