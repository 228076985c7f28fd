package handlers

import (
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/ports"
	"log"
	"net/http"
	"time"
)

// AccountHandler exposes a rep's accounts with their routability.
type AccountHandler struct {
	Repo ports.AccountRepository
}

func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	accounts, err := h.Repo.ListAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("list accounts failed: user_id=%s err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListAccountsResponse{
		Accounts: make([]dto.AccountResponse, 0, len(accounts)),
	}
	for _, a := range accounts {
		p, hasLocation := a.Location()

		var lastContact *time.Time
		if !a.LastContactDate.IsZero() {
			t := a.LastContactDate
			lastContact = &t
		}

		res.Accounts = append(res.Accounts, dto.AccountResponse{
			ID:              a.ID,
			BusinessName:    a.BusinessName,
			ContactName:     a.ContactName,
			Phone:           a.Phone,
			Email:           a.Email,
			Address:         a.FormattedAddress(),
			Latitude:        a.Latitude,
			Longitude:       a.Longitude,
			AccountType:     string(a.AccountType),
			LastContactDate: lastContact,
			Routable:        hasLocation && p.Valid(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
