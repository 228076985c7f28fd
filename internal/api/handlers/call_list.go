package handlers

import (
	"fieldsales-route-service/internal/api/dto"
	"fieldsales-route-service/internal/ports"
	"fieldsales-route-service/internal/services"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	defaultCallListDays = 10
	maxCallListDays     = 3650
)

// CallListHandler lists accounts due for a call, most urgent first.
type CallListHandler struct {
	Repo ports.AccountRepository
	Now  func() time.Time
}

func (h *CallListHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	days := defaultCallListDays
	if v := strings.TrimSpace(r.URL.Query().Get("days")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 || n > maxCallListDays {
			writeError(w, r, http.StatusBadRequest, "days must be an integer between 0 and 3650")
			return
		}
		days = n
	}

	accounts, err := h.Repo.ListAccounts(r.Context(), userID)
	if err != nil {
		log.Printf("list accounts failed: user_id=%s err=%v", userID, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	now := time.Now()
	if h.Now != nil {
		now = h.Now()
	}
	entries := services.BuildCallList(accounts, now, days)

	res := dto.CallListResponse{
		ThresholdDays: days,
		Entries:       make([]dto.CallListEntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		item := dto.CallListEntryResponse{
			AccountID:    e.Account.ID,
			BusinessName: e.Account.BusinessName,
			ContactName:  e.Account.ContactName,
			Phone:        e.Account.Phone,
			AccountType:  string(e.Account.AccountType),
			Priority:     e.Priority,
		}
		if !e.NeverContacted {
			last := e.Account.LastContactDate
			d := e.DaysSinceContact
			item.LastContactDate = &last
			item.DaysSinceContact = &d
		}
		res.Entries = append(res.Entries, item)
	}

	writeJSON(w, r, http.StatusOK, res)
}
