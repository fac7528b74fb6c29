package web

import (
	"net/http"
	"strings"
	"time"

	"github.com/example/courtbook/internal/auth"
	"github.com/example/courtbook/internal/availability"
	"github.com/example/courtbook/internal/booking"
	"github.com/google/uuid"
)

type resourcePayload struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Timezone string    `json:"timezone"`
}

func (s *Server) handleResourceList(w http.ResponseWriter, r *http.Request) {
	rs, err := s.Resources.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]resourcePayload, 0, len(rs))
	for _, res := range rs {
		out = append(out, resourcePayload{ID: res.ID, Name: res.Name, Timezone: res.Timezone})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResourceCreate(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	role, err := s.Auth.Role(r.Context(), uid)
	if err != nil || role != auth.RoleOwner {
		writeError(w, http.StatusForbidden, "owner account required")
		return
	}

	var req struct {
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	res, err := s.Resources.Create(r.Context(), uid, strings.TrimSpace(req.Name), strings.TrimSpace(req.Timezone))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, resourcePayload{ID: res.ID, Name: res.Name, Timezone: res.Timezone})
}

type dayPayload struct {
	Weekday string `json:"weekday"`
	Enabled bool   `json:"enabled"`
	Open    string `json:"open"`
	Close   string `json:"close"`
}

// templateFromPayload builds a full week from the submitted entries;
// weekdays left out stay disabled.
func templateFromPayload(days []dayPayload) (availability.WeekTemplate, error) {
	var tpl availability.WeekTemplate
	for _, d := range days {
		wd, err := parseWeekday(d.Weekday)
		if err != nil {
			return tpl, err
		}
		rule := availability.DayRule{Enabled: d.Enabled}
		if d.Enabled {
			if rule.Open, err = availability.ParseTimeOfDay(d.Open); err != nil {
				return tpl, err
			}
			if rule.Close, err = availability.ParseTimeOfDay(d.Close); err != nil {
				return tpl, err
			}
		}
		tpl[wd] = rule
	}
	return tpl, tpl.Validate()
}

func parseWeekday(s string) (availability.Weekday, error) {
	for d := availability.Monday; d <= availability.Sunday; d++ {
		if strings.EqualFold(s, d.String()) {
			return d, nil
		}
	}
	return 0, availability.ErrInvalidTemplate
}

func (s *Server) handleAvailabilityPut(w http.ResponseWriter, r *http.Request) {
	resourceID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := s.requireOwner(r.Context(), w, resourceID); !ok {
		return
	}

	var req struct {
		Days []dayPayload `json:"days"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	tpl, err := templateFromPayload(req.Days)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Templates.Upsert(r.Context(), resourceID, tpl); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSlotsGenerate(w http.ResponseWriter, r *http.Request) {
	resourceID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := s.requireOwner(r.Context(), w, resourceID); !ok {
		return
	}

	var req struct {
		HorizonDays int `json:"horizon_days"`
		SlotMinutes int `json:"slot_minutes"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	horizon := req.HorizonDays
	if horizon == 0 {
		horizon = s.HorizonDays
	}
	slotLen := time.Duration(req.SlotMinutes) * time.Minute
	if req.SlotMinutes == 0 {
		slotLen = s.SlotLength
	}

	res, err := s.Resources.Get(r.Context(), resourceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	loc, err := res.Location()
	if err != nil {
		writeError(w, http.StatusBadRequest, "resource timezone invalid")
		return
	}
	tpl, err := s.Templates.Get(r.Context(), resourceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	cands := availability.Expand(tpl, loc, time.Now(), horizon, slotLen)
	rep, err := s.Slots.PersistCandidates(r.Context(), resourceID, cands)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, rep)
}

type slotPayload struct {
	ID    uuid.UUID `json:"id"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (s *Server) handleSlotsList(w http.ResponseWriter, r *http.Request) {
	resourceID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	from := time.Now().UTC()
	to := from.AddDate(0, 0, s.HorizonDays)
	if v := r.URL.Query().Get("from"); v != "" {
		if from, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid from")
			return
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		if to, err = time.Parse(time.RFC3339, v); err != nil {
			writeError(w, http.StatusBadRequest, "invalid to")
			return
		}
	}

	free, err := s.Slots.ListFree(r.Context(), resourceID, from, to)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]slotPayload, 0, len(free))
	for _, sl := range free {
		out = append(out, slotPayload{ID: sl.ID, Start: sl.Start, End: sl.End})
	}
	writeJSON(w, http.StatusOK, out)
}

type reservationPayload struct {
	ID         uuid.UUID  `json:"id"`
	ResourceID uuid.UUID  `json:"resource_id"`
	SlotID     uuid.UUID  `json:"slot_id"`
	ReservedAt time.Time  `json:"reserved_at"`
	Status     string     `json:"status"`
	CanceledAt *time.Time `json:"canceled_at,omitempty"`
}

func toReservationPayload(r booking.Reservation) reservationPayload {
	return reservationPayload{
		ID:         r.ID,
		ResourceID: r.ResourceID,
		SlotID:     r.SlotID,
		ReservedAt: r.ReservedAt,
		Status:     string(r.Status),
		CanceledAt: r.CanceledAt,
	}
}

func (s *Server) handleReserve(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req struct {
		ResourceID uuid.UUID `json:"resource_id"`
		SlotID     uuid.UUID `json:"slot_id"`
		PaymentRef string    `json:"payment_ref"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	// the payment collaborator's "payment accepted" signal; opaque here
	if strings.TrimSpace(req.PaymentRef) == "" {
		writeError(w, http.StatusPaymentRequired, "payment confirmation required")
		return
	}

	res, err := s.Bookings.Reserve(r.Context(), uid, req.ResourceID, req.SlotID)
	if err != nil {
		writeBookingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toReservationPayload(res))
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	reservationID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.Bookings.Cancel(r.Context(), reservationID, uid); err != nil {
		writeBookingError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMyReservations(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	rs, err := s.Reservations.ListByCustomer(r.Context(), uid)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]reservationPayload, 0, len(rs))
	for _, res := range rs {
		out = append(out, toReservationPayload(res))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleResourceReservations(w http.ResponseWriter, r *http.Request) {
	resourceID, err := pathUUID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if _, ok := s.requireOwner(r.Context(), w, resourceID); !ok {
		return
	}
	rs, err := s.Reservations.ListByResource(r.Context(), resourceID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	out := make([]reservationPayload, 0, len(rs))
	for _, res := range rs {
		out = append(out, toReservationPayload(res))
	}
	writeJSON(w, http.StatusOK, out)
}
