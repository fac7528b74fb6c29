package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/example/courtbook/internal/auth"
	"github.com/example/courtbook/internal/availability"
	"github.com/example/courtbook/internal/booking"
	"github.com/example/courtbook/internal/db"
	"github.com/example/courtbook/internal/resources"
	"github.com/example/courtbook/internal/slots"
	"github.com/google/uuid"
)

type Server struct {
	Auth         *auth.Store
	Resources    *resources.Repo
	Templates    *availability.Repo
	Slots        *slots.Store
	Bookings     *booking.Service
	Reservations booking.ReservationStore

	// defaults used when a generate request leaves them out
	HorizonDays int
	SlotLength  time.Duration
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.handleLogout)

	authed := func(h http.HandlerFunc) http.Handler { return s.Auth.RequireAuth(h) }

	mux.Handle("GET /api/resources", authed(s.handleResourceList))
	mux.Handle("POST /api/resources", authed(s.handleResourceCreate))
	mux.Handle("PUT /api/resources/{id}/availability", authed(s.handleAvailabilityPut))
	mux.Handle("POST /api/resources/{id}/slots/generate", authed(s.handleSlotsGenerate))
	mux.Handle("GET /api/resources/{id}/slots", authed(s.handleSlotsList))
	mux.Handle("GET /api/resources/{id}/reservations", authed(s.handleResourceReservations))
	mux.Handle("POST /api/reservations", authed(s.handleReserve))
	mux.Handle("POST /api/reservations/{id}/cancel", authed(s.handleCancel))
	mux.Handle("GET /api/reservations", authed(s.handleMyReservations))

	return mux
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := s.Auth.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid username/password")
		return
	}
	if err := s.Auth.SetSession(w, r, id); err != nil {
		writeError(w, http.StatusInternalServerError, "session error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"user_id": id})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.Auth.ClearSession(w)
	w.WriteHeader(http.StatusNoContent)
}

func readJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("web: encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeBookingError maps the engine's taxonomy onto HTTP. Lost races are
// client-visible soft failures, not server errors.
func writeBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrSlotUnavailable):
		writeError(w, http.StatusConflict, "slot unavailable, pick another")
	case errors.Is(err, booking.ErrReservationNotFound):
		writeError(w, http.StatusNotFound, "reservation not found")
	case errors.Is(err, booking.ErrNotAllowed):
		writeError(w, http.StatusForbidden, "not allowed")
	case errors.Is(err, booking.ErrStorage):
		writeError(w, http.StatusServiceUnavailable, "temporary failure, retry")
	default:
		log.Printf("web: booking error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

// requireOwner checks that the session user owns the resource.
func (s *Server) requireOwner(ctx context.Context, w http.ResponseWriter, resourceID uuid.UUID) (int64, bool) {
	uid, _ := auth.UserIDFromContext(ctx)
	owner, err := s.Resources.Owner(ctx, resourceID)
	if err != nil {
		if db.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "resource not found")
		} else {
			writeError(w, http.StatusInternalServerError, "internal error")
		}
		return 0, false
	}
	if owner != uid {
		writeError(w, http.StatusForbidden, "not the resource owner")
		return 0, false
	}
	return uid, true
}

func Start(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	fmt.Printf("listening on %s\n", addr)
	return srv.ListenAndServe()
}
