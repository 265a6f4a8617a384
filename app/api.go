package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/urbansetu/pricewatch/config"
	"github.com/urbansetu/pricewatch/lib"
	"github.com/urbansetu/pricewatch/lib/models"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func NewAPI(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger, svc *lib.Service) *http.Server {
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	srv := &http.Server{Addr: addr, Handler: router(cfg, log, svc)}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Sugar().Errorw("HTTP server stopped", "err", err)
				}
			}()
			log.Sugar().Infof("Listening on %s", addr)
			return nil
		},
		OnStop: srv.Shutdown,
	})

	return srv
}

func router(cfg *config.Config, log *zap.Logger, svc *lib.Service) http.Handler {
	ctrl := &controller{log, svc}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(cfg.RequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		if creds := cfg.GetCreds(); len(creds) > 0 {
			r.Use(middleware.BasicAuth("urbansetu", creds))
		} else {
			log.Sugar().Info("Auth is disabled since no credentials are defined")
		}

		r.Route("/price-drop-alerts", func(r chi.Router) {
			r.Post("/send", ctrl.sendAlert)
			r.Post("/trigger-alerts", ctrl.triggerAlerts)
			r.Post("/test-email", ctrl.sendTestEmail)
			r.Get("/history", ctrl.alertHistory)
		})

		r.Route("/watchlist", func(r chi.Router) {
			r.Post("/", ctrl.watch)
			r.Get("/users/{user_id}", ctrl.listWatchlist)
			r.Delete("/users/{user_id}/listings/{listing_id}", ctrl.unwatch)
		})
	})

	return r
}

type controller struct {
	log *zap.Logger
	svc *lib.Service
}

type errorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

type successResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (ctrl *controller) reject(w http.ResponseWriter, status int, err error) {
	ctrl.resolve(w, status, errorResponse{Success: false, Error: err.Error()})
}

func (ctrl *controller) resolve(w http.ResponseWriter, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		ctrl.log.Sugar().Errorw("Request failed", "err", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(b)
}

func (ctrl *controller) decode(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		ctrl.reject(w, http.StatusBadRequest, fmt.Errorf("invalid JSON body: %w", err))
		return false
	}
	return true
}

type sendAlertRequest struct {
	UserID           uint              `json:"userId"`
	ListingID        uint              `json:"listingId"`
	PriceDropDetails *models.PriceDrop `json:"priceDropDetails"`
}

func (ctrl *controller) sendAlert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendAlertRequest
	if !ctrl.decode(w, r, &req) {
		return
	}
	if req.UserID == 0 || req.ListingID == 0 || req.PriceDropDetails == nil {
		ctrl.reject(w, http.StatusBadRequest, errors.New("userId, listingId, and priceDropDetails are required"))
		return
	}
	if err := req.PriceDropDetails.Validate(); err != nil {
		ctrl.reject(w, http.StatusBadRequest, err)
		return
	}

	dispatch, err := ctrl.svc.SendPriceDropAlert(ctx, req.UserID, req.ListingID, *req.PriceDropDetails)
	if err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, successResponse{true, "Price drop alert sent successfully", dispatch})
}

func (ctrl *controller) triggerAlerts(w http.ResponseWriter, r *http.Request) {
	// Alerts already sent cannot be recalled, so the sweep outlives the client.
	ctx := context.WithoutCancel(r.Context())

	result, err := ctrl.svc.SweepPriceDrops(ctx)
	if err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, result)
}

type testEmailRequest struct {
	Email string `json:"email"`
}

func (ctrl *controller) sendTestEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req testEmailRequest
	if !ctrl.decode(w, r, &req) {
		return
	}
	if req.Email == "" {
		ctrl.reject(w, http.StatusBadRequest, errors.New("Email is required"))
		return
	}

	dispatch, err := ctrl.svc.SendTestEmail(ctx, req.Email)
	if err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, successResponse{true, "Test email sent successfully", dispatch})
}

func (ctrl *controller) alertHistory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var userID uint
	if raw := query.Get("userId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			ctrl.reject(w, http.StatusBadRequest, fmt.Errorf("invalid userId %q", raw))
			return
		}
		userID = uint(id)
	}
	var limit int
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			ctrl.reject(w, http.StatusBadRequest, fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = n
	}

	logs, err := ctrl.svc.AlertHistory(ctx, userID, limit)
	if err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FromMany[models.AlertLog, AlertLogView](logs))
}

type watchRequest struct {
	UserID    uint `json:"userId"`
	ListingID uint `json:"listingId"`
}

func (ctrl *controller) watch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req watchRequest
	if !ctrl.decode(w, r, &req) {
		return
	}
	if req.UserID == 0 || req.ListingID == 0 {
		ctrl.reject(w, http.StatusBadRequest, errors.New("userId and listingId are required"))
		return
	}

	entry, created, err := ctrl.svc.AddToWatchlist(ctx, req.UserID, req.ListingID)
	if err != nil {
		ctrl.reject(w, statusFor(err), err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	ctrl.resolve(w, status, WatchlistEntryView{}.From(entry))
}

func (ctrl *controller) listWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")

	entries, err := ctrl.svc.ListWatchlist(ctx, parseInt(userID))
	if err != nil {
		ctrl.reject(w, http.StatusInternalServerError, err)
		return
	}
	ctrl.resolve(w, http.StatusOK, FromMany[*models.WatchlistEntry, WatchlistEntryView](entries))
}

func (ctrl *controller) unwatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")
	listingID := chi.URLParam(r, "listing_id")

	if err := ctrl.svc.RemoveFromWatchlist(ctx, parseInt(userID), parseInt(listingID)); err != nil {
		ctrl.reject(w, statusFor(err), err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func statusFor(err error) int {
	if lib.IsNotFound(err) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func parseInt(s string) uint {
	u, _ := strconv.ParseUint(s, 10, 64)
	return uint(u)
}
