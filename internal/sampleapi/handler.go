package sampleapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/2beens/fitdash/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

const (
	EndpointUser            = "user"
	EndpointActivity        = "activity"
	EndpointAverageSessions = "average-sessions"
	EndpointPerformance     = "performance"
)

// Handler serves the fitness backend API the dashboard consumes.
type Handler struct {
	mu sync.RWMutex
	// failing endpoints answer with 500, used to exercise error states
	failing map[string]bool
}

func NewHandler() *Handler {
	return &Handler{
		failing: make(map[string]bool),
	}
}

func (handler *Handler) SetupRoutes(r *mux.Router) {
	r.HandleFunc("/user/{id:[0-9]+}", handler.handleUser).Methods("GET").Name("user")
	r.HandleFunc("/user/{id:[0-9]+}/activity", handler.handleActivity).Methods("GET").Name("activity")
	r.HandleFunc("/user/{id:[0-9]+}/average-sessions", handler.handleAverageSessions).Methods("GET").Name("average-sessions")
	r.HandleFunc("/user/{id:[0-9]+}/performance", handler.handlePerformance).Methods("GET").Name("performance")
}

// SetFailing makes an endpoint ("user", "activity", ...) fail or recover.
func (handler *Handler) SetFailing(endpoint string, failing bool) {
	handler.mu.Lock()
	defer handler.mu.Unlock()
	handler.failing[endpoint] = failing
}

func (handler *Handler) isFailing(endpoint string) bool {
	handler.mu.RLock()
	defer handler.mu.RUnlock()
	return handler.failing[endpoint]
}

func (handler *Handler) handleUser(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, EndpointUser, func(ds Dataset) any { return ds.Main })
}

func (handler *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, EndpointActivity, func(ds Dataset) any { return ds.Activity })
}

func (handler *Handler) handleAverageSessions(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, EndpointAverageSessions, func(ds Dataset) any { return ds.AverageSessions })
}

func (handler *Handler) handlePerformance(w http.ResponseWriter, r *http.Request) {
	handler.serve(w, r, EndpointPerformance, func(ds Dataset) any { return ds.Performance })
}

func (handler *Handler) serve(w http.ResponseWriter, r *http.Request, endpoint string, pick func(Dataset) any) {
	if handler.isFailing(endpoint) {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	userID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid user id", http.StatusBadRequest)
		return
	}

	ds, err := Lookup(userID)
	if err != nil {
		log.Debugf("sample api %s: %s", endpoint, err)
		http.Error(w, "can not get user", http.StatusNotFound)
		return
	}

	resp, err := json.Marshal(struct {
		Data any `json:"data"`
	}{Data: pick(ds)})
	if err != nil {
		log.Errorf("marshal %s for user %d: %s", endpoint, userID, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(resp))
}
