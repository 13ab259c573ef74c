package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/errs"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	// Get the profile data of a specific user, by id or by handle.
	r.HandleFunc("/profile/{user_id:[0-9]+}", s.requireAuth(s.handleGetProfile)).Methods("GET")
	r.HandleFunc("/profile/handle/{handle}", s.requireAuth(s.handleGetProfileByHandle)).Methods("GET")

	// List all users.
	r.HandleFunc("/profiles", s.requireAuth(s.handleGetProfiles)).Methods("GET")

	// Update the authed user's profile.
	r.HandleFunc("/profile/update", s.requireAuth(s.handleUpdateProfile)).Methods("PUT")
}

// handleGetProfile handles the route "GET /profile/{user_id}".
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if userId <= 0 || err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user, err := s.us.ByID(userId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleGetProfileByHandle handles the route "GET /profile/handle/{handle}".
func (s *Server) handleGetProfileByHandle(w http.ResponseWriter, r *http.Request) {
	handle := mux.Vars(r)["handle"]

	user, err := s.us.ByHandle(handle)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleGetProfiles handles the route "GET /profiles".
func (s *Server) handleGetProfiles(w http.ResponseWriter, r *http.Request) {
	users, err := s.us.All()
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(users); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleUpdateProfile handles the route "PUT /profile/update".
// Only the authed user's own profile can be updated, and only the name can
// change, the handle is immutable.
func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid update data."))
		return
	}

	user := s.getUserFromContext(r.Context())
	user.Name = payload.Name
	if err := s.us.UpdateUser(user); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(user); err != nil {
		errs.LogError(r, err)
		return
	}
}
