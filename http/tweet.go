package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

func (s *Server) registerTweetRoutes(r *mux.Router) {
	r.HandleFunc("/tweet", s.requireAuth(s.handleCreateTweet)).Methods("POST")
	r.HandleFunc("/tweet/{id:[0-9]+}", s.requireAuth(s.handleGetTweet)).Methods("GET")
}

// handleCreateTweet handles the route "POST /tweet".
// The author is always the authed user, whatever the body says.
func (s *Server) handleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var tweet domain.Tweet
	if err := json.NewDecoder(r.Body).Decode(&tweet); err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid json body."))
		return
	}

	user := s.getUserFromContext(r.Context())
	tweet.UserID = user.ID

	if err := s.ts.CreateTweet(&tweet); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&tweet); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleGetTweet handles the route "GET /tweet/{id}".
// It returns the tweet enriched with its author's current name and handle.
func (s *Server) handleGetTweet(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	tweet, err := s.ts.ByID(id)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	author, err := s.us.ByID(tweet.UserID)
	if err != nil {
		if errs.ErrorCode(err) == errs.ENOTFOUND {
			err = errs.Errorf(errs.ECONSISTENCY, "Tweet %d references a vanished author %d.", tweet.ID, tweet.UserID)
		}
		errs.ReturnError(w, r, err)
		return
	}

	view := domain.TweetView{
		Tweet: *tweet,
		Name: author.Name,
		Handle: author.Handle,
	}
	if err := json.NewEncoder(w).Encode(&view); err != nil {
		errs.LogError(r, err)
		return
	}
}
