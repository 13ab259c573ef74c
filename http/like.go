package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

func (s *Server) registerLikeRoutes(r *mux.Router) {
	// Like a tweet.
	r.HandleFunc("/like/{tweet_id:[0-9]+}", s.requireAuth(s.handleCreateLike)).Methods("POST")

	// Unlike a previously liked tweet.
	r.HandleFunc("/unlike/{tweet_id:[0-9]+}", s.requireAuth(s.handleDeleteLike)).Methods("DELETE")

	// List the users that liked a tweet.
	r.HandleFunc("/like/{tweet_id:[0-9]+}/users", s.requireAuth(s.handleGetLikers)).Methods("GET")
}

// handleCreateLike handles the route "POST /like/{tweet_id}".
// Liking an already-liked tweet succeeds without effect.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	tweetId, err := strconv.Atoi(mux.Vars(r)["tweet_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	like := domain.Like{
		UserID: user.ID,
		TweetID: tweetId,
	}

	if err := s.ls.Create(&like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(&like); err != nil {
		errs.LogError(r, err)
		return
	}
}

// handleDeleteLike handles the route "DELETE /unlike/{tweet_id}".
// Unliking a tweet that wasn't liked succeeds without effect.
func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	tweetId, err := strconv.Atoi(mux.Vars(r)["tweet_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	user := s.getUserFromContext(r.Context())
	like := domain.Like{
		UserID: user.ID,
		TweetID: tweetId,
	}

	if err := s.ls.Delete(&like); err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// handleGetLikers handles the route "GET /like/{tweet_id}/users".
func (s *Server) handleGetLikers(w http.ResponseWriter, r *http.Request) {
	tweetId, err := strconv.Atoi(mux.Vars(r)["tweet_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}

	likers, err := s.ls.LikersOf(tweetId)
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}

	if err := json.NewEncoder(w).Encode(likers); err != nil {
		errs.LogError(r, err)
		return
	}
}
