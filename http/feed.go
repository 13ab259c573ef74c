package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"chirper/domain"
	"chirper/errs"
)

func (s *Server) registerFeedRoutes(r *mux.Router) {
	r.HandleFunc("/feed", s.requireAuth(s.handleGlobalFeed)).Methods("GET")
	r.HandleFunc("/feed/following", s.requireAuth(s.handleFollowingFeed)).Methods("GET")
	r.HandleFunc("/feed/user/{user_id:[0-9]+}", s.requireAuth(s.handleUserFeed)).Methods("GET")
	r.HandleFunc("/feed/handle/{handle}", s.requireAuth(s.handleHandleFeed)).Methods("GET")
	r.HandleFunc("/feed/hashtag/{hashtag}", s.requireAuth(s.handleHashtagFeed)).Methods("GET")
}

// handleGlobalFeed handles the route "GET /feed".
func (s *Server) handleGlobalFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.fds.Global()
	s.returnFeed(w, r, feed, err)
}

// handleFollowingFeed handles the route "GET /feed/following".
// The caller is always the authed user.
func (s *Server) handleFollowingFeed(w http.ResponseWriter, r *http.Request) {
	user := s.getUserFromContext(r.Context())
	feed, err := s.fds.Following(user.ID)
	s.returnFeed(w, r, feed, err)
}

// handleUserFeed handles the route "GET /feed/user/{user_id}".
func (s *Server) handleUserFeed(w http.ResponseWriter, r *http.Request) {
	userId, err := strconv.Atoi(mux.Vars(r)["user_id"])
	if err != nil {
		errs.ReturnError(w, r, errs.Errorf(errs.EINVALID, "Invalid Id format."))
		return
	}
	feed, err := s.fds.ByUserID(userId)
	s.returnFeed(w, r, feed, err)
}

// handleHandleFeed handles the route "GET /feed/handle/{handle}".
func (s *Server) handleHandleFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.fds.ByHandle(mux.Vars(r)["handle"])
	s.returnFeed(w, r, feed, err)
}

// handleHashtagFeed handles the route "GET /feed/hashtag/{hashtag}".
// The tag is matched exactly as stored, case included.
func (s *Server) handleHashtagFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := s.fds.ByHashtag(mux.Vars(r)["hashtag"])
	s.returnFeed(w, r, feed, err)
}

// returnFeed writes a feed, or the error that prevented assembling it.
func (s *Server) returnFeed(w http.ResponseWriter, r *http.Request, feed []domain.TweetView, err error) {
	if err != nil {
		errs.ReturnError(w, r, err)
		return
	}
	if err := json.NewEncoder(w).Encode(feed); err != nil {
		errs.LogError(r, err)
		return
	}
}
