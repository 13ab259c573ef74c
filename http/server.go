package http

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"

	"chirper/auth"
	"chirper/crud"
	"chirper/domain"
	"chirper/errs"
)

// Server provides the http functionality of this app, namely routing,
// request handling, and middleware. It performs authentication and
// authorization before handing things over to one of the crud services,
// which only ever see resolved user ids.
type Server struct {
	router *mux.Router
	us domain.UserService
	ts domain.TweetService
	fs domain.FollowService
	ls domain.LikeService
	fds domain.FeedService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the app services passed in.
func NewServer(isProd bool, csrfAuthKey string, services *crud.Services) *Server {
	s := &Server{
		router: mux.NewRouter(),
		us: services.User,
		ts: services.Tweet,
		fs: services.Follow,
		ls: services.Like,
		fds: services.Feed,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the crud system.
	s.registerUserRoutes(s.router)
	s.registerTweetRoutes(s.router)
	s.registerFeedRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerLikeRoutes(s.router)

	// Set up middleware that needs to run on every request.
	csrfMw := csrf.Protect([]byte(csrfAuthKey), csrf.Secure(isProd), csrf.Path("/"))
	s.router.Use(csrfMw, setContentTypeJSON, s.checkUser)
	return s
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The checkUser middleware resolves the remember token cookie, if there is
// one, into a user and stores them in the request context. Requests without
// a valid session pass through with no user set.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth wraps a handler that must only run for authenticated users.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			errs.ReturnError(w, r, errs.Errorf(errs.EUNAUTHORIZED, "You must be logged in."))
			return
		}
		next(w, r)
	}
}

// getUserFromContext returns the authenticated user making the request.
func (s *Server) getUserFromContext(ctx context.Context) *domain.User {
	return auth.GetUser(ctx)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) {
	log.Fatal(http.ListenAndServe(":"+strconv.Itoa(port), s.router))
}
