package mockapi

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/google/uuid"

	"storefront/internal/domain"
)

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if !readJSON(w, r, &in) {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if a.user.Username == in.Username && a.password == in.Password {
			access := uuid.NewString()
			s.tokens[access] = a.user.ID
			writeJSON(w, http.StatusOK, domain.LoginResponse{
				Access:  access,
				Refresh: uuid.NewString(),
				User:    a.user,
			})
			return
		}
	}
	writeDetail(w, http.StatusUnauthorized, "No active account found with the given credentials")
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in domain.RegisterRequest
	if !readJSON(w, r, &in) {
		return
	}
	in.Username = strings.TrimSpace(in.Username)
	if in.Username == "" {
		writeFieldError(w, "username", "This field may not be blank.")
		return
	}
	if len(in.Password) < 8 {
		writeFieldError(w, "password", "Ensure this field has at least 8 characters.")
		return
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		writeFieldError(w, "email", "Enter a valid email address.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.users {
		if strings.EqualFold(a.user.Username, in.Username) {
			writeFieldError(w, "username", "A user with that username already exists.")
			return
		}
	}
	u := domain.User{
		ID:        s.newID(),
		Username:  in.Username,
		Email:     in.Email,
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}
	s.users[u.ID] = &account{user: u, password: in.Password}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) currentUser(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	a := s.users[userID(r)]
	s.mu.Unlock()
	if a == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, a.user)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	delete(s.tokens, bearerToken(r))
	s.mu.Unlock()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) subscribe(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email string `json:"email"`
	}
	if !readJSON(w, r, &in) {
		return
	}
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil {
		writeFieldError(w, "email", "Enter a valid email address.")
		return
	}
	key := strings.ToLower(addr.Address)

	s.mu.Lock()
	_, exists := s.subscribers[key]
	s.subscribers[key] = struct{}{}
	s.mu.Unlock()

	if exists {
		writeDetail(w, http.StatusOK, "Already subscribed.")
		return
	}
	writeDetail(w, http.StatusCreated, "Subscribed.")
}
