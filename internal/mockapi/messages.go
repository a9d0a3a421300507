package mockapi

import (
	"net/http"
	"sort"
	"strings"

	"storefront/internal/domain"
)

func (s *Server) listMessages(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	s.mu.Lock()
	out := []domain.Message{}
	for _, m := range s.messages {
		if m.Sender == uid || m.Recipient == uid {
			out = append(out, *m)
		}
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) conversation(w http.ResponseWriter, r *http.Request) {
	other, ok := queryID(r, "user_id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "user_id is required.")
		return
	}
	uid := userID(r)
	s.mu.Lock()
	out := []domain.Message{}
	for _, m := range s.messages {
		if (m.Sender == uid && m.Recipient == other) || (m.Sender == other && m.Recipient == uid) {
			out = append(out, *m)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) sendMessage(w http.ResponseWriter, r *http.Request) {
	var in domain.MessageInput
	if !readJSON(w, r, &in) {
		return
	}
	content := strings.TrimSpace(in.Content)
	if content == "" {
		writeFieldError(w, "content", "This field may not be blank.")
		return
	}

	uid := userID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	to := s.users[in.Recipient]
	if to == nil || in.Recipient == uid {
		writeFieldError(w, "recipient", "Invalid recipient.")
		return
	}
	if in.Product != nil && s.productByID(*in.Product) == nil {
		writeFieldError(w, "product", "Invalid pk - object does not exist.")
		return
	}
	m := &domain.Message{
		ID:            s.newID(),
		Sender:        uid,
		SenderName:    s.users[uid].user.Username,
		Recipient:     to.user.ID,
		RecipientName: to.user.Username,
		Content:       content,
		Product:       in.Product,
		CreatedAt:     s.now(),
	}
	s.messages = append(s.messages, m)
	writeJSON(w, http.StatusCreated, m)
}

func (s *Server) markRead(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	uid := userID(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.messages {
		if m.ID == id && m.Recipient == uid {
			m.IsRead = true
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
			return
		}
	}
	writeDetail(w, http.StatusNotFound, "Not found.")
}

func (s *Server) unreadCount(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	s.mu.Lock()
	n := 0
	for _, m := range s.messages {
		if m.Recipient == uid && !m.IsRead {
			n++
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, domain.UnreadCount{UnreadCount: n})
}
