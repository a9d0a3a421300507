package mockapi

import (
	"net/http"
	"strings"

	"storefront/internal/domain"
)

func (s *Server) listReviews(w http.ResponseWriter, r *http.Request) {
	pid, filtered := queryID(r, "product")
	s.mu.Lock()
	out := []domain.Review{}
	for _, rv := range s.reviews {
		if !filtered || rv.Product == pid {
			out = append(out, rv)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ReviewInput
	if !readJSON(w, r, &in) {
		return
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		writeFieldError(w, "rating", "Ensure this value is between 1 and 5.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.productByID(in.Product)
	if p == nil {
		writeFieldError(w, "product", "Invalid pk - object does not exist.")
		return
	}
	uid := userID(r)
	for _, rv := range s.reviews {
		if rv.Product == p.ID && rv.User == uid {
			writeDetail(w, http.StatusBadRequest, "You have already reviewed this product.")
			return
		}
	}
	rv := domain.Review{
		ID:        s.newID(),
		Product:   p.ID,
		User:      uid,
		Username:  s.users[uid].user.Username,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now(),
	}
	s.reviews = append(s.reviews, rv)

	var ratings []int
	for _, x := range s.reviews {
		if x.Product == p.ID {
			ratings = append(ratings, x.Rating)
		}
	}
	sum := domain.Summarize(ratings)
	p.AverageRating, p.ReviewCount = sum.AverageRating, sum.TotalCount

	writeJSON(w, http.StatusCreated, rv)
}

func (s *Server) listShopReviews(w http.ResponseWriter, r *http.Request) {
	sid, ok := queryID(r, "shop_id")
	if !ok {
		writeDetail(w, http.StatusBadRequest, "shop_id is required.")
		return
	}
	s.mu.Lock()
	out := []domain.ShopReview{}
	for _, rv := range s.shopReviews {
		if rv.Shop == sid {
			out = append(out, rv)
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createShopReview(w http.ResponseWriter, r *http.Request) {
	var in domain.ShopReviewInput
	if !readJSON(w, r, &in) {
		return
	}
	if in.Rating < domain.MinRating || in.Rating > domain.MaxRating {
		writeFieldError(w, "rating", "Ensure this value is between 1 and 5.")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sh := s.shopByID(in.Shop)
	if sh == nil {
		writeFieldError(w, "shop", "Invalid pk - object does not exist.")
		return
	}
	uid := userID(r)
	if sh.Owner == uid {
		writeDetail(w, http.StatusBadRequest, "You cannot review your own shop.")
		return
	}
	rv := domain.ShopReview{
		ID:        s.newID(),
		Shop:      sh.ID,
		User:      uid,
		Username:  s.users[uid].user.Username,
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		CreatedAt: s.now(),
	}
	s.shopReviews = append(s.shopReviews, rv)

	var ratings []int
	for _, x := range s.shopReviews {
		if x.Shop == sh.ID {
			ratings = append(ratings, x.Rating)
		}
	}
	sh.Rating = domain.Summarize(ratings).AverageRating

	writeJSON(w, http.StatusCreated, rv)
}
