package domain

import "time"

// Review is a product review.
type Review struct {
	ID        int64     `json:"id"`
	Product   int64     `json:"product"`
	User      int64     `json:"user"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ShopReview is a review left on a shop rather than a product.
type ShopReview struct {
	ID        int64     `json:"id"`
	Shop      int64     `json:"shop"`
	User      int64     `json:"user"`
	Username  string    `json:"username"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewInput is the body for creating a product review.
type ReviewInput struct {
	Product int64  `json:"product"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ShopReviewInput is the body for creating a shop review.
type ShopReviewInput struct {
	Shop    int64  `json:"shop"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// Rating bounds accepted by the backend.
const (
	MinRating = 1
	MaxRating = 5
)

// ReviewSummary is computed client-side from a review list.
type ReviewSummary struct {
	AverageRating float64     `json:"average_rating"`
	TotalCount    int         `json:"total_count"`
	Distribution  map[int]int `json:"distribution"`
}

// Summarize aggregates ratings into a ReviewSummary. Out-of-range ratings
// are ignored.
func Summarize(ratings []int) ReviewSummary {
	s := ReviewSummary{Distribution: make(map[int]int, MaxRating)}
	sum := 0
	for _, r := range ratings {
		if r < MinRating || r > MaxRating {
			continue
		}
		s.Distribution[r]++
		s.TotalCount++
		sum += r
	}
	if s.TotalCount > 0 {
		s.AverageRating = float64(sum) / float64(s.TotalCount)
	}
	return s
}
