package domain

// Page is a DRF paginated envelope.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// HasNext reports whether the backend advertised a following page.
func (p Page[T]) HasNext() bool { return p.Next != nil && *p.Next != "" }
