package mockapi

import (
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// ---------- products ----------

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	s.mu.Lock()
	matched := s.filterProducts(q)
	s.mu.Unlock()

	page := 1
	if v := q.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeDetail(w, http.StatusNotFound, "Invalid page.")
			return
		}
		page = n
	}
	start := (page - 1) * PageSize
	if start > 0 && start >= len(matched) {
		writeDetail(w, http.StatusNotFound, "Invalid page.")
		return
	}
	end := start + PageSize
	if end > len(matched) {
		end = len(matched)
	}

	out := domain.Page[domain.Product]{
		Count:   len(matched),
		Results: matched[start:end],
	}
	if end < len(matched) {
		out.Next = pageURL(r, page+1)
	}
	if page > 1 {
		out.Previous = pageURL(r, page-1)
	}
	writeJSON(w, http.StatusOK, out)
}

// filterProducts matches search terms against name, category and
// description, case-insensitively. Callers hold s.mu.
func (s *Server) filterProducts(q url.Values) []domain.Product {
	search := strings.ToLower(strings.TrimSpace(q.Get("search")))
	category := strings.TrimSpace(q.Get("category"))
	shop, _ := strconv.ParseInt(q.Get("shop"), 10, 64)
	minPrice, minErr := decimal.NewFromString(q.Get("min_price"))
	maxPrice, maxErr := decimal.NewFromString(q.Get("max_price"))

	out := []domain.Product{}
	for _, p := range s.products {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.CategoryName), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if category != "" {
			c := s.categoryByID(p.Category)
			if c == nil || !strings.EqualFold(c.Slug, category) {
				continue
			}
		}
		if shop > 0 && p.Shop != shop {
			continue
		}
		price := p.EffectivePrice()
		if minErr == nil && price.LessThan(minPrice) {
			continue
		}
		if maxErr == nil && price.GreaterThan(maxPrice) {
			continue
		}
		out = append(out, *p)
	}

	switch q.Get("ordering") {
	case "price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].EffectivePrice().LessThan(out[j].EffectivePrice()) })
	case "-price":
		sort.SliceStable(out, func(i, j int) bool { return out[i].EffectivePrice().GreaterThan(out[j].EffectivePrice()) })
	case "name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	case "-name":
		sort.SliceStable(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	case "-average_rating":
		sort.SliceStable(out, func(i, j int) bool { return out[i].AverageRating > out[j].AverageRating })
	}
	return out
}

func pageURL(r *http.Request, page int) *string {
	q := r.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u := "http://" + r.Host + r.URL.Path + "?" + q.Encode()
	return &u
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	p := s.productByID(id)
	var out domain.Product
	if p != nil {
		out = *p
	}
	s.mu.Unlock()

	if p == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

const maxSuggestions = 8

func (s *Server) autocomplete(w http.ResponseWriter, r *http.Request) {
	q := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	out := []domain.ProductSuggestion{}
	if q == "" {
		writeJSON(w, http.StatusOK, out)
		return
	}

	s.mu.Lock()
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), q) {
			out = append(out, domain.ProductSuggestion{ID: p.ID, Name: p.Name})
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) trending(w http.ResponseWriter, r *http.Request) {
	limit := 5
	if n, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && n > 0 {
		limit = min(n, 20)
	}

	s.mu.Lock()
	out := make([]domain.Product, 0, len(s.products))
	for _, p := range s.products {
		out = append(out, *p)
	}
	s.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ReviewCount != out[j].ReviewCount {
			return out[i].ReviewCount > out[j].ReviewCount
		}
		return out[i].AverageRating > out[j].AverageRating
	})
	if len(out) > limit {
		out = out[:limit]
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------- categories ----------

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, s.categoryView(c))
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	s.mu.Lock()
	c := s.categoryBySlug(slug)
	var out domain.Category
	if c != nil {
		out = s.categoryView(c)
	}
	s.mu.Unlock()

	if c == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) categoryView(c *domain.Category) domain.Category {
	out := *c
	out.ProductCount = 0
	for _, p := range s.products {
		if p.Category == c.ID {
			out.ProductCount++
		}
	}
	return out
}

// ---------- shops ----------

func (s *Server) getShop(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	s.mu.Lock()
	sh := s.shopByID(id)
	var out domain.Shop
	if sh != nil {
		out = s.shopView(sh)
	}
	s.mu.Unlock()

	if sh == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) myShop(w http.ResponseWriter, r *http.Request) {
	uid := userID(r)
	s.mu.Lock()
	var out *domain.Shop
	for _, sh := range s.shops {
		if sh.Owner == uid {
			v := s.shopView(sh)
			out = &v
			break
		}
	}
	s.mu.Unlock()

	if out == nil {
		writeDetail(w, http.StatusNotFound, "You do not own a shop.")
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) shopView(sh *domain.Shop) domain.Shop {
	out := *sh
	out.ProductCount = 0
	for _, p := range s.products {
		if p.Shop == sh.ID {
			out.ProductCount++
		}
	}
	return out
}

const (
	defaultAnalyticsDays = 30
	maxAnalyticsDays     = 365
	topProductsLimit     = 5
)

func (s *Server) shopAnalytics(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	days := defaultAnalyticsDays
	if n, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && n > 0 {
		days = min(n, maxAnalyticsDays)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	sh := s.shopByID(id)
	if sh == nil {
		writeDetail(w, http.StatusNotFound, "Not found.")
		return
	}
	if sh.Owner != userID(r) {
		writeDetail(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := today.AddDate(0, 0, -(days - 1))

	buckets := make(map[string]*domain.SalesPoint, days)
	out := domain.ShopAnalytics{
		ShopID:        sh.ID,
		Days:          days,
		TotalRevenue:  decimal.Zero,
		AverageRating: sh.Rating,
		Sales:         make([]domain.SalesPoint, 0, days),
		TopProducts:   []domain.TopProduct{},
	}
	for d := from; !d.After(today); d = d.AddDate(0, 0, 1) {
		out.Sales = append(out.Sales, domain.SalesPoint{Date: d.Format(time.DateOnly), Revenue: decimal.Zero})
	}
	for i := range out.Sales {
		buckets[out.Sales[i].Date] = &out.Sales[i]
	}
	for _, p := range s.products {
		if p.Shop == sh.ID {
			out.TotalProducts++
		}
	}

	top := map[int64]*domain.TopProduct{}
	for _, o := range s.orders {
		if o.Status == domain.OrderCancelled || o.CreatedAt.UTC().Before(from) {
			continue
		}
		counted := false
		for _, it := range o.Items {
			if it.Shop != sh.ID {
				continue
			}
			line := it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
			out.TotalRevenue = out.TotalRevenue.Add(line)
			if b := buckets[o.CreatedAt.UTC().Format(time.DateOnly)]; b != nil {
				b.Revenue = b.Revenue.Add(line)
				if !counted {
					b.Orders++
				}
			}
			if !counted {
				out.TotalOrders++
				counted = true
			}
			tp := top[it.Product]
			if tp == nil {
				tp = &domain.TopProduct{ProductID: it.Product, Name: it.ProductName, Revenue: decimal.Zero}
				top[it.Product] = tp
			}
			tp.UnitsSold += it.Quantity
			tp.Revenue = tp.Revenue.Add(line)
		}
	}
	for _, tp := range top {
		out.TopProducts = append(out.TopProducts, *tp)
	}
	sort.Slice(out.TopProducts, func(i, j int) bool {
		a, b := out.TopProducts[i], out.TopProducts[j]
		if a.UnitsSold != b.UnitsSold {
			return a.UnitsSold > b.UnitsSold
		}
		return a.ProductID < b.ProductID
	})
	if len(out.TopProducts) > topProductsLimit {
		out.TopProducts = out.TopProducts[:topProductsLimit]
	}
	writeJSON(w, http.StatusOK, out)
}

// ---------- lookups (callers hold s.mu) ----------

func (s *Server) productByID(id int64) *domain.Product {
	for _, p := range s.products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (s *Server) categoryByID(id int64) *domain.Category {
	for _, c := range s.categories {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (s *Server) categoryBySlug(slug string) *domain.Category {
	for _, c := range s.categories {
		if strings.EqualFold(c.Slug, slug) {
			return c
		}
	}
	return nil
}

func (s *Server) shopByID(id int64) *domain.Shop {
	for _, sh := range s.shops {
		if sh.ID == id {
			return sh
		}
	}
	return nil
}
