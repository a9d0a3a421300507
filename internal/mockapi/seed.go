package mockapi

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// Seeded accounts.
const (
	BuyerUsername = "alice"
	BuyerPassword = "alice-pass"
	OwnerUsername = "bob"
	OwnerPassword = "bob-pass"

	AudioOwnerUsername = "carol"
	AudioOwnerPassword = "carol-pass"
)

// Seeded shop ids.
const (
	GadgetShopID int64 = 1
	AudioShopID  int64 = 2
)

type seedProduct struct {
	name        string
	category    string
	price       string
	description string
	stock       int
}

var seedCategories = []domain.Category{
	{ID: 1, Name: "Smartphones", Slug: "smartphones", Description: "Phones and accessories"},
	{ID: 2, Name: "Laptops", Slug: "laptops", Description: "Notebooks for work and play"},
	{ID: 3, Name: "Tablets", Slug: "tablets", Description: "Tablets and e-readers"},
	{ID: 4, Name: "Audio", Slug: "audio", Description: "Headphones and speakers"},
	{ID: 5, Name: "Wearables", Slug: "wearables", Description: "Watches and trackers"},
}

var seedProducts = []seedProduct{
	{"iPhone 15 Pro", "smartphones", "39900.00", "Latest iPhone with A17 Pro chip, titanium design, and advanced camera system", 12},
	{"Samsung Galaxy S24 Ultra", "smartphones", "42900.00", "Premium Android phone with S Pen, 200MP camera, and AI features", 8},
	{"MacBook Air M3", "laptops", "42900.00", "Lightweight laptop with M3 chip, 13-inch Liquid Retina display", 0},
	{"AirPods Pro (3rd generation)", "audio", "8900.00", "Wireless earbuds with active noise cancellation and spatial audio", 30},
	{"iPad Pro 12.9-inch", "tablets", "35900.00", "Professional tablet with M2 chip and Liquid Retina XDR display", 5},
	{"Sony WH-1000XM5", "audio", "12900.00", "Premium wireless headphones with industry-leading noise cancellation", 14},
	{"Dell XPS 13", "laptops", "35900.00", "Premium ultrabook with Intel 13th Gen processors and InfinityEdge display", 6},
	{"Apple Watch Ultra 2", "wearables", "29900.00", "Rugged smartwatch for outdoor adventures with precise GPS", 0},
	{"Acer Aspire 5 A515-58", "laptops", "28900.00", "Budget laptop Intel Core i5, 8GB RAM, 512GB SSD for everyday work", 9},
	{"Lenovo IdeaPad 3 Gaming", "laptops", "29500.00", "Gaming laptop AMD Ryzen 5, 8GB RAM, GTX 1650 for gaming and multimedia", 7},
	{"HP Pavilion 15-eh3000", "laptops", "27900.00", "All-purpose laptop AMD Ryzen 5, 8GB RAM, 256GB SSD for work and light gaming", 11},
	{"ASUS VivoBook 15 X1502ZA", "laptops", "24900.00", "Affordable laptop Intel Core i3, 8GB RAM, 512GB SSD for light tasks", 10},
}

func (s *Server) seed() {
	now := s.now()

	s.users[1] = &account{user: domain.User{ID: 1, Username: BuyerUsername, Email: "alice@example.com", FirstName: "Alice"}, password: BuyerPassword}
	s.users[2] = &account{user: domain.User{ID: 2, Username: OwnerUsername, Email: "bob@example.com", FirstName: "Bob", IsShopOwner: true}, password: OwnerPassword}
	s.users[3] = &account{user: domain.User{ID: 3, Username: AudioOwnerUsername, Email: "carol@example.com", FirstName: "Carol", IsShopOwner: true}, password: AudioOwnerPassword}

	s.shops = []*domain.Shop{
		{ID: GadgetShopID, Name: "Gadget Hub", Slug: "gadget-hub", Description: "Phones, laptops and tablets", Owner: 2, OwnerName: OwnerUsername, CreatedAt: now},
		{ID: AudioShopID, Name: "Sound & Time", Slug: "sound-and-time", Description: "Audio gear and wearables", Owner: 3, OwnerName: AudioOwnerUsername, CreatedAt: now},
	}

	for i := range seedCategories {
		c := seedCategories[i]
		s.categories = append(s.categories, &c)
	}

	for i, sp := range seedProducts {
		cat := s.categoryBySlug(sp.category)
		shop := s.shops[0]
		if sp.category == "audio" || sp.category == "wearables" {
			shop = s.shops[1]
		}
		s.products = append(s.products, &domain.Product{
			ID:           int64(i + 1),
			Name:         sp.name,
			Slug:         slugify(sp.name),
			Description:  sp.description,
			Price:        decimal.RequireFromString(sp.price),
			Stock:        sp.stock,
			InStock:      sp.stock > 0,
			Category:     cat.ID,
			CategoryName: cat.Name,
			Shop:         shop.ID,
			ShopName:     shop.Name,
			Images:       []domain.ProductImage{},
			CreatedAt:    now,
		})
	}

	sale := decimal.RequireFromString("10900.00")
	s.productByID(6).DiscountPrice = &sale

	for _, rv := range seedReviews {
		rv.ID = s.newID()
		rv.Username = s.users[rv.User].user.Username
		rv.CreatedAt = now
		s.reviews = append(s.reviews, rv)
	}
	for _, p := range s.products {
		var ratings []int
		for _, rv := range s.reviews {
			if rv.Product == p.ID {
				ratings = append(ratings, rv.Rating)
			}
		}
		sum := domain.Summarize(ratings)
		p.AverageRating, p.ReviewCount = sum.AverageRating, sum.TotalCount
	}

	s.messages = append(s.messages, &domain.Message{
		ID:            s.newID(),
		Sender:        2,
		SenderName:    OwnerUsername,
		Recipient:     1,
		RecipientName: BuyerUsername,
		Content:       "Thanks for visiting Gadget Hub! Ask us anything.",
		CreatedAt:     now,
	})
}

var seedReviews = []domain.Review{
	{Product: 1, User: 1, Rating: 5, Comment: "Great camera."},
	{Product: 1, User: 3, Rating: 4, Comment: "Pricey but solid."},
	{Product: 4, User: 1, Rating: 5, Comment: "Noise cancelling is excellent."},
	{Product: 4, User: 2, Rating: 4},
	{Product: 6, User: 1, Rating: 3, Comment: "Comfortable, a bit bulky."},
}

func slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
