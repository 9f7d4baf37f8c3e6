package repository

import (
	"math/rand/v2"
	"time"

	"github.com/liliang-cn/ragshop/internal/domain"
)

// NewSeededStore creates a store holding the demo shop data.
// Daily analytics cover the 30 days ending at now.
func NewSeededStore(now time.Time) *Store {
	s := NewStore()

	for _, u := range seedUsers() {
		mustInsert(s.Users.Insert(u))
	}
	for _, p := range seedProducts() {
		mustInsert(s.Products.Insert(p))
	}
	for _, e := range seedKnowledge() {
		mustInsert(s.Knowledge.Insert(e))
	}
	for _, c := range seedConversations() {
		mustInsert(s.Conversations.Insert(c))
	}
	for _, o := range seedOrders() {
		mustInsert(s.Orders.Insert(o))
	}

	s.SetAnalytics(seedAnalytics(now))
	s.SetKPIs(domain.DashboardKPIs{
		TotalProducts:      156,
		TotalConversations: 2847,
		AIAccuracy:         94.2,
		TopSearchedPhones: []domain.SearchedPhone{
			{Model: "iPhone 15 Pro Max", Count: 342},
			{Model: "Samsung Galaxy S24 Ultra", Count: 289},
			{Model: "Google Pixel 8 Pro", Count: 156},
			{Model: "OnePlus 12", Count: 124},
			{Model: "Xiaomi 14 Ultra", Count: 98},
		},
	})
	return s
}

func mustInsert(err error) {
	if err != nil {
		panic(err)
	}
}

func ts(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return t
}

func tsPtr(value string) *time.Time {
	t := ts(value)
	return &t
}

func score(v float64) *float64 {
	return &v
}

func seedUsers() []domain.User {
	return []domain.User{
		{ID: "1", Email: "admin@ragshop.com", Name: "Alex Johnson", Role: domain.RoleAdmin,
			CreatedAt: ts("2024-01-15T10:00:00Z"), UpdatedAt: ts("2024-01-15T10:00:00Z"), LastLoginAt: tsPtr("2024-12-28T08:30:00Z")},
		{ID: "2", Email: "staff@ragshop.com", Name: "Sarah Chen", Role: domain.RoleStaff,
			CreatedAt: ts("2024-02-20T14:00:00Z"), UpdatedAt: ts("2024-02-20T14:00:00Z"), LastLoginAt: tsPtr("2024-12-27T16:45:00Z")},
		{ID: "3", Email: "john@ragshop.com", Name: "John Smith", Role: domain.RoleStaff,
			CreatedAt: ts("2024-03-10T09:00:00Z"), UpdatedAt: ts("2024-03-10T09:00:00Z"), LastLoginAt: tsPtr("2024-12-26T11:20:00Z")},
	}
}

func variant(id, sku, storage, color string, price float64, stock int, availability domain.Availability) domain.ProductVariant {
	return domain.ProductVariant{
		ID:           id,
		SKU:          sku,
		Attributes:   map[string]string{"Storage": storage, "Color": color},
		Price:        price,
		Stock:        stock,
		Availability: availability,
	}
}

func seedProducts() []domain.Product {
	updated := ts("2024-12-28T00:00:00Z")
	return []domain.Product{
		{
			ID: "1", Brand: "Apple", Model: "iPhone 15 Pro Max", BasePrice: 1199,
			Description: "The most advanced iPhone ever with A17 Pro chip",
			Specifications: map[string]string{
				"Display": `6.7" Super Retina XDR`,
				"Chip":    "A17 Pro",
				"Camera":  "48MP Main + 12MP Ultra Wide + 12MP Telephoto",
			},
			Images: []string{"https://images.unsplash.com/photo-1695048133142-1a20484d2569"},
			Variants: []domain.ProductVariant{
				variant("v1", "IPH15PM-256-NAT", "256GB", "Natural Titanium", 1199, 15, domain.AvailabilityInStock),
				variant("v2", "IPH15PM-256-BLU", "256GB", "Blue Titanium", 1199, 12, domain.AvailabilityInStock),
				variant("v3", "IPH15PM-512-NAT", "512GB", "Natural Titanium", 1399, 8, domain.AvailabilityInStock),
				variant("v4", "IPH15PM-1TB-BLK", "1TB", "Black Titanium", 1599, 3, domain.AvailabilityLowStock),
			},
			RAGIndexed: true, CreatedAt: ts("2024-09-20T00:00:00Z"), UpdatedAt: updated,
		},
		{
			ID: "2", Brand: "Samsung", Model: "Galaxy S24 Ultra", BasePrice: 1299,
			Description: "Galaxy AI powered flagship smartphone",
			Specifications: map[string]string{
				"Display": `6.8" Dynamic AMOLED 2X`,
				"Chip":    "Snapdragon 8 Gen 3",
				"Camera":  "200MP Main + 12MP Ultra Wide + 50MP Telephoto",
			},
			Images: []string{"https://images.unsplash.com/photo-1610945265064-0e34e5519bbf"},
			Variants: []domain.ProductVariant{
				variant("v5", "S24U-256-BLK", "256GB", "Titanium Black", 1299, 20, domain.AvailabilityInStock),
				variant("v6", "S24U-256-GRY", "256GB", "Titanium Gray", 1299, 10, domain.AvailabilityInStock),
				variant("v7", "S24U-512-VIO", "512GB", "Titanium Violet", 1419, 5, domain.AvailabilityLowStock),
			},
			RAGIndexed: true, CreatedAt: ts("2024-01-25T00:00:00Z"), UpdatedAt: updated,
		},
		{
			ID: "3", Brand: "Google", Model: "Pixel 8 Pro", BasePrice: 999,
			Description: "The best of Google AI in a smartphone",
			Specifications: map[string]string{
				"Display": `6.7" LTPO OLED`,
				"Chip":    "Google Tensor G3",
				"Camera":  "50MP Main + 48MP Ultra Wide + 48MP Telephoto",
			},
			Images: []string{"https://images.unsplash.com/photo-1598327105666-5b89351aff97"},
			Variants: []domain.ProductVariant{
				variant("v8", "PX8P-128-OBS", "128GB", "Obsidian", 999, 3, domain.AvailabilityLowStock),
				variant("v9", "PX8P-256-BAY", "256GB", "Bay", 1059, 2, domain.AvailabilityLowStock),
			},
			RAGIndexed: true, CreatedAt: ts("2023-10-12T00:00:00Z"), UpdatedAt: updated,
		},
		{
			ID: "4", Brand: "OnePlus", Model: "OnePlus 12", BasePrice: 799,
			Description: "Performance flagship with Hasselblad camera",
			Specifications: map[string]string{
				"Display": `6.82" LTPO AMOLED`,
				"Chip":    "Snapdragon 8 Gen 3",
				"Camera":  "50MP Main + 64MP Ultra Wide + 48MP Telephoto",
			},
			Images: []string{"https://images.unsplash.com/photo-1511707171634-5f897ff02aa9"},
			Variants: []domain.ProductVariant{
				variant("v10", "OP12-256-BLK", "256GB", "Silky Black", 799, 0, domain.AvailabilityOutOfStock),
				variant("v11", "OP12-512-GRN", "512GB", "Flowy Emerald", 899, 0, domain.AvailabilityOutOfStock),
			},
			RAGIndexed: false, CreatedAt: ts("2024-02-01T00:00:00Z"), UpdatedAt: updated,
		},
		{
			ID: "5", Brand: "Xiaomi", Model: "Xiaomi 14 Ultra", BasePrice: 1099,
			Description: "Leica camera system with pro-grade photography",
			Specifications: map[string]string{
				"Display": `6.73" LTPO AMOLED`,
				"Chip":    "Snapdragon 8 Gen 3",
				"Camera":  "50MP Quad Camera with Leica",
			},
			Images: []string{"https://images.unsplash.com/photo-1592750475338-74b7b21085ab"},
			Variants: []domain.ProductVariant{
				variant("v12", "XI14U-512-BLK", "512GB", "Black", 1099, 12, domain.AvailabilityInStock),
				variant("v13", "XI14U-512-WHT", "512GB", "White", 1099, 10, domain.AvailabilityInStock),
			},
			RAGIndexed: true, CreatedAt: ts("2024-03-15T00:00:00Z"), UpdatedAt: updated,
		},
	}
}

func seedKnowledge() []domain.KnowledgeEntry {
	return []domain.KnowledgeEntry{
		{
			ID: "1", Type: domain.KnowledgeTypeFAQ, Title: "Return Policy",
			Content:         "We offer a 30-day return policy for all unopened products. Opened products can be returned within 14 days with a 15% restocking fee.",
			Chunks:          []string{"30-day return policy", "unopened products", "14 days opened", "15% restocking fee"},
			EmbeddingStatus: domain.EmbeddingStatusCompleted, Enabled: true, Version: 2,
			CreatedAt: ts("2024-01-10T00:00:00Z"), UpdatedAt: ts("2024-12-20T00:00:00Z"),
		},
		{
			ID: "2", Type: domain.KnowledgeTypeFAQ, Title: "Warranty Information",
			Content:         "All phones come with manufacturer warranty. Extended warranty options are available at checkout.",
			Chunks:          []string{"manufacturer warranty", "extended warranty", "checkout options"},
			EmbeddingStatus: domain.EmbeddingStatusCompleted, Enabled: true, Version: 1,
			CreatedAt: ts("2024-01-12T00:00:00Z"), UpdatedAt: ts("2024-01-12T00:00:00Z"),
		},
		{
			ID: "3", Type: domain.KnowledgeTypePromotion, Title: "Holiday Sale 2024",
			Content:         "Get up to 20% off on select flagship phones. Use code HOLIDAY24 at checkout. Valid until December 31st.",
			Chunks:          []string{"20% off", "HOLIDAY24", "December 31st", "flagship phones"},
			EmbeddingStatus: domain.EmbeddingStatusCompleted, Enabled: true, Version: 1,
			CreatedAt: ts("2024-12-01T00:00:00Z"), UpdatedAt: ts("2024-12-01T00:00:00Z"),
		},
		{
			ID: "4", Type: domain.KnowledgeTypePolicy, Title: "Price Match Guarantee",
			Content:         "We match any competitor price within 7 days of purchase. Show us the competitor listing and we will refund the difference.",
			Chunks:          []string{"price match", "7 days", "competitor price", "refund difference"},
			EmbeddingStatus: domain.EmbeddingStatusCompleted, Enabled: true, Version: 1,
			CreatedAt: ts("2024-02-15T00:00:00Z"), UpdatedAt: ts("2024-02-15T00:00:00Z"),
		},
		{
			ID: "5", Type: domain.KnowledgeTypeManual, Title: "iPhone Setup Guide",
			Content:         "Complete guide to setting up your new iPhone including iCloud backup, data transfer, and Face ID configuration.",
			Chunks:          []string{"iPhone setup", "iCloud backup", "data transfer", "Face ID"},
			EmbeddingStatus: domain.EmbeddingStatusProcessing, Enabled: true, Version: 3,
			CreatedAt: ts("2024-03-01T00:00:00Z"), UpdatedAt: ts("2024-12-28T00:00:00Z"),
		},
	}
}

func seedConversations() []domain.Conversation {
	return []domain.Conversation{
		{
			ID: "1", Channel: domain.ChannelWeb,
			Messages: []domain.ConversationMessage{
				{ID: "m1", Role: domain.RoleUser, Content: "What is the best phone for photography?", Timestamp: ts("2024-12-28T10:30:00Z")},
				{
					ID: "m2", Role: domain.RoleAssistant,
					Content:   "Based on our current inventory, I recommend the Samsung Galaxy S24 Ultra with its 200MP main camera or the Xiaomi 14 Ultra with Leica optics. Both offer exceptional photography capabilities.",
					Timestamp: ts("2024-12-28T10:30:05Z"),
					RetrievedChunks: []domain.RetrievedChunk{
						{ID: "c1", Content: "Galaxy S24 Ultra - 200MP Main Camera", Source: "products", Score: 0.95},
						{ID: "c2", Content: "Xiaomi 14 Ultra - Leica camera system", Source: "products", Score: 0.92},
					},
					ConfidenceScore: score(0.94),
				},
			},
			ConfidenceScore: 0.94,
			CreatedAt:       ts("2024-12-28T10:30:00Z"), UpdatedAt: ts("2024-12-28T10:30:05Z"),
		},
		{
			ID: "2", Channel: domain.ChannelWhatsApp,
			Messages: []domain.ConversationMessage{
				{ID: "m3", Role: domain.RoleUser, Content: "Do you have iPhone 15 in stock?", Timestamp: ts("2024-12-28T09:15:00Z")},
				{
					ID: "m4", Role: domain.RoleAssistant,
					Content:   "Yes! We have the iPhone 15 Pro Max in stock with 45 units available. It is priced at $1,199. Would you like to know more about its features?",
					Timestamp: ts("2024-12-28T09:15:03Z"),
					RetrievedChunks: []domain.RetrievedChunk{
						{ID: "c3", Content: "iPhone 15 Pro Max - Stock: 45 - Price: $1199", Source: "products", Score: 0.98},
					},
					ConfidenceScore: score(0.97),
				},
			},
			ConfidenceScore: 0.97,
			Feedback:        &domain.Feedback{IsCorrect: true},
			CreatedAt:       ts("2024-12-28T09:15:00Z"), UpdatedAt: ts("2024-12-28T09:15:03Z"),
		},
		{
			ID: "3", Channel: domain.ChannelTelegram,
			Messages: []domain.ConversationMessage{
				{ID: "m5", Role: domain.RoleUser, Content: "What is your return policy?", Timestamp: ts("2024-12-27T16:45:00Z")},
				{
					ID: "m6", Role: domain.RoleAssistant,
					Content:   "We offer a 30-day return policy for all unopened products. Opened products can be returned within 14 days with a 15% restocking fee.",
					Timestamp: ts("2024-12-27T16:45:02Z"),
					RetrievedChunks: []domain.RetrievedChunk{
						{ID: "c4", Content: "Return Policy - 30 days unopened, 14 days opened with 15% fee", Source: "faq", Score: 0.99},
					},
					ConfidenceScore: score(0.99),
				},
			},
			ConfidenceScore: 0.99,
			Feedback:        &domain.Feedback{IsCorrect: true},
			CreatedAt:       ts("2024-12-27T16:45:00Z"), UpdatedAt: ts("2024-12-27T16:45:02Z"),
		},
		{
			ID: "4", Channel: domain.ChannelWeb,
			Messages: []domain.ConversationMessage{
				{ID: "m7", Role: domain.RoleUser, Content: "Can I trade in my old phone?", Timestamp: ts("2024-12-27T14:20:00Z")},
				{
					ID: "m8", Role: domain.RoleAssistant,
					Content:         "I apologize, but I do not have specific information about trade-in programs at the moment. Please contact our customer service team for assistance with trade-ins.",
					Timestamp:       ts("2024-12-27T14:20:04Z"),
					RetrievedChunks: []domain.RetrievedChunk{},
					ConfidenceScore: score(0.35),
				},
			},
			ConfidenceScore: 0.35,
			Feedback:        &domain.Feedback{IsCorrect: false, Note: "Need to add trade-in policy to knowledge base"},
			CreatedAt:       ts("2024-12-27T14:20:00Z"), UpdatedAt: ts("2024-12-27T14:20:04Z"),
		},
	}
}

func seedOrders() []domain.Order {
	orders := []domain.Order{
		{
			ID: "1", OrderNumber: "ORD-2024-001", CustomerName: "Emily Davis",
			CustomerEmail: "emily.davis@example.com", CustomerPhone: "+1 555-0101",
			Items: []domain.OrderItem{
				{ID: "oi1", ProductID: "1", ProductName: "Apple iPhone 15 Pro Max", VariantID: "v1", VariantSKU: "IPH15PM-256-NAT",
					VariantAttributes: map[string]string{"Storage": "256GB", "Color": "Natural Titanium"}, Quantity: 1, UnitPrice: 1199},
			},
			Status: domain.OrderStatusDelivered, PaymentStatus: domain.PaymentStatusPaid,
			ShippingAddress: domain.Address{Street: "123 Main St", City: "New York", State: "NY", ZipCode: "10001", Country: "USA"},
			CreatedAt:       ts("2024-12-20T14:30:00Z"), UpdatedAt: ts("2024-12-24T10:00:00Z"),
		},
		{
			ID: "2", OrderNumber: "ORD-2024-002", CustomerName: "Michael Brown",
			CustomerEmail: "m.brown@example.com",
			Items: []domain.OrderItem{
				{ID: "oi2", ProductID: "2", ProductName: "Samsung Galaxy S24 Ultra", VariantID: "v7", VariantSKU: "S24U-512-VIO",
					VariantAttributes: map[string]string{"Storage": "512GB", "Color": "Titanium Violet"}, Quantity: 1, UnitPrice: 1419},
				{ID: "oi3", ProductID: "3", ProductName: "Google Pixel 8 Pro", VariantID: "v8", VariantSKU: "PX8P-128-OBS",
					VariantAttributes: map[string]string{"Storage": "128GB", "Color": "Obsidian"}, Quantity: 2, UnitPrice: 999},
			},
			Status: domain.OrderStatusProcessing, PaymentStatus: domain.PaymentStatusPending,
			ShippingAddress: domain.Address{Street: "456 Oak Ave", City: "Brooklyn", State: "NY", ZipCode: "11201", Country: "USA"},
			Notes:           "Gift wrap the Pixel",
			CreatedAt:       ts("2024-12-27T09:10:00Z"), UpdatedAt: ts("2024-12-27T09:10:00Z"),
		},
	}
	orders[0].Recalculate(0.08, 0)
	orders[1].Recalculate(0.08, 15)
	return orders
}

func seedAnalytics(now time.Time) domain.AnalyticsData {
	rng := rand.New(rand.NewPCG(2024, 12))
	daily := make([]domain.DailyStats, 30)
	for i := range daily {
		day := now.AddDate(0, 0, -(29 - i))
		daily[i] = domain.DailyStats{
			Date:          day.Format(time.DateOnly),
			Conversations: rng.IntN(150) + 50,
			Accuracy:      rng.Float64()*10 + 88,
			AvgConfidence: rng.Float64()*0.15 + 0.82,
		}
	}

	return domain.AnalyticsData{
		DailyStats: daily,
		TopIntents: []domain.TopIntent{
			{Intent: "Product Inquiry", Count: 845, AvgConfidence: 0.94},
			{Intent: "Price Check", Count: 623, AvgConfidence: 0.96},
			{Intent: "Stock Availability", Count: 512, AvgConfidence: 0.92},
			{Intent: "Return Policy", Count: 334, AvgConfidence: 0.98},
			{Intent: "Warranty Info", Count: 289, AvgConfidence: 0.95},
			{Intent: "Promotions", Count: 244, AvgConfidence: 0.91},
		},
		FailedQueries: []domain.FailedQuery{
			{ID: "f1", Query: "Can I trade in my phone?", Timestamp: ts("2024-12-28T10:00:00Z"), Reason: "No trade-in policy in knowledge base"},
			{ID: "f2", Query: "Do you offer financing?", Timestamp: ts("2024-12-27T15:30:00Z"), Reason: "Financing info not indexed"},
			{ID: "f3", Query: "Store hours for Brooklyn location", Timestamp: ts("2024-12-27T12:15:00Z"), Reason: "Store location data missing"},
		},
		OverallAccuracy:    94.2,
		TotalConversations: 2847,
	}
}
