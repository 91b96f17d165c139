package domain

import "time"

// DemoSellerID 预置演示店铺的卖家 ID
// 历史数据中存在指向它的旧别名，别名表在配置中维护
const DemoSellerID = "seller-demo-001"

// SeedShops 内置的种子店铺，目录快照缺失或损坏时回退使用
func SeedShops() []*Shop {
	return []*Shop{
		{
			ID:             "shop-demo-001",
			OwnerID:        DemoSellerID,
			Name:           "Khan Traders",
			Bio:            "Household goods and kitchenware.",
			ContactNumbers: []string{"0300-1112223"},
			Bazaar:         "Sunday Bazaar",
			Category:       "Home & Kitchen",
			Status:         ShopStatusApproved,
			Tier:           "basic",
			SortPriority:   10,
			Featured:       true,
			CreatedAt:      time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:             "shop-demo-002",
			OwnerID:        "seller-demo-002",
			Name:           "Bismillah Garments",
			Bio:            "Ready-made garments for the whole family.",
			ContactNumbers: []string{"0301-4445556"},
			Bazaar:         "Jumma Bazaar",
			Category:       "Clothing",
			Status:         ShopStatusApproved,
			Tier:           "basic",
			SortPriority:   5,
			Featured:       false,
			CreatedAt:      time.Date(2025, 1, 12, 0, 0, 0, 0, time.UTC),
		},
	}
}

// SeedProducts 内置的种子商品
func SeedProducts() []*Product {
	return []*Product{
		{
			ID:          "product-demo-001",
			ShopID:      "shop-demo-001",
			Name:        "Steel Cooking Pot 5L",
			Description: "Heavy-gauge stainless steel pot.",
			Price:       4500,
			Category:    "Home & Kitchen",
			Images:      []string{"https://cdn.example.com/p/pot-1.jpg"},
			Tags:        []string{"kitchen", "steel"},
			CreatedAt:   time.Date(2025, 1, 11, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "product-demo-002",
			ShopID:      "shop-demo-002",
			Name:        "Cotton Kurta",
			Description: "Plain cotton kurta, summer weight.",
			Price:       1000,
			Category:    "Clothing",
			Images:      []string{"https://cdn.example.com/p/kurta-1.jpg"},
			Tags:        []string{"clothing", "cotton"},
			CreatedAt:   time.Date(2025, 1, 13, 0, 0, 0, 0, time.UTC),
		},
	}
}
