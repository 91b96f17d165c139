// Package domain 包含购物车的领域模型
// 所有操作都是纯转换：绝不原地修改，始终返回新的购物车值
package domain

// Item 购物车行项目，携带下单所需的商品快照
type Item struct {
	// 商品 ID，一个购物车内唯一
	ProductID string `json:"product_id"`
	// 商品所属店铺 ID
	ShopID string `json:"shop_id"`
	// 卖家用户 ID
	SellerID string `json:"seller_id"`
	// 商品名称快照
	Name string `json:"name"`
	// 单价快照（最小货币单位）
	Price int64 `json:"price"`
	// 首图快照
	Image string `json:"image"`
	// 数量，始终 >= 1
	Quantity int `json:"quantity"`
}

// LineTotal 行小计
func (i Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Cart 购物车
type Cart struct {
	Items []Item `json:"items"`
}

// Add 加入商品：已存在则数量 +1，否则以数量 1 追加
func Add(cart Cart, line Item) Cart {
	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)

	for i := range items {
		if items[i].ProductID == line.ProductID {
			items[i].Quantity++
			return Cart{Items: items}
		}
	}

	line.Quantity = 1
	return Cart{Items: append(items, line)}
}

// UpdateQuantity 按 delta 调整数量，下限为 1
// 移除是独立操作，数量不会通过此操作降到 1 以下
func UpdateQuantity(cart Cart, productID string, delta int) Cart {
	items := make([]Item, len(cart.Items))
	copy(items, cart.Items)

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity += delta
			if items[i].Quantity < 1 {
				items[i].Quantity = 1
			}
			break
		}
	}
	return Cart{Items: items}
}

// Remove 移除指定商品；商品不存在时返回等价的购物车
func Remove(cart Cart, productID string) Cart {
	items := make([]Item, 0, len(cart.Items))
	for _, item := range cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	return Cart{Items: items}
}

// Clear 清空购物车，仅在结账完成后调用
func Clear() Cart {
	return Cart{}
}

// IsEmpty 购物车是否为空
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Subtotal 全车小计
func (c Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.LineTotal()
	}
	return total
}

// SellerIDs 车内出现的去重卖家 ID，按首次出现顺序
func (c Cart) SellerIDs() []string {
	seen := make(map[string]struct{}, len(c.Items))
	var ids []string
	for _, item := range c.Items {
		if _, ok := seen[item.SellerID]; !ok {
			seen[item.SellerID] = struct{}{}
			ids = append(ids, item.SellerID)
		}
	}
	return ids
}

// ItemsBySeller 返回属于指定卖家的行项目
func (c Cart) ItemsBySeller(sellerID string) []Item {
	var items []Item
	for _, item := range c.Items {
		if item.SellerID == sellerID {
			items = append(items, item)
		}
	}
	return items
}
