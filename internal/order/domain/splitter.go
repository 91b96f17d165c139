package domain

import "time"

// 访客结账时替代缺失联系字段的占位值
const (
	GuestName    = "Guest"
	GuestMobile  = "N/A"
	GuestAddress = "N/A"
)

// Line 结账时的购物车行项目
type Line struct {
	ProductID string
	ShopID    string
	SellerID  string
	Name      string
	Price     int64
	Image     string
	Quantity  int
}

// CheckoutContext 履约上下文
type CheckoutContext struct {
	// 履约方式
	Fulfillment Fulfillment
	// 支付方式标记
	PaymentMethod string
	// 买家身份，访客可为空
	BuyerID      string
	BuyerName    string
	BuyerMobile  string
	BuyerAddress string
}

// FeeSchedule 费用表
type FeeSchedule struct {
	// DELIVERY 订单的固定配送费，每个卖家订单各计一次
	DeliveryFee int64
	// 每个订单记录的固定平台费，不计入买家应付总额
	PlatformFee int64
}

// Split 将多卖家购物车拆分为每个卖家一张订单
// N 个卖家产生 N 张订单和 N 份配送费：各卖家独立履约，这是业务规则而非可合并的开销
func Split(lines []Line, checkout CheckoutContext, fees FeeSchedule, newID func() string, newOrderNo func() string, now time.Time) []*Order {
	buyerName := checkout.BuyerName
	buyerMobile := checkout.BuyerMobile
	buyerAddress := checkout.BuyerAddress
	if buyerName == "" {
		buyerName = GuestName
	}
	if buyerMobile == "" {
		buyerMobile = GuestMobile
	}
	if buyerAddress == "" {
		buyerAddress = GuestAddress
	}

	// 卖家 ID 去重，首次出现顺序
	seen := make(map[string]struct{})
	var sellerIDs []string
	for _, line := range lines {
		if _, ok := seen[line.SellerID]; !ok {
			seen[line.SellerID] = struct{}{}
			sellerIDs = append(sellerIDs, line.SellerID)
		}
	}

	var orders []*Order
	for _, sellerID := range sellerIDs {
		orderID := newID()

		var items []OrderItem
		var subtotal int64
		for _, line := range lines {
			if line.SellerID != sellerID {
				continue
			}
			items = append(items, OrderItem{
				OrderID:   orderID,
				ProductID: line.ProductID,
				ShopID:    line.ShopID,
				Name:      line.Name,
				Price:     line.Price,
				Image:     line.Image,
				Quantity:  line.Quantity,
			})
			subtotal += line.Price * int64(line.Quantity)
		}

		var deliveryFee int64
		if checkout.Fulfillment == FulfillmentDelivery {
			deliveryFee = fees.DeliveryFee
		}

		orders = append(orders, &Order{
			ID:            orderID,
			OrderNo:       newOrderNo(),
			BuyerID:       checkout.BuyerID,
			SellerID:      sellerID,
			Items:         items,
			Subtotal:      subtotal,
			DeliveryFee:   deliveryFee,
			PlatformFee:   fees.PlatformFee,
			Total:         subtotal + deliveryFee,
			Status:        OrderStatusPending,
			PaymentMethod: checkout.PaymentMethod,
			Fulfillment:   checkout.Fulfillment,
			BuyerName:     buyerName,
			BuyerMobile:   buyerMobile,
			BuyerAddress:  buyerAddress,
			CreatedAt:     now,
		})
	}
	return orders
}
