package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testFees = FeeSchedule{DeliveryFee: 150, PlatformFee: 50}

func splitForTest(lines []Line, checkout CheckoutContext) []*Order {
	n := 0
	newID := func() string {
		n++
		return fmt.Sprintf("order-%04d", n)
	}
	m := 0
	newOrderNo := func() string {
		m++
		return fmt.Sprintf("ON%04d", m)
	}
	return Split(lines, checkout, testFees, newID, newOrderNo, time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
}

func TestSplit_SingleSellerDelivery(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", ShopID: "shop1", SellerID: "s1", Price: 4500, Quantity: 1},
	}
	orders := splitForTest(lines, CheckoutContext{
		Fulfillment:   FulfillmentDelivery,
		PaymentMethod: "COD",
		BuyerID:       "buyer-1",
		BuyerName:     "Ali",
		BuyerMobile:   "0300-0000000",
		BuyerAddress:  "House 1, Street 2",
	})

	require.Len(t, orders, 1)
	o := orders[0]
	require.Equal(t, "s1", o.SellerID)
	require.Equal(t, int64(4500), o.Subtotal)
	require.Equal(t, int64(150), o.DeliveryFee)
	require.Equal(t, int64(4650), o.Total)
	// 平台费仅记录，不进入买家应付总额
	require.Equal(t, int64(50), o.PlatformFee)
	require.Equal(t, OrderStatusPending, o.Status)
}

func TestSplit_TwoSellersPickup(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", SellerID: "s1", Price: 1000, Quantity: 2},
		{ProductID: "p2", SellerID: "s2", Price: 500, Quantity: 1},
	}
	orders := splitForTest(lines, CheckoutContext{Fulfillment: FulfillmentPickup, BuyerID: "buyer-1"})

	require.Len(t, orders, 2)

	bySeller := map[string]*Order{}
	for _, o := range orders {
		bySeller[o.SellerID] = o
	}

	require.Equal(t, int64(2000), bySeller["s1"].Subtotal)
	require.Equal(t, int64(0), bySeller["s1"].DeliveryFee)
	require.Equal(t, int64(2000), bySeller["s1"].Total)

	require.Equal(t, int64(500), bySeller["s2"].Subtotal)
	require.Equal(t, int64(0), bySeller["s2"].DeliveryFee)
	require.Equal(t, int64(500), bySeller["s2"].Total)
}

func TestSplit_DeliveryFeePerSellerOrder(t *testing.T) {
	// N 个卖家收取 N 份配送费：各卖家独立履约
	lines := []Line{
		{ProductID: "p1", SellerID: "s1", Price: 100, Quantity: 1},
		{ProductID: "p2", SellerID: "s2", Price: 100, Quantity: 1},
		{ProductID: "p3", SellerID: "s3", Price: 100, Quantity: 1},
	}
	orders := splitForTest(lines, CheckoutContext{Fulfillment: FulfillmentDelivery})

	require.Len(t, orders, 3)
	var totalDelivery int64
	for _, o := range orders {
		totalDelivery += o.DeliveryFee
	}
	require.Equal(t, int64(450), totalDelivery)
}

func TestSplit_ItemsShareSellerID(t *testing.T) {
	lines := []Line{
		{ProductID: "p1", SellerID: "s1", Price: 100, Quantity: 1},
		{ProductID: "p2", SellerID: "s2", Price: 100, Quantity: 1},
		{ProductID: "p3", SellerID: "s1", Price: 100, Quantity: 2},
	}
	orders := splitForTest(lines, CheckoutContext{Fulfillment: FulfillmentPickup})

	for _, o := range orders {
		var subtotal int64
		for _, item := range o.Items {
			require.Equal(t, o.ID, item.OrderID)
			subtotal += item.Price * int64(item.Quantity)
		}
		require.Equal(t, o.Subtotal, subtotal)
	}
}

func TestSplit_GuestPlaceholders(t *testing.T) {
	lines := []Line{{ProductID: "p1", SellerID: "s1", Price: 100, Quantity: 1}}
	orders := splitForTest(lines, CheckoutContext{Fulfillment: FulfillmentPickup})

	require.Equal(t, GuestName, orders[0].BuyerName)
	require.Equal(t, GuestMobile, orders[0].BuyerMobile)
	require.Equal(t, GuestAddress, orders[0].BuyerAddress)
}

func TestOrder_ShortRef(t *testing.T) {
	o := &Order{ID: "3f2a9c1e-aaaa-bbbb-cccc-0123456789ab"}
	require.Equal(t, "89AB", o.ShortRef())
}

func TestOrder_StatusMachine(t *testing.T) {
	o := &Order{Status: OrderStatusPending}
	require.NoError(t, o.TransitionTo(OrderStatusPaid))
	require.NoError(t, o.TransitionTo(OrderStatusShipped))
	require.Error(t, o.TransitionTo(OrderStatusCancelled))
	require.NoError(t, o.TransitionTo(OrderStatusCompleted))
	require.Error(t, o.TransitionTo(OrderStatusPending))
}
