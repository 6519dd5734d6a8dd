package http

import (
	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/delivery"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func orderFromDomain(o *order.Order) Order {
	items := make([]OrderItem, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, OrderItem{
			ItemId:      item.MenuItemID().Bytes(),
			Quantity:    item.Quantity(),
			Preferences: item.Preferences(),
			UnitPrice:   money(item.UnitPrice()),
		})
	}

	return Order{
		Id:           o.ID().Bytes(),
		CustomerId:   o.CustomerID().Bytes(),
		RestaurantId: o.RestaurantID().Bytes(),
		TotalPrice:   money(o.TotalPrice()),
		Status:       o.Status().String(),
		OrderType:    o.Type().String(),
		OrderTime:    o.OrderTime().UTC(),
		Items:        items,
	}
}

func itemsFromViews(views []queries.OrderItemView) []OrderItem {
	items := make([]OrderItem, 0, len(views))
	for _, item := range views {
		items = append(items, OrderItem{
			ItemId:      item.MenuItemID.Bytes(),
			Name:        item.Name,
			Quantity:    item.Quantity,
			Preferences: item.Preferences,
			UnitPrice:   money(item.UnitPrice),
		})
	}
	return items
}

func ordersFromViews(views []queries.OrderView) []Order {
	orders := make([]Order, 0, len(views))
	for _, v := range views {
		orders = append(orders, Order{
			Id:             v.ID.Bytes(),
			CustomerId:     v.CustomerID.Bytes(),
			RestaurantId:   v.RestaurantID.Bytes(),
			RestaurantName: v.RestaurantName,
			TotalPrice:     money(v.TotalPrice),
			Status:         v.Status,
			OrderType:      v.OrderType,
			OrderTime:      v.OrderTime,
			Items:          itemsFromViews(v.Items),
		})
	}
	return orders
}

func deliveryFromDomain(d *delivery.Delivery) Delivery {
	response := Delivery{
		Id:               d.ID().Bytes(),
		OrderId:          d.OrderID().Bytes(),
		DeliveryPersonId: d.CourierID().Bytes(),
		Status:           d.Status().String(),
		UpdatedAt:        d.UpdatedAt().UTC(),
	}
	if loc := d.Location(); loc != nil {
		lat, lon := loc.Latitude(), loc.Longitude()
		response.Latitude, response.Longitude = &lat, &lon
	}
	return response
}

func deliveryDetailsFromView(v queries.DeliveryView) DeliveryDetails {
	return DeliveryDetails{
		Delivery: Delivery{
			Id:               v.ID.Bytes(),
			OrderId:          v.OrderID.Bytes(),
			DeliveryPersonId: v.CourierID.Bytes(),
			Status:           v.Status,
			Latitude:         v.Latitude,
			Longitude:        v.Longitude,
			UpdatedAt:        v.UpdatedAt,
		},
		CourierName:    v.CourierName,
		CourierPhone:   v.CourierPhone,
		OrderStatus:    v.OrderStatus,
		TotalPrice:     money(v.TotalPrice),
		RestaurantId:   v.RestaurantID.Bytes(),
		RestaurantName: v.RestaurantName,
		CustomerId:     v.CustomerID.Bytes(),
		CustomerName:   v.CustomerName,
		CustomerPhone:  v.CustomerPhone,
		Items:          itemsFromViews(v.Items),
	}
}

func trackingFromView(v queries.TrackingView) Tracking {
	response := Tracking{
		OrderId:      v.OrderID.Bytes(),
		OrderStatus:  v.OrderStatus,
		OrderType:    v.OrderType,
		RestaurantId: v.RestaurantID.Bytes(),
	}
	if d := v.Delivery; d != nil {
		response.Delivery = &Delivery{
			Id:               d.ID.Bytes(),
			OrderId:          v.OrderID.Bytes(),
			DeliveryPersonId: d.CourierID.Bytes(),
			Status:           d.Status,
			Latitude:         d.Latitude,
			Longitude:        d.Longitude,
			UpdatedAt:        d.UpdatedAt,
		}
	}
	return response
}
