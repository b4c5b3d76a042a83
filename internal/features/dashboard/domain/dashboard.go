package domain

import (
	"errors"

	catalog "nearzy/internal/features/catalog/domain"
)

var (
	// ErrUnknownTab is returned for a tab the dashboard does not have.
	ErrUnknownTab = errors.New("unknown dashboard tab")
	// ErrUnknownFilter is returned for an order filter outside the known statuses.
	ErrUnknownFilter = errors.New("unknown order filter")
)

// Tab is the active section of a dashboard. Admin and shopkeeper dashboards
// accept different sets of tabs.
type Tab string

// Dashboard tabs.
const (
	TabOverview  Tab = "overview"
	TabOrders    Tab = "orders"
	TabProducts  Tab = "products"
	TabRiders    Tab = "riders"
	TabAnalytics Tab = "analytics"
)

var (
	adminTabs      = []Tab{TabOverview, TabOrders, TabProducts, TabRiders, TabAnalytics}
	shopkeeperTabs = []Tab{TabOverview, TabOrders, TabProducts, TabAnalytics}
)

// AdminTabs lists the admin dashboard tabs in display order.
func AdminTabs() []Tab {
	return append([]Tab(nil), adminTabs...)
}

// ShopkeeperTabs lists the shopkeeper dashboard tabs in display order.
func ShopkeeperTabs() []Tab {
	return append([]Tab(nil), shopkeeperTabs...)
}

// ParseAdminTab validates s as an admin tab. Empty means overview.
func ParseAdminTab(s string) (Tab, error) {
	return parseTab(s, adminTabs)
}

// ParseShopkeeperTab validates s as a shopkeeper tab. Empty means overview.
func ParseShopkeeperTab(s string) (Tab, error) {
	return parseTab(s, shopkeeperTabs)
}

func parseTab(s string, allowed []Tab) (Tab, error) {
	if s == "" {
		return TabOverview, nil
	}
	for _, t := range allowed {
		if Tab(s) == t {
			return t, nil
		}
	}
	return "", ErrUnknownTab
}

// OrderFilter narrows the shopkeeper order list by status.
type OrderFilter string

// Order filters.
const (
	FilterAll       OrderFilter = "all"
	FilterPending   OrderFilter = "pending"
	FilterPacked    OrderFilter = "packed"
	FilterPickedUp  OrderFilter = "picked-up"
	FilterDelivered OrderFilter = "delivered"
)

// ParseOrderFilter validates s. Empty means all.
func ParseOrderFilter(s string) (OrderFilter, error) {
	switch f := OrderFilter(s); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterPending, FilterPacked, FilterPickedUp, FilterDelivered:
		return f, nil
	}
	return "", ErrUnknownFilter
}

// Match reports whether an order in status passes the filter.
func (f OrderFilter) Match(status string) bool {
	return f == FilterAll || string(f) == status
}

// AdminStats are the platform-wide headline numbers.
type AdminStats struct {
	TotalOrders         int    `json:"total_orders" yaml:"total_orders"`
	ActiveOrders        int    `json:"active_orders" yaml:"active_orders"`
	TotalRevenue        int    `json:"total_revenue" yaml:"total_revenue"`
	TotalCustomers      int    `json:"total_customers" yaml:"total_customers"`
	TotalRiders         int    `json:"total_riders" yaml:"total_riders"`
	AverageDeliveryTime string `json:"average_delivery_time" yaml:"average_delivery_time"`
}

// OrderItem is one line of a dashboard order.
type OrderItem struct {
	Name     string `json:"name" yaml:"name"`
	Quantity int    `json:"quantity" yaml:"quantity"`
	Price    int    `json:"price" yaml:"price"`
}

// AdminOrder is an order as listed on the admin dashboard.
type AdminOrder struct {
	ID            string      `json:"id" yaml:"id"`
	CustomerName  string      `json:"customer_name" yaml:"customer_name"`
	CustomerPhone string      `json:"customer_phone" yaml:"customer_phone"`
	Items         []OrderItem `json:"items" yaml:"items"`
	Total         int         `json:"total" yaml:"total"`
	Status        string      `json:"status" yaml:"status"`
	OrderTime     string      `json:"order_time" yaml:"order_time"`
	Address       string      `json:"address" yaml:"address"`
	RiderID       string      `json:"rider_id" yaml:"rider_id"`
}

// Rider is a delivery partner.
type Rider struct {
	ID              string  `json:"id" yaml:"id"`
	Name            string  `json:"name" yaml:"name"`
	Phone           string  `json:"phone" yaml:"phone"`
	Rating          float64 `json:"rating" yaml:"rating"`
	Status          string  `json:"status" yaml:"status"`
	CurrentOrders   int     `json:"current_orders" yaml:"current_orders"`
	TotalDeliveries int     `json:"total_deliveries" yaml:"total_deliveries"`
	Location        string  `json:"location" yaml:"location"`
}

// Metric is a labelled analytics figure.
type Metric struct {
	Label string `json:"label" yaml:"label"`
	Value string `json:"value" yaml:"value"`
}

// AdminData is the admin dashboard seed.
type AdminData struct {
	Stats   AdminStats   `yaml:"stats"`
	Orders  []AdminOrder `yaml:"orders"`
	Riders  []Rider      `yaml:"riders"`
	Metrics []Metric     `yaml:"metrics"`
}

// ShopkeeperStats are one shop's headline numbers.
type ShopkeeperStats struct {
	TotalOrders       int               `json:"total_orders" yaml:"total_orders"`
	PendingOrders     int               `json:"pending_orders" yaml:"pending_orders"`
	CompletedOrders   int               `json:"completed_orders" yaml:"completed_orders"`
	TotalRevenue      int               `json:"total_revenue" yaml:"total_revenue"`
	AverageOrderValue int               `json:"average_order_value" yaml:"average_order_value"`
	TopProducts       []catalog.Product `json:"top_products" yaml:"-"`
}

// ShopkeeperOrder is an order as the shop sees it.
type ShopkeeperOrder struct {
	ID                  string         `json:"id"`
	Items               []ShopLineItem `json:"items"`
	Total               int            `json:"total"`
	Status              string         `json:"status"`
	ETA                 string         `json:"eta"`
	Address             string         `json:"address"`
	CustomerName        string         `json:"customer_name"`
	CustomerPhone       string         `json:"customer_phone"`
	OrderTime           string         `json:"order_time"`
	EstimatedPickupTime string         `json:"estimated_pickup_time"`
}

// ShopLineItem is a shop product and the ordered quantity.
type ShopLineItem struct {
	catalog.Product
	Quantity int `json:"quantity"`
}

// ShopkeeperData is the shopkeeper dashboard seed.
type ShopkeeperData struct {
	Stats    ShopkeeperStats
	Products []catalog.Product
	Orders   []ShopkeeperOrder
}
