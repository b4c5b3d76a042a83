package adapters

import (
	"context"
	_ "embed"
	"fmt"

	catalog "nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/dashboard/domain"

	"gopkg.in/yaml.v3"
)

//go:embed dashboard.yaml
var seedDashboard []byte

type shopOrderLine struct {
	ProductID string `yaml:"product_id"`
	Quantity  int    `yaml:"quantity"`
}

type shopOrder struct {
	ID                  string          `yaml:"id"`
	Items               []shopOrderLine `yaml:"items"`
	Total               int             `yaml:"total"`
	Status              string          `yaml:"status"`
	ETA                 string          `yaml:"eta"`
	Address             string          `yaml:"address"`
	CustomerName        string          `yaml:"customer_name"`
	CustomerPhone       string          `yaml:"customer_phone"`
	OrderTime           string          `yaml:"order_time"`
	EstimatedPickupTime string          `yaml:"estimated_pickup_time"`
}

type dashboardDocument struct {
	Admin      domain.AdminData `yaml:"admin"`
	Shopkeeper struct {
		Stats       domain.ShopkeeperStats `yaml:"stats"`
		Products    []catalog.Product      `yaml:"products"`
		TopProducts []string               `yaml:"top_products"`
		Orders      []shopOrder            `yaml:"orders"`
	} `yaml:"shopkeeper"`
}

// StaticDashboard implements ports.DashboardSource over embedded reference data.
type StaticDashboard struct {
	admin domain.AdminData
	shop  domain.ShopkeeperData
}

// NewStaticDashboard decodes the embedded dashboard data.
func NewStaticDashboard() (*StaticDashboard, error) {
	return ParseDashboard(seedDashboard)
}

// ParseDashboard decodes a dashboard YAML document. Shop orders and top
// products reference shop products by id and are resolved here.
func ParseDashboard(data []byte) (*StaticDashboard, error) {
	var doc dashboardDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode dashboard: %w", err)
	}

	sk := doc.Shopkeeper
	byID := make(map[string]catalog.Product, len(sk.Products))
	for _, p := range sk.Products {
		byID[p.ID] = p
	}

	stats := sk.Stats
	for _, id := range sk.TopProducts {
		p, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("top product %s is not a shop product", id)
		}
		stats.TopProducts = append(stats.TopProducts, p)
	}

	orders := make([]domain.ShopkeeperOrder, 0, len(sk.Orders))
	for _, o := range sk.Orders {
		items := make([]domain.ShopLineItem, 0, len(o.Items))
		for _, line := range o.Items {
			p, ok := byID[line.ProductID]
			if !ok {
				return nil, fmt.Errorf("shop order %s references unknown product %s", o.ID, line.ProductID)
			}
			items = append(items, domain.ShopLineItem{Product: p, Quantity: line.Quantity})
		}
		orders = append(orders, domain.ShopkeeperOrder{
			ID:                  o.ID,
			Items:               items,
			Total:               o.Total,
			Status:              o.Status,
			ETA:                 o.ETA,
			Address:             o.Address,
			CustomerName:        o.CustomerName,
			CustomerPhone:       o.CustomerPhone,
			OrderTime:           o.OrderTime,
			EstimatedPickupTime: o.EstimatedPickupTime,
		})
	}

	return &StaticDashboard{
		admin: doc.Admin,
		shop: domain.ShopkeeperData{
			Stats:    stats,
			Products: sk.Products,
			Orders:   orders,
		},
	}, nil
}

// Admin returns the admin dashboard data.
func (s *StaticDashboard) Admin(context.Context) (*domain.AdminData, error) {
	data := s.admin
	return &data, nil
}

// Shopkeeper returns the shopkeeper dashboard data.
func (s *StaticDashboard) Shopkeeper(context.Context) (*domain.ShopkeeperData, error) {
	data := s.shop
	return &data, nil
}
