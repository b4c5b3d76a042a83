package service

import (
	"context"
	"fmt"

	"nearzy/internal/core/telemetry"
	catalog "nearzy/internal/features/catalog/domain"
	"nearzy/internal/features/dashboard/domain"
	"nearzy/internal/features/dashboard/ports"

	"go.opentelemetry.io/otel/attribute"
)

// AdminProductLimit caps the catalog listing on the admin products tab.
const AdminProductLimit = 8

// AdminView is the content of one admin dashboard tab. Sections a tab does
// not show are omitted.
type AdminView struct {
	Tab      domain.Tab          `json:"tab"`
	Tabs     []domain.Tab        `json:"tabs"`
	Stats    *domain.AdminStats  `json:"stats,omitempty"`
	Orders   []domain.AdminOrder `json:"orders,omitempty"`
	Products []catalog.Product   `json:"products,omitempty"`
	Riders   []domain.Rider      `json:"riders,omitempty"`
	Metrics  []domain.Metric     `json:"metrics,omitempty"`
}

// ShopkeeperView is the content of one shopkeeper dashboard tab.
type ShopkeeperView struct {
	Tab      domain.Tab               `json:"tab"`
	Tabs     []domain.Tab             `json:"tabs"`
	Filter   domain.OrderFilter       `json:"filter,omitempty"`
	Stats    *domain.ShopkeeperStats  `json:"stats,omitempty"`
	Orders   []domain.ShopkeeperOrder `json:"orders,omitempty"`
	Products []catalog.Product        `json:"products,omitempty"`
}

// DashboardService assembles the admin and shopkeeper dashboards.
type DashboardService struct {
	source   ports.DashboardSource
	products ports.ProductLister
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(source ports.DashboardSource, products ports.ProductLister) *DashboardService {
	return &DashboardService{source: source, products: products}
}

// Admin returns the admin dashboard for tab. An empty tab means overview.
func (s *DashboardService) Admin(ctx context.Context, tab string) (view *AdminView, err error) {
	ctx, span := telemetry.Start(ctx, "dashboard", "admin", attribute.String("tab", tab))
	defer func() { telemetry.End(span, err) }()

	t, err := domain.ParseAdminTab(tab)
	if err != nil {
		return nil, err
	}

	data, err := s.source.Admin(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load admin dashboard: %w", err)
	}

	view = &AdminView{Tab: t, Tabs: domain.AdminTabs()}
	switch t {
	case domain.TabOverview:
		stats := data.Stats
		view.Stats = &stats
		view.Orders = data.Orders
	case domain.TabOrders:
		view.Orders = data.Orders
	case domain.TabProducts:
		products, err := s.products.List(ctx, catalog.Filter{})
		if err != nil {
			return nil, fmt.Errorf("service: failed to list products: %w", err)
		}
		if len(products) > AdminProductLimit {
			products = products[:AdminProductLimit]
		}
		view.Products = products
	case domain.TabRiders:
		view.Riders = data.Riders
	case domain.TabAnalytics:
		view.Metrics = data.Metrics
	}
	return view, nil
}

// Shopkeeper returns the shopkeeper dashboard for tab. status filters the
// order list and is ignored by tabs without one.
func (s *DashboardService) Shopkeeper(ctx context.Context, tab, status string) (view *ShopkeeperView, err error) {
	ctx, span := telemetry.Start(ctx, "dashboard", "shopkeeper",
		attribute.String("tab", tab), attribute.String("status", status))
	defer func() { telemetry.End(span, err) }()

	t, err := domain.ParseShopkeeperTab(tab)
	if err != nil {
		return nil, err
	}
	filter, err := domain.ParseOrderFilter(status)
	if err != nil {
		return nil, err
	}

	data, err := s.source.Shopkeeper(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load shopkeeper dashboard: %w", err)
	}

	view = &ShopkeeperView{Tab: t, Tabs: domain.ShopkeeperTabs()}
	switch t {
	case domain.TabOverview:
		stats := data.Stats
		view.Stats = &stats
		view.Orders = data.Orders
	case domain.TabOrders:
		view.Filter = filter
		view.Orders = filterOrders(data.Orders, filter)
	case domain.TabProducts:
		view.Products = data.Products
	case domain.TabAnalytics:
		stats := data.Stats
		view.Stats = &stats
	}
	return view, nil
}

func filterOrders(orders []domain.ShopkeeperOrder, f domain.OrderFilter) []domain.ShopkeeperOrder {
	out := make([]domain.ShopkeeperOrder, 0, len(orders))
	for _, o := range orders {
		if f.Match(o.Status) {
			out = append(out, o)
		}
	}
	return out
}
