package domain

import auth "nearzy/internal/features/auth/domain"

// Target is a top-level storefront screen.
type Target string

// Navigation targets.
const (
	TargetHome       Target = "home"
	TargetCategories Target = "categories"
	TargetProducts   Target = "products"
	TargetCart       Target = "cart"
	TargetCheckout   Target = "checkout"
	TargetPayment    Target = "payment"
	TargetTrackOrder Target = "track-order"
	TargetLogin      Target = "login"
	TargetAdmin      Target = "admin"
	TargetShopkeeper Target = "shopkeeper"
)

// Anonymous is the role of a visitor who has not signed in.
const Anonymous auth.Role = ""

type screenDef struct {
	title     string
	resources []string
	// role, when set, is required to see the screen.
	role auth.Role
}

var screens = map[Target]screenDef{
	TargetHome:       {title: "Home", resources: []string{"GET /categories", "GET /stores", "GET /products", "GET /promotion"}},
	TargetCategories: {title: "Categories", resources: []string{"GET /categories"}},
	TargetProducts:   {title: "Products", resources: []string{"GET /products", "GET /brands", "PUT /cart/items/{productId}"}},
	TargetCart:       {title: "Cart", resources: []string{"GET /cart", "PUT /cart/items/{productId}", "DELETE /cart/items/{productId}", "POST /cart/coupon", "DELETE /cart/coupon"}},
	TargetCheckout:   {title: "Checkout", resources: []string{"GET /cart", "POST /checkout"}},
	TargetPayment:    {title: "Payment", resources: []string{"POST /payments"}},
	TargetTrackOrder: {title: "Track Order", resources: []string{"GET /orders/current", "DELETE /orders/{id}/tracking"}},
	TargetLogin:      {title: "Login", resources: []string{"POST /auth/login", "POST /auth/signup", "POST /auth/phone", "POST /auth/phone/confirm", "POST /auth/password-reset"}},
	TargetAdmin:      {title: "Admin Dashboard", resources: []string{"GET /admin/dashboard", "POST /promotion", "DELETE /promotion"}, role: auth.RoleAdmin},
	TargetShopkeeper: {title: "Shopkeeper Dashboard", resources: []string{"GET /shopkeeper/dashboard"}, role: auth.RoleShopkeeper},
}

// ParseTarget returns the Target named s.
func ParseTarget(s string) (Target, bool) {
	t := Target(s)
	_, ok := screens[t]
	return t, ok
}

// RequiredRole returns the role needed to see t, or Anonymous when anyone may.
func (t Target) RequiredRole() auth.Role {
	return screens[t].role
}
