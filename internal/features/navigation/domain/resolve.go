package domain

import auth "nearzy/internal/features/auth/domain"

// Redirect reasons.
const (
	ReasonUnknownTarget  = "unknown_target"
	ReasonSignInRequired = "sign_in_required"
	ReasonForbidden      = "forbidden"
)

// Screen is what the client renders for a navigation request.
type Screen struct {
	Target    Target   `json:"target"`
	Title     string   `json:"title"`
	Requested string   `json:"requested"`
	Resources []string `json:"resources"`
	// Reason is set when the requested target was replaced.
	Reason string `json:"reason,omitempty"`
}

// Resolve maps the requested target to the screen for role. Dashboards need
// the matching role: visitors are sent to login and other roles to home.
// Unknown targets also land on home.
func Resolve(requested string, role auth.Role) Screen {
	target, ok := ParseTarget(requested)
	reason := ""

	switch {
	case !ok:
		target, reason = TargetHome, ReasonUnknownTarget
	case target.RequiredRole() != Anonymous && role == Anonymous:
		target, reason = TargetLogin, ReasonSignInRequired
	case target.RequiredRole() != Anonymous && target.RequiredRole() != role:
		target, reason = TargetHome, ReasonForbidden
	}

	def := screens[target]
	resources := make([]string, len(def.resources))
	copy(resources, def.resources)

	return Screen{
		Target:    target,
		Title:     def.title,
		Requested: requested,
		Resources: resources,
		Reason:    reason,
	}
}

// NavItem is one entry of the navigation bar.
type NavItem struct {
	Target Target `json:"target"`
	Label  string `json:"label"`
	Badge  int    `json:"badge,omitempty"`
	Active bool   `json:"active"`
}

// NavBar lists the navigation entries for role, marking current as active.
// The cart entry carries the cart item count.
func NavBar(current Target, role auth.Role, cartItems int) []NavItem {
	items := []NavItem{
		{Target: TargetHome, Label: "Home"},
		{Target: TargetCategories, Label: "Categories"},
		{Target: TargetCart, Label: "Cart", Badge: cartItems},
		{Target: TargetTrackOrder, Label: "Orders"},
		{Target: TargetLogin, Label: "Profile"},
	}
	switch role {
	case auth.RoleAdmin:
		items = append(items, NavItem{Target: TargetAdmin, Label: "Admin"})
	case auth.RoleShopkeeper:
		items = append(items, NavItem{Target: TargetShopkeeper, Label: "My Shop"})
	}

	for i := range items {
		items[i].Active = items[i].Target == current
	}
	return items
}
