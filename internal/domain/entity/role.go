// Package entity contains the core business objects of the project.
package entity

import "slices"

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleSuperAdmin has every capability, including managing other admins.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleAdmin manages the store but not other admin accounts.
	RoleAdmin Role = "ADMIN"
	// RoleStoreManager manages inventory and order fulfilment.
	RoleStoreManager Role = "STORE_MANAGER"
	// RoleProductManager manages the catalog (products, categories, brands).
	RoleProductManager Role = "PRODUCT_MANAGER"
	// RoleMarketingManager manages coupons and promotions.
	RoleMarketingManager Role = "MARKETING_MANAGER"
	// RoleCustomerSupport reads orders and users to assist customers.
	RoleCustomerSupport Role = "CUSTOMER_SUPPORT"
	// RoleCustomer is a regular shopper.
	RoleCustomer Role = "CUSTOMER"
	// RoleDelivery is a delivery agent assignable to orders.
	RoleDelivery Role = "DELIVERY"
	// RoleGuest is an unauthenticated visitor.
	RoleGuest Role = "GUEST"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleStoreManager, RoleProductManager,
		RoleMarketingManager, RoleCustomerSupport, RoleCustomer, RoleDelivery, RoleGuest:
		return true
	default:
		return false
	}
}

// Capability is a single permitted action checked at the top of handlers.
type Capability string

const (
	CapManageUsers     Capability = "manage_users"
	CapManageCatalog   Capability = "manage_catalog"
	CapManageInventory Capability = "manage_inventory"
	CapManageCoupons   Capability = "manage_coupons"
	CapManageOrders    Capability = "manage_orders"
	CapViewOrders      Capability = "view_orders"
	CapDeliverOrders   Capability = "deliver_orders"
	CapShop            Capability = "shop"
)

// roleCapabilities is the closed lookup table mapping each role to the
// actions it may perform. Authorization is a membership check against this
// table, never an ad-hoc role comparison in handlers.
var roleCapabilities = map[Role][]Capability{
	RoleSuperAdmin: {
		CapManageUsers, CapManageCatalog, CapManageInventory,
		CapManageCoupons, CapManageOrders, CapViewOrders, CapShop,
	},
	RoleAdmin: {
		CapManageUsers, CapManageCatalog, CapManageInventory,
		CapManageCoupons, CapManageOrders, CapViewOrders, CapShop,
	},
	RoleStoreManager: {
		CapManageInventory, CapManageOrders, CapViewOrders,
	},
	RoleProductManager: {
		CapManageCatalog, CapManageInventory,
	},
	RoleMarketingManager: {
		CapManageCoupons,
	},
	RoleCustomerSupport: {
		CapViewOrders,
	},
	RoleCustomer: {
		CapShop, CapViewOrders,
	},
	RoleDelivery: {
		CapDeliverOrders,
	},
	RoleGuest: {},
}

// Can reports whether the role is permitted to perform the capability.
func (r Role) Can(capability Capability) bool {
	return slices.Contains(roleCapabilities[r], capability)
}

// Capabilities returns the full set of capabilities for the role.
func (r Role) Capabilities() []Capability {
	return slices.Clone(roleCapabilities[r])
}
