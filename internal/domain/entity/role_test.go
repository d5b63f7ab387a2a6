package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRole_IsValid(t *testing.T) {
	valid := []Role{
		RoleSuperAdmin, RoleAdmin, RoleStoreManager, RoleProductManager,
		RoleMarketingManager, RoleCustomerSupport, RoleCustomer, RoleDelivery, RoleGuest,
	}
	for _, role := range valid {
		assert.True(t, role.IsValid(), "expected %s to be valid", role)
	}

	assert.False(t, Role("WAREHOUSE").IsValid())
	assert.False(t, Role("").IsValid())
}

func TestRole_Can(t *testing.T) {
	// Every admin-tier role can manage what its scope covers, nothing more.
	assert.True(t, RoleSuperAdmin.Can(CapManageUsers))
	assert.True(t, RoleAdmin.Can(CapManageOrders))
	assert.True(t, RoleStoreManager.Can(CapManageInventory))
	assert.False(t, RoleStoreManager.Can(CapManageUsers))
	assert.True(t, RoleProductManager.Can(CapManageCatalog))
	assert.False(t, RoleProductManager.Can(CapManageCoupons))
	assert.True(t, RoleMarketingManager.Can(CapManageCoupons))
	assert.False(t, RoleMarketingManager.Can(CapManageCatalog))

	// Customer support reads orders but never mutates them.
	assert.True(t, RoleCustomerSupport.Can(CapViewOrders))
	assert.False(t, RoleCustomerSupport.Can(CapManageOrders))

	// Shoppers shop, agents deliver, guests do neither.
	assert.True(t, RoleCustomer.Can(CapShop))
	assert.False(t, RoleCustomer.Can(CapDeliverOrders))
	assert.True(t, RoleDelivery.Can(CapDeliverOrders))
	assert.False(t, RoleDelivery.Can(CapShop))
	assert.False(t, RoleGuest.Can(CapShop))
}

func TestRole_Capabilities_ReturnsCopy(t *testing.T) {
	caps := RoleCustomer.Capabilities()
	assert.NotEmpty(t, caps)

	caps[0] = Capability("tampered")
	assert.NotContains(t, RoleCustomer.Capabilities(), Capability("tampered"))
}
