package authz

import (
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	svc, err := NewService(db)
	require.NoError(t, err)
	return svc
}

func TestEnforceAdminWithRolePolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.GrantRolePolicy("ops", "/admin/coupons/:id", "GET"))
	require.NoError(t, svc.SetAdminRoles(1, []string{"ops"}))

	allow, err := svc.EnforceAdmin(1, "/api/v1/admin/coupons/42", "get")
	require.NoError(t, err)
	assert.True(t, allow)

	allow, err = svc.EnforceAdmin(1, "/api/v1/admin/coupons/42", "DELETE")
	require.NoError(t, err)
	assert.False(t, allow)
}

func TestSetAdminRolesOverride(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.GrantRolePolicy("ops", "/admin/orders", "GET"))
	require.NoError(t, svc.GrantRolePolicy("catalog", "/admin/products", "POST"))

	require.NoError(t, svc.SetAdminRoles(2, []string{"ops"}))
	roles, err := svc.GetAdminRoles(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:ops"}, roles)

	require.NoError(t, svc.SetAdminRoles(2, []string{"catalog"}))
	roles, err = svc.GetAdminRoles(2)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:catalog"}, roles)

	allow, err := svc.EnforceAdmin(2, "/admin/orders", "GET")
	require.NoError(t, err)
	assert.False(t, allow, "old role permission should be removed")

	allow, err = svc.EnforceAdmin(2, "/admin/products", "POST")
	require.NoError(t, err)
	assert.True(t, allow)
}

func TestSetAdminRolesRejectsUnknownRole(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.BootstrapBuiltinRoles())
	require.NoError(t, svc.SetAdminRoles(4, []string{RoleOperations}))

	err := svc.SetAdminRoles(4, []string{RoleReadonlyAuditor, "ghost"})
	require.ErrorIs(t, err, ErrUnknownRole)
	require.ErrorIs(t, svc.SetAdminRoles(4, []string{"__anchor__"}), ErrReservedRole)
	require.ErrorIs(t, svc.SetAdminRoles(0, nil), ErrAdminRequired)

	// 失败时不清空原有角色
	roles, err := svc.GetAdminRoles(4)
	require.NoError(t, err)
	assert.Equal(t, []string{"role:operations"}, roles)
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/admin/coupons/:id", want: "/admin/coupons/:id"},
		{in: "/admin/coupons/:id", want: "/admin/coupons/:id"},
		{in: "admin/orders", want: "/admin/orders"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		assert.Equal(t, item.want, NormalizeObject(item.in), "in=%q", item.in)
	}
}

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole(" readonly auditor ")
	require.NoError(t, err)
	assert.Equal(t, "role:readonly_auditor", role)

	_, err = NormalizeRole("role:")
	require.ErrorIs(t, err, ErrRoleRequired)
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	require.NoError(t, svc.BootstrapBuiltinRoles())
	// 重复执行幂等
	require.NoError(t, svc.BootstrapBuiltinRoles())

	roles, err := svc.ListRoles()
	require.NoError(t, err)
	assert.Equal(t, []string{"role:operations", "role:readonly_auditor"}, roles)

	require.NoError(t, svc.SetAdminRoles(3, []string{RoleOperations}))
	require.NoError(t, svc.SetAdminRoles(5, []string{RoleReadonlyAuditor}))

	cases := []struct {
		adminID uint
		object  string
		action  string
		want    bool
	}{
		{3, "/admin/coupons/:id/usages", "GET", true},
		{3, "/admin/coupons", "POST", true},
		{3, "/admin/coupons/:id", "DELETE", true},
		{3, "/admin/orders/:order_no/paid", "POST", true},
		{3, "/admin/admins/:id/roles", "PUT", false},
		{5, "/admin/orders", "GET", true},
		{5, "/admin/coupons", "POST", false},
		{5, "/admin/orders/:order_no/paid", "POST", false},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceAdmin(tc.adminID, tc.object, tc.action)
		require.NoError(t, err)
		assert.Equal(t, tc.want, allow, "admin=%d %s %s", tc.adminID, tc.action, tc.object)
	}
}
