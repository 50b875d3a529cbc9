package users_test

import (
	"encoding/json"
	"testing"

	"github.com/jrsteele09/go-ukci-client/tenants"
	"github.com/jrsteele09/go-ukci-client/users"
	"github.com/stretchr/testify/require"
)

func TestID_UnmarshalJSON(t *testing.T) {
	t.Run("number", func(t *testing.T) {
		var u users.User
		require.NoError(t, json.Unmarshal([]byte(`{"id":1,"email":"a@b.com"}`), &u))
		require.Equal(t, users.ID("1"), u.ID)
	})

	t.Run("string", func(t *testing.T) {
		var u users.User
		require.NoError(t, json.Unmarshal([]byte(`{"id":"u-7"}`), &u))
		require.Equal(t, users.ID("u-7"), u.ID)
	})

	t.Run("object is rejected", func(t *testing.T) {
		var u users.User
		require.Error(t, json.Unmarshal([]byte(`{"id":{"x":1}}`), &u))
	})
}

func TestUser_WithTenant(t *testing.T) {
	u := users.User{ID: "1", Email: "a@b.com"}
	merged := u.WithTenant(&tenants.Tenant{ID: "t1", SubscriptionTier: tenants.TierEnterprise})

	require.Nil(t, u.Tenant)
	require.Equal(t, "t1", merged.TenantID)
	require.Equal(t, tenants.TierEnterprise, merged.Tenant.SubscriptionTier)
	require.Equal(t, 0, merged.Tenant.MonitoringLimit())

	data, err := json.Marshal(merged)
	require.NoError(t, err)
	require.Contains(t, string(data), `"subscription_tier":"enterprise"`)
	require.NotContains(t, string(data), "PasswordHash")
}

func TestUser_IsZero(t *testing.T) {
	var nilUser *users.User
	require.True(t, nilUser.IsZero())
	require.True(t, (&users.User{}).IsZero())
	require.False(t, (&users.User{ID: "1"}).IsZero())
}

func TestValidatePasswordStrength(t *testing.T) {
	require.NoError(t, users.ValidatePasswordStrength("Password123"))
	require.ErrorContains(t, users.ValidatePasswordStrength("short1A"), "at least 8")
	require.ErrorContains(t, users.ValidatePasswordStrength("password123"), "uppercase")
	require.ErrorContains(t, users.ValidatePasswordStrength("PASSWORD123"), "lowercase")
	require.ErrorContains(t, users.ValidatePasswordStrength("Passwordxyz"), "number")
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("Password123")
	require.NoError(t, err)
	require.True(t, users.CheckPasswordHash("Password123", hash))
	require.False(t, users.CheckPasswordHash("wrong", hash))
}
