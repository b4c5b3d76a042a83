package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRole(t *testing.T) {
	tests := []struct {
		email string
		phone string
		want  Role
	}{
		{"admin@nearzy.com", "", RoleAdmin},
		{"Admin@nearzy.com", "", RoleCustomer},
		{"admin@nearzy.com.evil", "", RoleCustomer},
		{"freshshop@mail.com", "", RoleShopkeeper},
		{"owner@myshop.in", "", RoleShopkeeper},
		{"a@b.com", "", RoleCustomer},
		{"", "+919876543210", RoleCustomer},
		{"", "", RoleCustomer},
	}

	for _, tt := range tests {
		t.Run(tt.email+tt.phone, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRole(tt.email, tt.phone))
		})
	}
}

func TestNewUser(t *testing.T) {
	u := NewUser(Identity{UID: "uid-1", Email: "shop@nearzy.com"})
	assert.Equal(t, "uid-1", u.ID)
	assert.Equal(t, "User", u.Name)
	assert.Equal(t, RoleShopkeeper, u.Role)

	named := NewUser(Identity{UID: "uid-2", Phone: "+919876543210", DisplayName: "Asha"})
	assert.Equal(t, "Asha", named.Name)
	assert.Equal(t, RoleCustomer, named.Role)
}

func TestValidation(t *testing.T) {
	email, err := ValidateEmail("  asha@nearzy.com ")
	require.NoError(t, err)
	assert.Equal(t, "asha@nearzy.com", email)

	_, err = ValidateEmail("asha")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	phone, err := NormalizePhone("98765 43210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", phone)

	phone, err = NormalizePhone("+919876543210")
	require.NoError(t, err)
	assert.Equal(t, "+919876543210", phone)

	for _, bad := range []string{"12345", "98765432101", "98765abcde", ""} {
		_, err = NormalizePhone(bad)
		assert.ErrorIs(t, err, ErrInvalidPhone, bad)
	}

	assert.NoError(t, ValidateOTP("123456"))
	assert.ErrorIs(t, ValidateOTP("12345"), ErrInvalidOTP)
	assert.ErrorIs(t, ValidateOTP("12345a"), ErrInvalidOTP)

	ierr := &IdentityError{Status: 400, Message: "EMAIL_NOT_FOUND"}
	assert.Equal(t, "identity provider: EMAIL_NOT_FOUND", ierr.Error())
}
