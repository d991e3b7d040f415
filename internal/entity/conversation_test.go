package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConversationKey(t *testing.T) {
	assert.Equal(t, "cust_c1__admin", ConversationKey("c1"))
	assert.Equal(t, ConversationKey("c1"), ConversationKey("c1"))

	seen := map[string]string{}
	for _, id := range []string{"c1", "c2", "c10", "c1_", "_c1", "665f1e0a9b3c"} {
		key := ConversationKey(id)
		if other, dup := seen[key]; dup {
			t.Fatalf("%q and %q share key %q", id, other, key)
		}
		seen[key] = id
	}
}

func TestCustomerIdFromKey(t *testing.T) {
	tests := []struct {
		key    string
		want   string
		wantOk bool
	}{
		{"cust_c1__admin", "c1", true},
		{ConversationKey("a__b"), "a__b", true},
		{"cust___admin", "", false},
		{"user_c1", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := CustomerIdFromKey(tt.key)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenClaimsRoles(t *testing.T) {
	var none *TokenClaims
	assert.False(t, none.IsAdmin())
	assert.False(t, none.IsCustomer())

	assert.True(t, (&TokenClaims{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&TokenClaims{Role: RoleCustomer}).IsCustomer())
}
