package pay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignatureRoundTrip(t *testing.T) {
	sig := Signature("order_abc123", "pay_xyz789", "topsecret")
	assert.True(t, VerifySignature("order_abc123", "pay_xyz789", sig, "topsecret"))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	sig := Signature("order_abc123", "pay_xyz789", "topsecret")

	assert.False(t, VerifySignature("order_abc124", "pay_xyz789", sig, "topsecret"))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz780", sig, "topsecret"))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz789", sig, "othersecret"))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz789", sig[:len(sig)-1]+"0", "topsecret"))
}

func TestVerifySignatureRejectsEmptyInputs(t *testing.T) {
	sig := Signature("order_abc123", "pay_xyz789", "topsecret")

	assert.False(t, VerifySignature("", "pay_xyz789", sig, "topsecret"))
	assert.False(t, VerifySignature("order_abc123", "", sig, "topsecret"))
	assert.False(t, VerifySignature("order_abc123", "pay_xyz789", "", "topsecret"))
}

func TestSignatureIsDeterministicHex(t *testing.T) {
	a := Signature("order_1", "pay_1", "k")
	b := Signature("order_1", "pay_1", "k")
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)
	assert.Equal(t, strings.ToLower(a), a)
}

func TestSignatureSeparatesFields(t *testing.T) {
	// "ab|c" and "a|bc" must not collide through concatenation.
	assert.NotEqual(t, Signature("ab", "c", "k"), Signature("a", "bc", "k"))
}

func TestCreateIntent(t *testing.T) {
	intent, err := CreateIntent(2500, "INR", map[string]string{"orderid": "o1"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(intent.GatewayOrderID, "order_"))
	assert.Equal(t, int64(2500), intent.Amount)
	assert.Equal(t, "INR", intent.Currency)
	assert.NotEmpty(t, intent.KeyID)
	assert.Equal(t, "o1", intent.Notes["orderid"])
}
