package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// cheap parameters keep the suite fast
var testParams = Params{Memory: 1024, Time: 1, Threads: 1, SaltLen: 16, KeyLen: 32}

func TestHash_VerifyRoundTrip(t *testing.T) {
	h, err := HashWithParams("admin123", testParams)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(h, "$argon2id$v=19$m=1024,t=1,p=1$"))

	ok, err := Verify("admin123", h)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("admin1234", h)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHash_Salted(t *testing.T) {
	a, err := HashWithParams("same", testParams)
	require.NoError(t, err)
	b, err := HashWithParams("same", testParams)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_DefaultParams(t *testing.T) {
	h, err := Hash("pw")
	require.NoError(t, err)
	assert.Contains(t, h, "m=65536,t=3,p=2")
}

func TestVerify_Bcrypt(t *testing.T) {
	b, err := bcrypt.GenerateFromPassword([]byte("legacy"), bcrypt.MinCost)
	require.NoError(t, err)

	ok, err := Verify("legacy", string(b))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = Verify("nope", string(b))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerify_Malformed(t *testing.T) {
	for _, h := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=1024,t=1,p=1$onlysalt",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$garbage$c2FsdA$a2V5",
		"$argon2id$v=19$m=1024,t=1,p=1$!!!$a2V5",
	} {
		ok, err := Verify("x", h)
		assert.False(t, ok, h)
		assert.ErrorIs(t, err, ErrMalformedHash, h)
	}
}
