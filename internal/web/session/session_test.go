package session

import (
	"testing"
	"time"

	"github.com/gofiber/storage/memory/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSessionID(t *testing.T) {
	a, err := GenerateSessionID()
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := GenerateSessionID()
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSignAndVerifyCookie(t *testing.T) {
	const secret = "test-secret"

	id, err := GenerateSessionID()
	require.NoError(t, err)

	value := SignCookie(id, secret)

	got, ok := VerifyCookie(value, secret)
	require.True(t, ok)
	assert.Equal(t, id, got)

	// tampered ID
	_, ok = VerifyCookie("deadbeef"+value[8:], secret)
	assert.False(t, ok)

	// wrong secret
	_, ok = VerifyCookie(value, "anderes-geheimnis")
	assert.False(t, ok)

	// no signature at all
	_, ok = VerifyCookie(id, secret)
	assert.False(t, ok)

	_, ok = VerifyCookie("", secret)
	assert.False(t, ok)
}

func TestDataRoundTrip(t *testing.T) {
	Init(memory.New())

	id, err := GenerateSessionID()
	require.NoError(t, err)

	in := &Data{AdminID: 1, Username: "admin"}
	require.NoError(t, in.Write(id, time.Minute))

	var out Data
	require.NoError(t, out.Read(id))
	assert.Equal(t, *in, out)

	require.NoError(t, Destroy(id))

	// a destroyed session no longer yields valid data
	var gone Data
	_ = gone.Read(id)
	assert.Zero(t, gone.AdminID)
}
