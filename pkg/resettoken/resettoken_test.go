package resettoken

import (
	"testing"
	"time"

	"clinic-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(expiry time.Duration) config.ResetConfig {
	return config.ResetConfig{
		Secret: "test-secret-key",
		Expiry: expiry,
	}
}

func TestGenerateAndValidate(t *testing.T) {
	svc := NewService(testConfig(time.Hour))
	userID := uuid.New()

	token, err := svc.Generate(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}

func TestValidate_ExpiredToken(t *testing.T) {
	svc := NewService(testConfig(-time.Minute))

	token, err := svc.Generate(uuid.New())
	require.NoError(t, err)

	_, err = svc.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewService(testConfig(time.Hour)).Generate(uuid.New())
	require.NoError(t, err)

	other := NewService(config.ResetConfig{Secret: "another-secret", Expiry: time.Hour})
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewService(testConfig(time.Hour))

	_, err := svc.Validate("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUIDCodec_RoundTrip(t *testing.T) {
	userID := uuid.New()

	encoded := EncodeUID(userID)
	assert.NotContains(t, encoded, "=")

	decoded, err := DecodeUID(encoded)
	require.NoError(t, err)
	assert.Equal(t, userID, decoded)
}

func TestDecodeUID_Invalid(t *testing.T) {
	_, err := DecodeUID("!!not-base64!!")
	assert.ErrorIs(t, err, ErrInvalidUID)

	// Valid base64 of the wrong length is still not a uid.
	_, err = DecodeUID("aGVsbG8")
	assert.ErrorIs(t, err, ErrInvalidUID)
}
