package errs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermissionDeniedCarriesReason(t *testing.T) {
	err := PermissionDenied("role viewer lacks invite-members")

	var pd *PermissionDeniedError
	require.True(t, errors.As(err, &pd))
	assert.Equal(t, "role viewer lacks invite-members", pd.Reason)
	assert.Contains(t, err.Error(), "role viewer lacks invite-members")
}

func TestPersistenceWrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Persistence("create invitations", cause)

	require.True(t, IsPersistence(err))
	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "create invitations")
}

func TestPersistenceNilPassthrough(t *testing.T) {
	assert.NoError(t, Persistence("noop", nil))
}

func TestInvalidEmailMessage(t *testing.T) {
	err := InvalidEmail("not-an-email")
	assert.Contains(t, err.Error(), "not-an-email")

	var ie *InvalidEmailError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "not-an-email", ie.Email)
}
