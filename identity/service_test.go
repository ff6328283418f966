package identity

import (
	"path/filepath"
	"testing"

	"ontheway-api/config"
	"ontheway-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := config.Open(filepath.Join(t.TempDir(), "identity.db"))
	require.NoError(t, err)
	return NewService(db)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)

	user, err := svc.Register(RegisterParams{Uname: "Ana", Email: "ana@x.com", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Uname)
	assert.Equal(t, models.AdminNo, user.AdminFlag)
	assert.NotEqual(t, "1234", user.PasswordHash)

	logged, err := svc.Login("ana@x.com", "1234")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.Equal(t, models.AdminNo, logged.AdminFlag)

	_, err = svc.Login("ana@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("missing@x.com", "1234")
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(RegisterParams{Uname: "Ana", Email: "ana@x.com", Password: "1234"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterParams{Uname: "Other", Email: "ana@x.com", Password: "5678"})
	require.ErrorIs(t, err, ErrEmailTaken)

	_, err = svc.Register(RegisterParams{Uname: "", Email: "b@x.com", Password: "1234"})
	require.ErrorIs(t, err, ErrValidation)
}

func TestUpdateProfile(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(RegisterParams{Uname: "Ana", Email: "ana@x.com", Password: "1234"})
	require.NoError(t, err)
	_, err = svc.Register(RegisterParams{Uname: "Bob", Email: "bob@x.com", Password: "1234"})
	require.NoError(t, err)

	name := "Ana Maria"
	phone := "99887766"
	user, err := svc.UpdateProfile(ProfileUpdate{CurrentEmail: "ana@x.com", Uname: &name, Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", user.Uname)
	assert.Equal(t, "99887766", user.Phone)
	assert.Equal(t, "ana@x.com", user.Email)

	taken := "bob@x.com"
	_, err = svc.UpdateProfile(ProfileUpdate{CurrentEmail: "ana@x.com", Email: &taken})
	require.ErrorIs(t, err, ErrEmailTaken)

	fresh := "ana.maria@x.com"
	user, err = svc.UpdateProfile(ProfileUpdate{CurrentEmail: "ana@x.com", Email: &fresh})
	require.NoError(t, err)
	assert.Equal(t, fresh, user.Email)

	_, err = svc.UpdateProfile(ProfileUpdate{CurrentEmail: ""})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateProfile(ProfileUpdate{CurrentEmail: "ghost@x.com", Uname: &name})
	require.ErrorIs(t, err, ErrUserNotFound)
}

func TestChangePassword(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Register(RegisterParams{Uname: "Ana", Email: "ana@x.com", Password: "1234"})
	require.NoError(t, err)

	require.ErrorIs(t, svc.ChangePassword("ana@x.com", "wrong", "abcd"), ErrWrongPassword)
	require.ErrorIs(t, svc.ChangePassword("ana@x.com", "", "abcd"), ErrValidation)
	require.ErrorIs(t, svc.ChangePassword("ghost@x.com", "1234", "abcd"), ErrUserNotFound)

	require.NoError(t, svc.ChangePassword("ana@x.com", "1234", "abcd"))

	_, err = svc.Login("ana@x.com", "1234")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login("ana@x.com", "abcd")
	require.NoError(t, err)
}
