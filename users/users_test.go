package users_test

import (
	"testing"

	"github.com/jrsteele09/go-summary-client/users"
	fakeuserrepo "github.com/jrsteele09/go-summary-client/users/repofake"
	"github.com/stretchr/testify/require"
)

func TestSplitFullName(t *testing.T) {
	tests := []struct {
		in, first, last string
	}{
		{"Ada Lovelace", "Ada", "Lovelace"},
		{"  Jean  Claude Van Damme ", "Jean", "Claude Van Damme"},
		{"Prince", "Prince", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		first, last := users.SplitFullName(tt.in)
		require.Equal(t, tt.first, first, tt.in)
		require.Equal(t, tt.last, last, tt.in)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := users.HashPassword("secret")
	require.NoError(t, err)

	u := &users.User{PasswordHash: hash}
	require.True(t, u.CheckPassword("secret"))
	require.False(t, u.CheckPassword("Secret"))
}

func TestFakeUserRepo(t *testing.T) {
	repo := fakeuserrepo.NewFakeUserRepo()

	first := &users.User{Email: "One@Example.com", FirstName: "One"}
	require.NoError(t, repo.Create(first))
	require.Equal(t, int64(1), first.ID)
	require.False(t, first.DateJoined.IsZero())

	second := &users.User{Email: "two@example.com"}
	require.NoError(t, repo.Create(second))
	require.Equal(t, int64(2), second.ID)

	t.Run("email lookup ignores case", func(t *testing.T) {
		u, err := repo.GetByEmail("one@example.com")
		require.NoError(t, err)
		require.Equal(t, "One", u.FirstName)
	})

	t.Run("duplicate email", func(t *testing.T) {
		err := repo.Create(&users.User{Email: "ONE@example.com"})
		require.ErrorIs(t, err, users.ErrUserExists)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(99)
		require.ErrorIs(t, err, users.ErrUserNotFound)
		_, err = repo.GetByEmail("nobody@example.com")
		require.ErrorIs(t, err, users.ErrUserNotFound)
	})
}
