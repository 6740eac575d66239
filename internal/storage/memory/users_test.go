package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/gesture-speak/internal/models"
	"github.com/magabrotheeeer/gesture-speak/internal/storage"
)

func (d *Directory) byID(ctx context.Context, id string) (*models.User, error) {
	return d.find(ctx, "test", func(u models.User) bool { return u.ID == id })
}

func TestDirectory_RegisterAndFind(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory(models.User{ID: "1", Email: "demo@example.com"})

	id, err := d.RegisterUser(ctx, models.User{ID: "2", Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "2", id)
	assert.Equal(t, 2, d.Len())

	u, err := d.GetUserByEmail(ctx, "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, "2", u.ID)

	u, err = d.byID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", u.Email)

	_, err = d.byID(ctx, "missing")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
	_, err = d.GetUserByEmail(ctx, "nope@x.com")
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestDirectory_DuplicateEmailFirstWins(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory()

	_, err := d.RegisterUser(ctx, models.User{ID: "a", Email: "same@x.com"})
	require.NoError(t, err)
	_, err = d.RegisterUser(ctx, models.User{ID: "b", Email: "same@x.com"})
	require.NoError(t, err)

	u, err := d.GetUserByEmail(ctx, "same@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a", u.ID)
	assert.Equal(t, 2, d.Len())
}

func TestDirectory_UpdatePremium(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory(models.User{ID: "1", Email: "a@b.c"})
	expiry := time.Now().Add(time.Hour)

	u, err := d.UpdatePremium(ctx, "1", expiry)
	require.NoError(t, err)
	assert.True(t, u.IsPremium)
	assert.True(t, expiry.Equal(*u.PremiumExpiry))

	stored, err := d.byID(ctx, "1")
	require.NoError(t, err)
	assert.True(t, stored.IsPremium)

	_, err = d.UpdatePremium(ctx, "missing", expiry)
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestDirectory_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	d := NewDirectory(models.User{ID: "1", Email: "a@b.c"})

	u, err := d.byID(ctx, "1")
	require.NoError(t, err)
	u.Email = "changed"

	again, err := d.byID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "a@b.c", again.Email)
}

func TestDirectory_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d := NewDirectory()

	_, err := d.RegisterUser(ctx, models.User{ID: "1"})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, d.Len())
}
