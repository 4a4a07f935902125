package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/localhire/internal/models"
	"github.com/ignatzorin/localhire/internal/pkg/apperror"
)

func TestNewDefaultStore(t *testing.T) {
	store, err := NewDefaultStore()
	require.NoError(t, err)

	assert.Len(t, store.Jobs(), 5)
	assert.Len(t, store.Artisans(), 5)
	assert.Len(t, store.Products(), 5)
	assert.Len(t, store.Options().Categories, 3)
	assert.Len(t, store.Options().Locations, 4)
}

func TestRecordID_Stable(t *testing.T) {
	a := RecordID(models.KindArtisan, "Amaka Nwosu")
	b := RecordID(models.KindArtisan, "  amaka nwosu ")
	c := RecordID(models.KindJob, "Amaka Nwosu")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, uuid.Version(5), a.Version())
}

func TestNewStore_DuplicateID(t *testing.T) {
	id := uuid.New()
	_, err := NewStore(nil, []models.Artisan{
		{ID: id, Name: "Ikenna Kenneth"},
		{ID: id, Name: "Amaka Nwosu"},
	}, nil, Options{})

	assert.ErrorIs(t, err, ErrDuplicateID)
}

func TestNewStore_MissingID(t *testing.T) {
	_, err := NewStore([]models.Job{{Title: "Fashion Designer"}}, nil, nil, Options{})
	assert.Error(t, err)
}

func TestNewStore_DuplicateTitleAllowed(t *testing.T) {
	store, err := NewStore(nil, nil, []models.Product{
		{ID: uuid.New(), Title: "Handmade Dress"},
		{ID: uuid.New(), Title: "handmade dress"},
	}, Options{})

	require.NoError(t, err)
	assert.Len(t, store.Products(), 2)
}

func TestStore_ByID(t *testing.T) {
	store, err := NewDefaultStore()
	require.NoError(t, err)

	artisan := store.Artisans()[1]
	got, err := store.ArtisanByID(artisan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Susana Elijah Archibong", got.Name)

	_, err = store.JobByID(uuid.New())
	assert.ErrorIs(t, err, apperror.ErrJobNotFound)
	_, err = store.ProductByID(uuid.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestStore_ReturnsCopies(t *testing.T) {
	store, err := NewDefaultStore()
	require.NoError(t, err)

	artisans := store.Artisans()
	artisans[0].Name = "changed"
	artisans[0].Skills[0] = "changed"
	*artisans[0].Image = "changed"

	fresh := store.Artisans()
	assert.Equal(t, "Ikenna Kenneth", fresh[0].Name)
	assert.NotEqual(t, "changed", fresh[0].Skills[0])
	assert.NotEqual(t, "changed", *fresh[0].Image)
}
