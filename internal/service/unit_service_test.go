package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j1progress/progress-api/internal/models"
	appErrors "github.com/j1progress/progress-api/pkg/errors"
)

type fakeUnitStore struct {
	units   map[string]models.Unit
	deleted []string
}

func newFakeUnitStore() *fakeUnitStore {
	return &fakeUnitStore{units: map[string]models.Unit{}}
}

func (f *fakeUnitStore) ListUnits(context.Context) ([]models.Unit, error) {
	out := []models.Unit{}
	for _, u := range f.units {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUnitStore) GetUnit(_ context.Context, id string) (*models.Unit, error) {
	u, ok := f.units[id]
	if !ok {
		return nil, appErrors.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUnitStore) SaveUnit(_ context.Context, unit *models.Unit) error {
	f.units[unit.ID] = *unit
	return nil
}

func (f *fakeUnitStore) DeleteUnit(_ context.Context, id string) error {
	delete(f.units, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func TestUnitCreate(t *testing.T) {
	store := newFakeUnitStore()
	svc := NewUnitService(store, nil, nil, nil)

	unit, err := svc.Create(context.Background(), UnitInput{
		Name: " กองนโยบายและแผน ", ShortName: "กนผ.", Username: "planning", Password: "secret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, unit.ID)
	assert.Equal(t, "กองนโยบายและแผน", unit.Name, "input is trimmed")
	assert.Empty(t, unit.Password, "credential not echoed back")

	stored := store.units[unit.ID]
	assert.Equal(t, "secret", stored.Password, "credential persisted")
}

func TestUnitCreateRejectsBlankName(t *testing.T) {
	svc := NewUnitService(newFakeUnitStore(), nil, nil, nil)

	_, err := svc.Create(context.Background(), UnitInput{Name: "   ", ShortName: "ก."})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUnitUpdateKeepsPasswordWhenBlank(t *testing.T) {
	store := newFakeUnitStore()
	store.units["u1"] = models.Unit{ID: "u1", Name: "old", ShortName: "o.", Password: "keepme"}
	svc := NewUnitService(store, nil, nil, nil)

	_, err := svc.Update(context.Background(), "u1", UnitInput{Name: "new", ShortName: "n."})
	require.NoError(t, err)
	assert.Equal(t, "keepme", store.units["u1"].Password)
	assert.Equal(t, "new", store.units["u1"].Name)
}

func TestUnitUpdateMissing(t *testing.T) {
	svc := NewUnitService(newFakeUnitStore(), nil, nil, nil)

	_, err := svc.Update(context.Background(), "ghost", UnitInput{Name: "n", ShortName: "n."})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestUnitListStripsPasswords(t *testing.T) {
	store := newFakeUnitStore()
	store.units["u1"] = models.Unit{ID: "u1", Name: "n", ShortName: "n.", Password: "secret"}
	svc := NewUnitService(store, nil, nil, nil)

	units, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Empty(t, units[0].Password)
}

func TestUnitDelete(t *testing.T) {
	store := newFakeUnitStore()
	store.units["u1"] = models.Unit{ID: "u1", Name: "n", ShortName: "n."}
	svc := NewUnitService(store, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "u1"))
	assert.Equal(t, []string{"u1"}, store.deleted)

	err := svc.Delete(context.Background(), "u1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
