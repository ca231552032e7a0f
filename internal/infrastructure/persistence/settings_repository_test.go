package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/repairdesk/backend/internal/domain/settings"
	"github.com/repairdesk/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTechnician(t *testing.T, name, email string, experience int, specs ...settings.Specialization) *settings.Technician {
	t.Helper()
	if len(specs) == 0 {
		specs = []settings.Specialization{settings.SpecLEDTV}
	}
	tech, err := settings.NewTechnician(settings.TechnicianDetails{
		Name:           name,
		Email:          email,
		Phone:          "0771234567",
		Specialization: specs,
		Experience:     experience,
	})
	require.NoError(t, err)
	return tech
}

func technicianNames(techs []settings.Technician) []string {
	out := make([]string, len(techs))
	for i := range techs {
		out[i] = techs[i].Name
	}
	return out
}

func TestTechnicianRepository_CRUD(t *testing.T) {
	repo := NewGormTechnicianRepository(newTestDB(t))
	ctx := context.Background()
	tech := newTestTechnician(t, "Nimal", "nimal@shop.lk", 8, settings.SpecLEDTV, settings.SpecPowerSupply)
	require.NoError(t, repo.Create(ctx, tech))

	got, err := repo.FindByID(ctx, tech.ID)
	require.NoError(t, err)
	assert.Equal(t, []settings.Specialization{settings.SpecLEDTV, settings.SpecPowerSupply}, got.Specialization)
	assert.True(t, got.IsActive)

	err = repo.Create(ctx, newTestTechnician(t, "Other", "NIMAL@shop.lk", 1))
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	got.Deactivate()
	require.NoError(t, repo.Save(ctx, got))
	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	require.NoError(t, repo.Delete(ctx, tech.ID))
	assert.ErrorIs(t, repo.Delete(ctx, tech.ID), shared.ErrNotFound)
}

func TestTechnicianRepository_Queries(t *testing.T) {
	repo := NewGormTechnicianRepository(newTestDB(t))
	ctx := context.Background()
	junior := newTestTechnician(t, "Kasun", "kasun@shop.lk", 2, settings.SpecLEDTV)
	senior := newTestTechnician(t, "Ruwan", "ruwan@shop.lk", 15, settings.SpecLEDTV, settings.SpecMotherboards)
	audio := newTestTechnician(t, "Amali", "amali@shop.lk", 6, settings.SpecAudioSystems)
	for _, tech := range []*settings.Technician{junior, senior, audio} {
		require.NoError(t, repo.Create(ctx, tech))
	}

	led, err := repo.FindBySpecialization(ctx, settings.SpecLEDTV)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ruwan", "Kasun"}, technicianNames(led))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Amali", "Kasun", "Ruwan"}, technicianNames(active))

	some, err := repo.FindByIDs(ctx, []uuid.UUID{audio.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, []string{"Amali"}, technicianNames(some))

	none, err := repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestReferenceRepository(t *testing.T) {
	repo := NewGormReferenceRepository(newTestDB(t))
	ctx := context.Background()

	sony, err := settings.NewReference(settings.KindBrand, "Sony", "")
	require.NoError(t, err)
	lg, err := settings.NewReference(settings.KindBrand, "LG", "Korean maker")
	require.NoError(t, err)
	noPower, err := settings.NewReference(settings.KindProblemCategory, "No power", "Set is dead")
	require.NoError(t, err)
	for _, ref := range []*settings.Reference{sony, lg, noPower} {
		require.NoError(t, repo.Create(ctx, ref))
	}

	brands, err := repo.List(ctx, settings.KindBrand)
	require.NoError(t, err)
	require.Len(t, brands, 2)
	assert.Equal(t, "LG", brands[0].Name)
	assert.Equal(t, settings.KindBrand, brands[0].Kind)

	count, err := repo.Count(ctx, settings.KindProblemCategory)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	dup, err := settings.NewReference(settings.KindBrand, "SONY", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Create(ctx, dup), shared.ErrAlreadyExists)

	exists, err := repo.ExistsByNameKey(ctx, settings.KindBrand, settings.FoldName("sony"), uuid.Nil)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = repo.ExistsByNameKey(ctx, settings.KindBrand, settings.FoldName("sony"), sony.ID)
	require.NoError(t, err)
	assert.False(t, exists, "the entry itself is excluded")
	exists, err = repo.ExistsByNameKey(ctx, settings.KindProblemCategory, settings.FoldName("sony"), uuid.Nil)
	require.NoError(t, err)
	assert.False(t, exists, "kinds are separate lists")

	require.NoError(t, sony.Update("Sony Bravia", "TV line"))
	require.NoError(t, repo.Save(ctx, sony))
	got, err := repo.FindByID(ctx, settings.KindBrand, sony.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sony Bravia", got.Name)
	assert.Equal(t, "TV line", got.Description)

	_, err = repo.FindByID(ctx, settings.KindProblemCategory, sony.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	missing, err := settings.NewReference(settings.KindBrand, "Philips", "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Save(ctx, missing), shared.ErrNotFound)

	require.NoError(t, repo.Delete(ctx, settings.KindBrand, lg.ID))
	assert.ErrorIs(t, repo.Delete(ctx, settings.KindBrand, lg.ID), shared.ErrNotFound)
}
