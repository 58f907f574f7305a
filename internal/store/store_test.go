package store

import (
	"context"
	"path/filepath"
	"testing"

	"mergington-activities/config"
	"mergington-activities/internal/global/database"
	"mergington-activities/internal/model"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	cfg := config.Default()
	cfg.Mode = config.ModeRelease
	cfg.Database.Path = filepath.Join(t.TempDir(), "app.db")

	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	s := New(db)
	require.NoError(t, s.Init(context.Background()))
	return s
}

func TestInitIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Init(context.Background()))
	require.NoError(t, s.Init(context.Background()))
}

func TestSeedIfEmpty(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.True(t, seeded)

	for i := 0; i < 3; i++ {
		seeded, err = s.SeedIfEmpty(ctx)
		require.NoError(t, err)
		require.False(t, seeded)
	}

	activities, err := s.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 9)
	require.Equal(t, "Chess Club", activities[0].Name)
	require.Equal(t, 12, activities[0].MaxParticipants)
	require.Equal(t, "Fridays, 3:30 PM - 5:00 PM", activities[0].Schedule)
}

func TestSeedIfEmptySkipsNonEmptyStore(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Robotics"}))

	seeded, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)
	require.False(t, seeded)

	activities, err := s.ListActivities(ctx)
	require.NoError(t, err)
	require.Len(t, activities, 1)
}

func TestFindActivity(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.SeedIfEmpty(ctx)
	require.NoError(t, err)

	a, err := s.FindActivity(ctx, "Math Club")
	require.NoError(t, err)
	require.Equal(t, 10, a.MaxParticipants)
	require.Empty(t, a.Participants)

	_, err = s.FindActivity(ctx, "math club")
	require.ErrorIs(t, err, ErrActivityNotFound)
	_, err = s.FindActivity(ctx, "Underwater Basket Weaving")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestAddAndRemoveParticipant(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Chess Club", MaxParticipants: 2}))

	a, err := s.FindActivity(ctx, "Chess Club")
	require.NoError(t, err)

	for _, email := range []string{"zoe@mergington.edu", "adam@mergington.edu", "mia@mergington.edu"} {
		_, err := s.AddParticipant(ctx, a, email)
		require.NoError(t, err)
	}
	require.Len(t, a.Participants, 3)

	reloaded, err := s.FindActivity(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"zoe@mergington.edu", "adam@mergington.edu", "mia@mergington.edu"}, reloaded.Emails())

	count, err := s.CountParticipants(ctx, reloaded)
	require.NoError(t, err)
	require.EqualValues(t, 3, count)

	require.NoError(t, s.RemoveParticipant(ctx, reloaded, "adam@mergington.edu"))
	require.Equal(t, []string{"zoe@mergington.edu", "mia@mergington.edu"}, reloaded.Emails())
	require.ErrorIs(t, s.RemoveParticipant(ctx, reloaded, "adam@mergington.edu"), ErrParticipantNotFound)

	reloaded, err = s.FindActivity(ctx, "Chess Club")
	require.NoError(t, err)
	require.Equal(t, []string{"zoe@mergington.edu", "mia@mergington.edu"}, reloaded.Emails())
}

func TestAddParticipantDuplicateBackstop(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Art Club"}))
	a, err := s.FindActivity(ctx, "Art Club")
	require.NoError(t, err)

	_, err = s.AddParticipant(ctx, a, "amy@mergington.edu")
	require.NoError(t, err)
	_, err = s.AddParticipant(ctx, a, "amy@mergington.edu")
	require.ErrorIs(t, err, ErrParticipantExists)

	count, err := s.CountParticipants(ctx, a)
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestCreateActivityDuplicateName(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Drama Club"}))
	require.ErrorIs(t, s.CreateActivity(ctx, &model.Activity{Name: "Drama Club"}), ErrActivityExists)
}

func TestDeleteActivityRemovesParticipants(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Soccer Team"}))
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Gym Class"}))

	soccer, err := s.FindActivity(ctx, "Soccer Team")
	require.NoError(t, err)
	gym, err := s.FindActivity(ctx, "Gym Class")
	require.NoError(t, err)
	for _, email := range []string{"a@mergington.edu", "b@mergington.edu"} {
		_, err = s.AddParticipant(ctx, soccer, email)
		require.NoError(t, err)
	}
	_, err = s.AddParticipant(ctx, gym, "a@mergington.edu")
	require.NoError(t, err)

	removed, err := s.DeleteActivity(ctx, "Soccer Team")
	require.NoError(t, err)
	require.EqualValues(t, 2, removed)

	_, err = s.FindActivity(ctx, "Soccer Team")
	require.ErrorIs(t, err, ErrActivityNotFound)

	var orphans int64
	require.NoError(t, s.db.Model(&model.Participant{}).Where("activity_id = ?", soccer.ID).Count(&orphans).Error)
	require.Zero(t, orphans)

	gym, err = s.FindActivity(ctx, "Gym Class")
	require.NoError(t, err)
	require.Equal(t, []string{"a@mergington.edu"}, gym.Emails())

	_, err = s.DeleteActivity(ctx, "Soccer Team")
	require.ErrorIs(t, err, ErrActivityNotFound)
}

func TestTransactionRollsBack(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.CreateActivity(ctx, &model.Activity{Name: "Debate Team"}))

	sentinel := ErrParticipantExists
	err := s.Transaction(ctx, func(tx *Store) error {
		a, err := tx.FindActivity(ctx, "Debate Team")
		if err != nil {
			return err
		}
		if _, err := tx.AddParticipant(ctx, a, "ghost@mergington.edu"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	a, err := s.FindActivity(ctx, "Debate Team")
	require.NoError(t, err)
	require.Empty(t, a.Participants)
}

func TestIsDuplicate(t *testing.T) {
	require.False(t, IsDuplicate(nil))
	require.False(t, IsDuplicate(ErrActivityNotFound))
}
