package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestActivityParticipants(t *testing.T) {
	a := Activity{
		Name: "Chess Club",
		Participants: []Participant{
			{Email: "michael@mergington.edu"},
			{Email: "daniel@mergington.edu"},
		},
	}

	require.True(t, a.HasParticipant("daniel@mergington.edu"))
	require.False(t, a.HasParticipant("Daniel@mergington.edu"))
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu"}, a.Emails())
	require.True(t, a.Unlimited())
	require.Nil(t, a.FindParticipant("nobody@mergington.edu"))
}

func TestDefaultActivities(t *testing.T) {
	defaults := DefaultActivities()
	require.Len(t, defaults, 9)

	names := map[string]bool{}
	for _, a := range defaults {
		require.False(t, names[a.Name], "duplicate seed %s", a.Name)
		names[a.Name] = true
		require.NotZero(t, a.MaxParticipants)
	}
}
