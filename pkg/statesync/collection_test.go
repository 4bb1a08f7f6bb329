package statesync

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollection_UpsertIsIdempotent(t *testing.T) {
	c := NewCollection()

	require.True(t, c.Upsert("m1", "hello"))
	require.True(t, c.Upsert("m2", "world"))

	// Replaying a realtime insert for a known id updates in place.
	require.False(t, c.Upsert("m1", "hello (edited)"))

	require.Equal(t, 2, c.Len())
	require.Equal(t, []interface{}{"hello (edited)", "world"}, c.Values())
}

func TestCollection_ReplaceID_KeepsPosition(t *testing.T) {
	c := NewCollection()
	c.Upsert("m1", "first")
	c.Upsert("temp-abc", "optimistic")
	c.Upsert("m2", "last")

	c.ReplaceID("temp-abc", "m99", "confirmed")

	require.False(t, c.Has("temp-abc"))
	require.True(t, c.Has("m99"))
	require.Equal(t, []interface{}{"first", "confirmed", "last"}, c.Values())
}

func TestCollection_ReplaceID_RealIDAlreadyArrived(t *testing.T) {
	c := NewCollection()
	c.Upsert("temp-abc", "optimistic")
	// The realtime insert for the confirmed row beat the HTTP response.
	c.Upsert("m99", "from realtime")

	c.ReplaceID("temp-abc", "m99", "from confirmation")

	// No duplicate: the temporary record is dropped.
	require.Equal(t, 1, c.Len())
	v, ok := c.Get("m99")
	require.True(t, ok)
	require.Equal(t, "from confirmation", v)
}

func TestCollection_Remove(t *testing.T) {
	c := NewCollection()
	c.Upsert("a", 1)
	c.Upsert("b", 2)

	c.Remove("a")
	require.False(t, c.Has("a"))
	require.Equal(t, []interface{}{2}, c.Values())

	// Removing an absent id is a no-op.
	c.Remove("missing")
	require.Equal(t, 1, c.Len())
}
