package form

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutLookup(t *testing.T) {
	l := NewLayout()
	l.Add(NewDropdownField("state", "State"))
	l.Add(NewField("city", "City", KindText))
	l.AddDisplay("selected-state")

	f, ok := l.Field("state")
	require.True(t, ok)
	assert.Equal(t, KindDropdown, f.Kind)
	for _, r := range DropdownRegions {
		assert.True(t, f.HasRegion(r))
	}

	city, _ := l.Field("city")
	assert.False(t, city.HasRegion(RegionMenu))

	_, ok = l.Field("zip")
	assert.False(t, ok)

	d, ok := l.Display("selected-state")
	require.True(t, ok)
	assert.True(t, d.Empty)
	assert.Equal(t, NothingSelected, d.Title)
}

func TestFocusCycles(t *testing.T) {
	l := NewLayout()
	l.Add(NewField("a", "A", KindText))
	l.Add(NewField("b", "B", KindText))
	l.Add(NewField("c", "C", KindText))
	l.FocusAt(0)

	l.FocusNext()
	assert.Equal(t, "b", l.Focused().ID)
	assert.True(t, l.Focused().Focused())

	l.FocusNext()
	l.FocusNext()
	assert.Equal(t, "a", l.Focused().ID)

	l.FocusPrev()
	assert.Equal(t, "c", l.Focused().ID)
	a, _ := l.Field("a")
	assert.False(t, a.Focused())

	l.FocusID("b")
	assert.Equal(t, 1, l.FocusIndex())
}

func TestFieldValues(t *testing.T) {
	l := NewLayout()
	f := l.Add(NewField("city", "City", KindText))
	f.SetValue("Boston")

	assert.Equal(t, map[string]string{"city": "Boston"}, l.Values())

	d := l.AddDisplay("x")
	d.SetItem("CA", "California")
	assert.False(t, d.Empty)
	d.Reset()
	assert.Equal(t, NothingSelected, d.Title)
}
