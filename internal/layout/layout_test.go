package layout

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleThreshold(t *testing.T) {
	tests := []struct {
		y    float64
		want bool
	}{
		{0, false},
		{50, false},
		{99.9, false},
		{100, false},
		{100.01, true},
		{101, true},
		{5000, true},
		{-20, false},
	}

	for _, tt := range tests {
		c := New()
		c.Mount(NewSignal())
		c.Sample(tt.y)
		require.Equal(t, tt.want, c.IsScrolled(), "y=%v", tt.y)
		if tt.want {
			require.Equal(t, Compact, c.Mode())
		} else {
			require.Equal(t, Expanded, c.Mode())
		}
	}
}

func TestScrollDownAndBack(t *testing.T) {
	sig := NewSignal()
	c := New()

	var seen []Mode
	c.OnChange(func(m Mode) { seen = append(seen, m) })
	c.Mount(sig)

	for y := 0.0; y <= 150; y += 10 {
		sig.Publish(y)
	}
	for y := 150.0; y >= 50; y -= 10 {
		sig.Publish(y)
	}

	require.Equal(t, []Mode{Compact, Expanded}, seen)
	require.False(t, c.IsScrolled())
}

func TestStartsCompactWhenFirstSampleIsPastThreshold(t *testing.T) {
	sig := NewSignal()
	c := New()
	c.Mount(sig)

	sig.Publish(400)
	require.Equal(t, Compact, c.Mode())
}

func TestUnmountReleasesSubscription(t *testing.T) {
	sig := NewSignal()
	c := New()
	c.Mount(sig)
	require.Equal(t, 1, sig.Subscribers())

	c.Unmount()
	require.Equal(t, 0, sig.Subscribers())

	sig.Publish(500)
	require.False(t, c.IsScrolled(), "samples after unmount must be ignored")

	// Idempotent.
	c.Unmount()
}

func TestRemountReleasesPreviousSource(t *testing.T) {
	first, second := NewSignal(), NewSignal()
	c := New()
	c.Mount(first)
	c.Mount(second)

	require.Equal(t, 0, first.Subscribers())
	require.Equal(t, 1, second.Subscribers())
}

func TestRemountResetsToExpanded(t *testing.T) {
	first := NewSignal()
	c := New()
	var seen []Mode
	c.OnChange(func(m Mode) { seen = append(seen, m) })

	c.Mount(first)
	first.Publish(300)
	c.Unmount()
	require.True(t, c.IsScrolled(), "unmount keeps the last mode")

	c.Mount(NewSignal())
	require.Equal(t, Expanded, c.Mode())
	require.Equal(t, []Mode{Compact, Expanded}, seen)

	// No crossing, no notification.
	c.Mount(NewSignal())
	require.Equal(t, []Mode{Compact, Expanded}, seen)
}

func TestNilSourceStaysExpanded(t *testing.T) {
	c := New()
	c.Mount(nil)
	require.False(t, c.IsScrolled())
	require.Equal(t, "Expanded", c.Mode().String())
	c.Unmount()
}

func TestSourceFunc(t *testing.T) {
	var deliver func(float64)
	released := false
	src := SourceFunc(func(fn func(float64)) func() {
		deliver = fn
		return func() { released = true }
	})

	c := New()
	c.Mount(src)
	deliver(101)
	require.True(t, c.IsScrolled())

	c.Unmount()
	require.True(t, released)
}
