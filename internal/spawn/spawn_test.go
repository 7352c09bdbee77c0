package spawn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ThatOtherAndrew/ecodigital/internal/dispatch"
	"github.com/ThatOtherAndrew/ecodigital/internal/models"
)

var _ dispatch.Spawner = (*Pool)(nil)

func TestSpawnAtAnchor(t *testing.T) {
	p := New(1)
	anchor := models.Point3D{X: 1, Y: 2, Z: 3}
	p.Spawn(anchor, models.Result{Kind: models.CircleMatch, MeanRadius: 1})

	require.Len(t, p.Effects(), 1)
	e := p.Effects()[0]
	assert.Equal(t, models.Circle, e.Symbol)
	assert.Equal(t, anchor, e.Anchor)
	assert.Len(t, e.Particles, 24)
	for _, pt := range e.Particles {
		assert.Equal(t, anchor, pt.Position)
		assert.InDelta(t, 1.0, pt.Alpha(), 1e-9)
	}
}

func TestSpawnCategory(t *testing.T) {
	p := New(1)
	p.Spawn(models.Point3D{}, models.Result{Kind: models.CornerMatch})
	p.Spawn(models.Point3D{}, models.Result{Kind: models.TemplateMatch, Symbol: models.Lightning})

	require.Len(t, p.Effects(), 2)
	assert.Equal(t, models.Vee, p.Effects()[0].Symbol)
	assert.Equal(t, models.Lightning, p.Effects()[1].Symbol)
	assert.Equal(t, 16+12, p.Particles())
}

func TestSpawnIgnoresUnmatched(t *testing.T) {
	p := New(1)
	p.Spawn(models.Point3D{}, models.Result{})
	assert.Empty(t, p.Effects())
}

func TestUpdateAgesAndExpires(t *testing.T) {
	p := New(7)
	p.Spawn(models.Point3D{}, models.Result{Kind: models.CornerMatch})
	before := p.Effects()[0].Particles[0]

	p.Update(0.1)
	require.Len(t, p.Effects(), 1)
	after := p.Effects()[0].Particles[0]
	assert.InDelta(t, before.Life-0.1, after.Life, 1e-9)
	assert.NotEqual(t, before.Position, after.Position)
	assert.Less(t, after.Alpha(), 1.0)

	p.Update(1)
	assert.Empty(t, p.Effects())
	assert.Zero(t, p.Particles())
}

func TestSeededPoolsMatch(t *testing.T) {
	a, b := New(42), New(42)
	r := models.Result{Kind: models.TemplateMatch, Symbol: models.Square}
	a.Spawn(models.Point3D{}, r)
	b.Spawn(models.Point3D{}, r)
	assert.Equal(t, a.Effects()[0].Particles, b.Effects()[0].Particles)
}

func TestHueDistinctPerSymbol(t *testing.T) {
	seen := map[float64]models.Symbol{}
	for _, s := range models.AllSymbols {
		h := Hue(s)
		assert.GreaterOrEqual(t, h, 0.0)
		assert.Less(t, h, 360.0)
		_, dup := seen[h]
		assert.False(t, dup, "%s shares a hue", s)
		seen[h] = s
	}
}

func TestClear(t *testing.T) {
	p := New(1)
	p.Spawn(models.Point3D{}, models.Result{Kind: models.CircleMatch})
	p.Clear()
	assert.Empty(t, p.Effects())
}
