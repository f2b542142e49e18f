package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// прямоугольник вокруг точки (32.2996, -9.2371)
var testPolygon = []Point{
	{Lat: 32.29, Lon: -9.25},
	{Lat: 32.29, Lon: -9.22},
	{Lat: 32.31, Lon: -9.22},
	{Lat: 32.31, Lon: -9.25},
}

func TestPointInPolygon(t *testing.T) {
	t.Run("point inside", func(t *testing.T) {
		assert.True(t, PointInPolygon(Point{Lat: 32.2996, Lon: -9.2371}, testPolygon))
	})

	t.Run("point outside", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{Lat: 32.35, Lon: -9.2371}, testPolygon))
		assert.False(t, PointInPolygon(Point{Lat: 32.2996, Lon: -9.30}, testPolygon))
	})

	t.Run("point far away", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{Lat: -45.0, Lon: 120.0}, testPolygon))
	})

	t.Run("point on edge is outside", func(t *testing.T) {
		// горизонтальные рёбра: Lat совпадает с вершинами
		assert.False(t, PointInPolygon(Point{Lat: 32.29, Lon: -9.235}, testPolygon))
		assert.False(t, PointInPolygon(Point{Lat: 32.31, Lon: -9.235}, testPolygon))
		// вертикальные рёбра
		assert.False(t, PointInPolygon(Point{Lat: 32.30, Lon: -9.25}, testPolygon))
		assert.False(t, PointInPolygon(Point{Lat: 32.30, Lon: -9.22}, testPolygon))
	})

	t.Run("vertex is outside", func(t *testing.T) {
		assert.False(t, PointInPolygon(Point{Lat: 32.29, Lon: -9.25}, testPolygon))
	})

	t.Run("degenerate polygons", func(t *testing.T) {
		p := Point{Lat: 32.2996, Lon: -9.2371}
		assert.False(t, PointInPolygon(p, nil))
		assert.False(t, PointInPolygon(p, []Point{{Lat: 32.29, Lon: -9.25}}))
		assert.False(t, PointInPolygon(p, []Point{
			{Lat: 32.29, Lon: -9.25},
			{Lat: 32.31, Lon: -9.22},
		}))
	})

	t.Run("concave polygon", func(t *testing.T) {
		// буква "Г": выемка справа снизу
		concave := []Point{
			{Lat: 0, Lon: 0},
			{Lat: 0, Lon: 4},
			{Lat: 2, Lon: 4},
			{Lat: 2, Lon: 2},
			{Lat: 4, Lon: 2},
			{Lat: 4, Lon: 0},
		}
		assert.True(t, PointInPolygon(Point{Lat: 1, Lon: 1}, concave))
		assert.True(t, PointInPolygon(Point{Lat: 1, Lon: 3}, concave))
		assert.True(t, PointInPolygon(Point{Lat: 3, Lon: 1}, concave))
		assert.False(t, PointInPolygon(Point{Lat: 3, Lon: 3}, concave))
	})
}

func TestHaversine(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		assert.Zero(t, Haversine(32.2996, -9.2371, 32.2996, -9.2371))
	})

	t.Run("known distance", func(t *testing.T) {
		// Барселона - Мадрид, примерно 505 км
		d := Haversine(41.3851, 2.1734, 40.4168, -3.7038)
		assert.InDelta(t, 505000, d, 5000)
	})

	t.Run("short distance", func(t *testing.T) {
		// ~111 м на градусной сетке вдоль меридиана
		d := Haversine(32.2996, -9.2371, 32.3006, -9.2371)
		assert.InDelta(t, 111, d, 1)
	})

	t.Run("symmetric", func(t *testing.T) {
		d1 := Haversine(41.3851, 2.1734, 40.4168, -3.7038)
		d2 := Haversine(40.4168, -3.7038, 41.3851, 2.1734)
		assert.Equal(t, d1, d2)
	})
}

func TestValidateCoordinates(t *testing.T) {
	assert.True(t, ValidateCoordinates(32.2996, -9.2371))
	assert.True(t, ValidateCoordinates(0, 0))
	assert.True(t, ValidateCoordinates(90, 180))
	assert.True(t, ValidateCoordinates(-90, -180))

	assert.False(t, ValidateCoordinates(90.001, 0))
	assert.False(t, ValidateCoordinates(-90.001, 0))
	assert.False(t, ValidateCoordinates(0, 180.001))
	assert.False(t, ValidateCoordinates(0, -180.001))
	assert.False(t, ValidateCoordinates(math.NaN(), 0))
	assert.False(t, ValidateCoordinates(0, math.NaN()))
	assert.False(t, ValidateCoordinates(math.Inf(1), 0))
	assert.False(t, ValidateCoordinates(0, math.Inf(-1)))
}
