package geo

import "math"

const earthRadiusM = 6371000.0

// Point - точка в географических координатах
type Point struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Haversine вычисляет расстояние между двумя точками в метрах
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * math.Pi / 180.0
	dLon := (lon2 - lon1) * math.Pi / 180.0

	lat1Rad := lat1 * math.Pi / 180.0
	lat2Rad := lat2 * math.Pi / 180.0

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1Rad)*math.Cos(lat2Rad)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusM * c
}

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lon) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// PointInPolygon проверяет принадлежность точки простому полигону (ray casting,
// even-odd rule). Координаты трактуются как плоские: зоны пляжей занимают
// несколько километров, геодезическая поправка не нужна.
//
// Точка, лежащая ровно на ребре, считается внешней. Полигон с менее чем тремя
// вершинами не содержит ничего.
func PointInPolygon(p Point, polygon []Point) bool {
	if len(polygon) < 3 {
		return false
	}

	inside := false
	j := len(polygon) - 1
	for i := 0; i < len(polygon); i++ {
		pi, pj := polygon[i], polygon[j]
		// ray casting считает точку на горизонтальном ребре внутренней,
		// поэтому граница проверяется отдельно
		if onSegment(p, pi, pj) {
			return false
		}
		if (pi.Lat > p.Lat) != (pj.Lat > p.Lat) {
			crossLon := (pj.Lon-pi.Lon)*(p.Lat-pi.Lat)/(pj.Lat-pi.Lat) + pi.Lon
			if p.Lon < crossLon {
				inside = !inside
			}
		}
		j = i
	}

	return inside
}

// onSegment сообщает, лежит ли p ровно на отрезке ab.
func onSegment(p, a, b Point) bool {
	cross := (b.Lat-a.Lat)*(p.Lon-a.Lon) - (b.Lon-a.Lon)*(p.Lat-a.Lat)
	if cross != 0 {
		return false
	}
	return p.Lat >= math.Min(a.Lat, b.Lat) && p.Lat <= math.Max(a.Lat, b.Lat) &&
		p.Lon >= math.Min(a.Lon, b.Lon) && p.Lon <= math.Max(a.Lon, b.Lon)
}
