package geo

import (
	"bytes"
	"strconv"

	json "github.com/goccy/go-json"
)

// geoJSONPolygon - GeoJSON-документ вида {"type":"Polygon","coordinates":[[[lon,lat],...]]}
type geoJSONPolygon struct {
	Type        string        `json:"type"`
	Coordinates [][][]float64 `json:"coordinates"`
}

// structuredPoint - точка из структурированного списка {latitude, longitude}
type structuredPoint struct {
	Lat *float64 `json:"latitude"`
	Lon *float64 `json:"longitude"`
}

// ParsePolygon разбирает кольцо полигона из данных бэкенда. Принимает либо
// GeoJSON Polygon (как объект или как JSON-строка с объектом внутри), либо
// структурированный массив точек {latitude, longitude}.
//
// Любая ошибка валидации (нет внешнего кольца, меньше трёх точек,
// нечисловые или бесконечные координаты) даёт пустой результат, не ошибку:
// зона без валидного полигона просто не участвует в сопоставлении.
func ParsePolygon(raw []byte) []Point {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil
	}

	// Бэкенд может прислать GeoJSON, завёрнутый в JSON-строку
	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return ParsePolygon([]byte(inner))
	}

	switch data[0] {
	case '{':
		return parseGeoJSON(data)
	case '[':
		return parseStructured(data)
	default:
		return nil
	}
}

func parseGeoJSON(data []byte) []Point {
	var doc geoJSONPolygon
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil
	}
	if doc.Type != "Polygon" || len(doc.Coordinates) == 0 {
		return nil
	}

	ring := doc.Coordinates[0] // внешнее кольцо, дырки не поддерживаются
	points := make([]Point, 0, len(ring))
	for _, pair := range ring {
		if len(pair) < 2 {
			return nil
		}
		// GeoJSON хранит [lon, lat]
		if !ValidateCoordinates(pair[1], pair[0]) {
			return nil
		}
		points = append(points, Point{Lat: pair[1], Lon: pair[0]})
	}

	if len(points) < 3 {
		return nil
	}
	return points
}

func parseStructured(data []byte) []Point {
	var list []structuredPoint
	if err := json.Unmarshal(data, &list); err != nil {
		return nil
	}

	points := make([]Point, 0, len(list))
	for _, sp := range list {
		if sp.Lat == nil || sp.Lon == nil {
			return nil
		}
		if !ValidateCoordinates(*sp.Lat, *sp.Lon) {
			return nil
		}
		points = append(points, Point{Lat: *sp.Lat, Lon: *sp.Lon})
	}

	if len(points) < 3 {
		return nil
	}
	return points
}

// FormatCoordinate форматирует координату для логов и ключей кеша
func FormatCoordinate(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
