package calc

import (
	_ "embed"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
)

// CSV column indices for data/airports.csv.
const (
	colIATA = 0
	colLat  = 2
	colLon  = 3
)

//go:embed data/airports.csv
var airportsCSV string

type airportCoord struct {
	Lat float64
	Lon float64
}

var (
	airports     map[string]airportCoord
	airportsOnce sync.Once
)

func parseAirports() {
	airports = make(map[string]airportCoord)

	reader := csv.NewReader(strings.NewReader(airportsCSV))
	if _, err := reader.Read(); err != nil {
		return
	}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) <= colLon {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(record[colIATA]))
		if code == "" {
			continue
		}
		lat, latErr := strconv.ParseFloat(strings.TrimSpace(record[colLat]), 64)
		lon, lonErr := strconv.ParseFloat(strings.TrimSpace(record[colLon]), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		airports[code] = airportCoord{Lat: lat, Lon: lon}
	}
}

const earthRadiusKm = 6371.0

// AirportDistanceKm returns the great-circle (Haversine) distance between
// two airports by IATA code, rounded to one decimal. Geometry runs in
// float64; only the final distance enters decimal arithmetic.
func AirportDistanceKm(originIATA, destinationIATA string) (decimal.Decimal, bool) {
	airportsOnce.Do(parseAirports)

	from, ok := airports[strings.ToUpper(strings.TrimSpace(originIATA))]
	if !ok {
		return decimal.Zero, false
	}
	to, ok := airports[strings.ToUpper(strings.TrimSpace(destinationIATA))]
	if !ok {
		return decimal.Zero, false
	}

	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLon := (to.Lon - from.Lon) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return decimal.NewFromFloat(earthRadiusKm * c).Round(1), true
}
