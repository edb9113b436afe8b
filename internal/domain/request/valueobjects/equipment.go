package valueobjects

import "fmt"

// Equipment describes the machine that needs repair.
type Equipment struct {
	Type         string `json:"type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	SerialNumber string `json:"serial_number,omitempty"`
}

// GeoPoint is an optional site location.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewGeoPoint(lat, lng float64) (*GeoPoint, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("latitude out of range: %v", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("longitude out of range: %v", lng)
	}
	return &GeoPoint{Latitude: lat, Longitude: lng}, nil
}
