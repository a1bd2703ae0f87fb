package address

import "context"

// Service validates coordinates before handing them to the geocoder.
type Service struct {
	geocoder Geocoder
}

func NewService(g Geocoder) *Service {
	return &Service{geocoder: g}
}

func (s *Service) Locate(ctx context.Context, lat, lng float64) (Address, error) {
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Address{}, ErrInvalidCoordinates
	}
	return s.geocoder.Reverse(ctx, lat, lng)
}
