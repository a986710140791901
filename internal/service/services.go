package service

import (
	"github.com/deppfellow/travelcard-api/internal/server"
)

type Services struct {
	TravelCard *TravelCardService
}

func NewServices(s *server.Server) (*Services, error) {
	return &Services{
		TravelCard: NewTravelCardService(s, s.Transhub),
	}, nil
}
