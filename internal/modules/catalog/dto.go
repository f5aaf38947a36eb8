package catalog

import (
	"errorfree/internal/domain"
	"errorfree/internal/pkg/currency"
)

type ServiceResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Category     string  `json:"category"`
	Price        float64 `json:"price"`
	DisplayPrice string  `json:"display_price"`
}

func toServiceResponse(s domain.Service, cur string) ServiceResponse {
	return ServiceResponse{
		ID:           s.ID,
		Name:         s.Name,
		Description:  s.Description,
		Category:     s.Category,
		Price:        s.Price,
		DisplayPrice: currency.Format(s.Price, cur),
	}
}
