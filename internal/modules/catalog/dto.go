package catalog

import "salonagenda/internal/domain"

type ServiceResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
	Price       string `json:"price"`
	Active      bool   `json:"status"`
}

func toServiceResponse(s domain.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Name:        s.Name,
		Description: s.Description,
		Duration:    s.DurationMinutes,
		Price:       s.Price.StringFixed(2),
		Active:      s.Active,
	}
}
