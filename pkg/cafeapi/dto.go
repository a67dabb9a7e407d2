package cafeapi

import "CafeAnalyzer/internal/entity"

type HealthStatus struct {
	Status       string `json:"status"`
	ModelsLoaded bool   `json:"models_loaded"`
	Timestamp    string `json:"timestamp"`
}

func (h HealthStatus) Healthy() bool {
	return h.Status == "healthy"
}

type errorBody struct {
	Error string `json:"error"`
}

// analyzeBody mirrors the analyze response; pointer fields distinguish
// absent values from zero ones.
type analyzeBody struct {
	Timestamp     string                   `json:"timestamp"`
	TablesFound   *int                     `json:"tables_found"`
	PeopleFound   *int                     `json:"people_found"`
	Tables        []entity.TableDetection  `json:"tables" validate:"required,dive"`
	People        []entity.PersonDetection `json:"people" validate:"required,dive"`
	OccupancyRate *float64                 `json:"occupancy_rate" validate:"omitempty,gte=0,lte=1"`
	ImageSize     entity.ImageSize         `json:"image_size"`
}
