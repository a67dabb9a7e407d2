package entity

import "time"

type TableStatus string

const (
	TableFree     TableStatus = "free"
	TableOccupied TableStatus = "occupied"
)

// BoundingBox holds [x1, y1, x2, y2] in source-image pixel space.
type BoundingBox []float64

func (b BoundingBox) Valid() bool {
	return len(b) == 4 && b[0] <= b[2] && b[1] <= b[3]
}

func (b BoundingBox) X1() float64 { return b.at(0) }
func (b BoundingBox) Y1() float64 { return b.at(1) }
func (b BoundingBox) X2() float64 { return b.at(2) }
func (b BoundingBox) Y2() float64 { return b.at(3) }

func (b BoundingBox) Width() float64  { return b.X2() - b.X1() }
func (b BoundingBox) Height() float64 { return b.Y2() - b.Y1() }

func (b BoundingBox) at(i int) float64 {
	if i >= len(b) {
		return 0
	}
	return b[i]
}

type PersonDetection struct {
	ID         int         `json:"id"`
	BBox       BoundingBox `json:"bbox" validate:"bbox"`
	Confidence float64     `json:"confidence" validate:"gte=0,lte=1"`
}

type TableDetection struct {
	ID          int         `json:"id"`
	BBox        BoundingBox `json:"bbox" validate:"bbox"`
	Status      TableStatus `json:"status" validate:"oneof=free occupied"`
	PersonCount int         `json:"person_count" validate:"gte=0"`
	Confidence  float64     `json:"confidence" validate:"gte=0,lte=1"`
}

func (t TableDetection) IsOccupied() bool {
	return t.Status == TableOccupied
}

type ImageSize struct {
	Width  int `json:"width" validate:"gte=0"`
	Height int `json:"height" validate:"gte=0"`
}

// AnalysisResult is one response of the detection service. ID is assigned
// when the result is saved to history.
type AnalysisResult struct {
	ID            int64             `json:"id,omitempty"`
	Timestamp     string            `json:"timestamp"`
	TablesFound   int               `json:"tables_found"`
	PeopleFound   int               `json:"people_found"`
	Tables        []TableDetection  `json:"tables" validate:"required,dive"`
	People        []PersonDetection `json:"people" validate:"required,dive"`
	OccupancyRate float64           `json:"occupancy_rate" validate:"gte=0,lte=1"`
	ImageSize     ImageSize         `json:"image_size"`
	Image         []byte            `json:"image,omitempty"`
}

func (r AnalysisResult) TotalTables() int {
	return len(r.Tables)
}

func (r AnalysisResult) OccupiedTables() int {
	occupied := 0
	for _, t := range r.Tables {
		if t.IsOccupied() {
			occupied++
		}
	}
	return occupied
}

func (r AnalysisResult) FreeTables() int {
	return r.TotalTables() - r.OccupiedTables()
}

// ComputedOccupancy is occupied/total derived from the tables, 0 without tables.
func (r AnalysisResult) ComputedOccupancy() float64 {
	if len(r.Tables) == 0 {
		return 0
	}
	return float64(r.OccupiedTables()) / float64(len(r.Tables))
}

// AverageTableConfidence returns the mean table confidence, 0 without tables.
func (r AnalysisResult) AverageTableConfidence() float64 {
	if len(r.Tables) == 0 {
		return 0
	}
	var sum float64
	for _, t := range r.Tables {
		sum += t.Confidence
	}
	return sum / float64(len(r.Tables))
}

// Time parses Timestamp. A missing timestamp reads as now.
func (r AnalysisResult) Time(now time.Time) (time.Time, bool) {
	if r.Timestamp == "" {
		return now, true
	}
	t, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
