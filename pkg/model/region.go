package model

import "time"

// Region is a top-level geographic grouping containing suburbs
type Region struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Suburb belongs to exactly one region and is the unit schedules attach to.
// RegionID is a non-owning reference: deleting a region leaves its suburbs
// in place.
type Suburb struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	RegionID  string    `db:"region_id" json:"region_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// RegionAddRequest is the payload for creating a region
type RegionAddRequest struct {
	Name string `json:"name" binding:"required"`
}

// SuburbStageRequest stages one suburb name into the current batch
type SuburbStageRequest struct {
	Name string `json:"name" binding:"required"`
}

// SuburbListResponse returns the suburbs of a region together with counts
type SuburbListResponse struct {
	Suburbs      []Suburb `json:"suburbs"`
	TotalSuburbs int      `json:"total_suburbs"`
}
