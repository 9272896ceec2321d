package models

import (
	"io.globetrek.app/internal/stats"
)

type TravelStatsResponse struct {
	Stats stats.TravelStats `json:"stats"`
}
