package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/mmynk/tripsplit/internal/models"
)

// Encode serializes the trip collection into the stored document format:
// a JSON array of trip records.
func Encode(trips []models.Trip) ([]byte, error) {
	normalized := make([]models.Trip, len(trips))
	for i, t := range trips {
		normalized[i] = t.Normalize()
	}
	data, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to encode trips: %w", err)
	}
	return data, nil
}

// Decode parses a stored document. Empty input and a JSON null both decode
// to an empty collection.
func Decode(data []byte) ([]models.Trip, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return []models.Trip{}, nil
	}
	var trips []models.Trip
	if err := json.Unmarshal(data, &trips); err != nil {
		return nil, fmt.Errorf("failed to decode trips: %w", err)
	}
	if trips == nil {
		trips = []models.Trip{}
	}
	return trips, nil
}
