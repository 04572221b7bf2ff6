package importer

import (
	"context"
	"strconv"
	"strings"

	"github.com/gazetadovale/newsdesk/internal/logger"
	"github.com/gazetadovale/newsdesk/internal/models"
)

// GeoAPI is the slice of the upstream client the importer needs.
type GeoAPI interface {
	ListRegions(ctx context.Context) ([]models.Region, error)
	CreateRegion(ctx context.Context, name string) (*models.Region, error)
	ListCities(ctx context.Context, regionID int) ([]models.City, error)
	CreateCity(ctx context.Context, name string, regionID int) (*models.City, error)
}

// Result summarizes one import run.
type Result struct {
	RegionsCreated int           `json:"regions_created"`
	CitiesCreated  int           `json:"cities_created"`
	Skipped        int           `json:"skipped"`
	Errors         []ImportError `json:"errors,omitempty"`
}

// Importer creates regions and cities upstream from parsed rows.
type Importer struct {
	api    GeoAPI
	logger logger.Logger
}

func New(api GeoAPI, log logger.Logger) *Importer {
	return &Importer{api: api, logger: log}
}

// Import creates the named regions and cities, reusing regions and
// cities that already exist upstream (matched by name,
// case-insensitive). Row failures are collected, not fatal.
func (i *Importer) Import(ctx context.Context, rows []GeoRow) (*Result, error) {
	existing, err := i.api.ListRegions(ctx)
	if err != nil {
		return nil, err
	}
	regionIDs := make(map[string]int, len(existing))
	for _, r := range existing {
		regionIDs[strings.ToLower(r.Name)] = r.ID
	}

	cities, err := i.api.ListCities(ctx, 0)
	if err != nil {
		return nil, err
	}
	knownCities := make(map[string]bool, len(cities))
	for _, c := range cities {
		knownCities[cityKey(c.RegionID, c.Name)] = true
	}

	result := &Result{}
	for _, row := range rows {
		regionID, ok := regionIDs[strings.ToLower(row.Region)]
		if !ok {
			region, createErr := i.api.CreateRegion(ctx, row.Region)
			if createErr != nil {
				result.Errors = append(result.Errors, ImportError{Row: row.Row, Error: createErr.Error()})
				continue
			}
			regionID = region.ID
			regionIDs[strings.ToLower(row.Region)] = regionID
			result.RegionsCreated++
		}

		if row.City == "" {
			continue
		}
		if knownCities[cityKey(regionID, row.City)] {
			result.Skipped++
			continue
		}

		if _, createErr := i.api.CreateCity(ctx, row.City, regionID); createErr != nil {
			result.Errors = append(result.Errors, ImportError{Row: row.Row, Error: createErr.Error()})
			continue
		}
		knownCities[cityKey(regionID, row.City)] = true
		result.CitiesCreated++
	}

	i.logger.Info("Geo import finished",
		logger.Int("regions_created", result.RegionsCreated),
		logger.Int("cities_created", result.CitiesCreated),
		logger.Int("errors", len(result.Errors)),
	)

	return result, nil
}

func cityKey(regionID int, name string) string {
	return strconv.Itoa(regionID) + ":" + strings.ToLower(name)
}
