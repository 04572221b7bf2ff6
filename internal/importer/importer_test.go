package importer_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gazetadovale/newsdesk/internal/importer"
	"github.com/gazetadovale/newsdesk/internal/models"
	"github.com/gazetadovale/newsdesk/internal/testhelpers"
)

type fakeGeoAPI struct {
	regions []models.Region
	cities  []models.City
	nextID  int

	createdRegions []string
	createdCities  []string
	regionErr      error
	cityErr        error
}

func (f *fakeGeoAPI) ListRegions(_ context.Context) ([]models.Region, error) {
	return f.regions, nil
}

func (f *fakeGeoAPI) CreateRegion(_ context.Context, name string) (*models.Region, error) {
	if f.regionErr != nil {
		return nil, f.regionErr
	}
	f.nextID++
	f.createdRegions = append(f.createdRegions, name)
	return &models.Region{ID: f.nextID, Name: name}, nil
}

func (f *fakeGeoAPI) ListCities(_ context.Context, _ int) ([]models.City, error) {
	return f.cities, nil
}

func (f *fakeGeoAPI) CreateCity(_ context.Context, name string, regionID int) (*models.City, error) {
	if f.cityErr != nil {
		return nil, f.cityErr
	}
	f.nextID++
	f.createdCities = append(f.createdCities, name)
	return &models.City{ID: f.nextID, Name: name, RegionID: regionID}, nil
}

func workbook(t *testing.T, rows [][]string) *bytes.Buffer {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetList()[0]
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]string{"Região", "Cidade"}))
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestParseWorkbook(t *testing.T) {
	buf := workbook(t, [][]string{
		{"Vale do Aço", "Ipatinga"},
		{"Vale do Aço", "Timóteo"},
		{"Metropolitana", ""},
		{"", "Orfã"},
		{"", ""},
		{"  Leste  ", "  Caratinga  "},
	})

	rows, importErrors, err := importer.ParseWorkbook(buf)

	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, importer.GeoRow{Row: 2, Region: "Vale do Aço", City: "Ipatinga"}, rows[0])
	assert.Equal(t, "Metropolitana", rows[2].Region)
	assert.Empty(t, rows[2].City)
	assert.Equal(t, "Leste", rows[3].Region, "cells are trimmed")
	assert.Equal(t, "Caratinga", rows[3].City)

	require.Len(t, importErrors, 1)
	assert.Equal(t, 5, importErrors[0].Row)
	assert.Equal(t, "region is required", importErrors[0].Error)
}

func TestParseWorkbookRejectsGarbage(t *testing.T) {
	_, _, err := importer.ParseWorkbook(bytes.NewReader([]byte("not a workbook")))
	assert.Error(t, err)
}

func TestValidateRow(t *testing.T) {
	assert.Empty(t, importer.ValidateRow(importer.GeoRow{Region: "Leste"}))
	assert.Equal(t, "region is required", importer.ValidateRow(importer.GeoRow{City: "Ipatinga"}))
}

func TestImportCreatesMissingEntities(t *testing.T) {
	api := &fakeGeoAPI{
		regions: []models.Region{{ID: 1, Name: "Vale do Aço"}},
		cities:  []models.City{{ID: 10, Name: "Ipatinga", RegionID: 1}},
		nextID:  100,
	}
	imp := importer.New(api, testhelpers.NewTestLogger())

	result, err := imp.Import(context.Background(), []importer.GeoRow{
		{Row: 2, Region: "Vale do Aço", City: "Ipatinga"}, // both exist
		{Row: 3, Region: "vale do aço", City: "Timóteo"},  // region match is case-insensitive
		{Row: 4, Region: "Leste", City: "Caratinga"},      // both new
		{Row: 5, Region: "Leste", City: "Caratinga"},      // duplicate within the sheet
		{Row: 6, Region: "Metropolitana", City: ""},       // region only
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.RegionsCreated)
	assert.Equal(t, 2, result.CitiesCreated)
	assert.Equal(t, 2, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.Equal(t, []string{"Leste", "Metropolitana"}, api.createdRegions)
	assert.Equal(t, []string{"Timóteo", "Caratinga"}, api.createdCities)
}

func TestImportCollectsRowFailures(t *testing.T) {
	api := &fakeGeoAPI{
		regions: []models.Region{{ID: 1, Name: "Vale do Aço"}},
		cityErr: errors.New("city rejected"),
	}
	imp := importer.New(api, testhelpers.NewTestLogger())

	result, err := imp.Import(context.Background(), []importer.GeoRow{
		{Row: 2, Region: "Vale do Aço", City: "Ipatinga"},
		{Row: 3, Region: "Vale do Aço", City: ""},
	})

	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Zero(t, result.CitiesCreated)
}
