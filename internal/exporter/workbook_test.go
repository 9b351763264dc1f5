package exporter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pwacli/pkg/contracts/domain"
)

func sampleRecord() *domain.Record {
	return &domain.Record{
		Kind:                domain.KindDetailed,
		SourceFile:          "P0123_visit1.pdf",
		PatientID:           "P0123",
		ScannedID:           "P0123",
		ScanDate:            "03/01/2024",
		ScanTime:            "14:32:10",
		Recording:           1,
		Analyzed:            true,
		Gender:              "Male",
		Age:                 domain.Float(62),
		PeripheralSystolic:  domain.Float(132),
		PeripheralDiastolic: domain.Float(78),
	}
}

func TestWriteCreatesThreeSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	record := sampleRecord()

	n, err := NewWorkbookWriter(nil).Write(path, []*domain.Record{record}, []*domain.Record{record}, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetAllData, SheetKeptData, SheetAveragedData}, f.GetSheetList())
}

func TestWriteHeadersMatchColumnRegistry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")

	_, err := NewWorkbookWriter(nil).Write(path, nil, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAllData)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.Headers(), rows[0])

	avgRows, err := f.GetRows(SheetAveragedData)
	require.NoError(t, err)
	require.Len(t, avgRows, 1)
	assert.NotContains(t, avgRows[0], "Source File")
	assert.NotContains(t, avgRows[0], "Recording #")
	assert.NotContains(t, avgRows[0], "Analyed")
	assert.Contains(t, avgRows[0], "Patient ID")
}

func TestWriteRecordRow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	record := sampleRecord()

	_, err := NewWorkbookWriter(nil).Write(path, []*domain.Record{record}, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(SheetAllData, cell)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "P0123_visit1.pdf", get("A2"))
	assert.Equal(t, "P0123", get("B2"))
	// Scan Date is a real date cell rendered MM/DD/YY; 03/01/2024 is 3 Jan.
	assert.Equal(t, "01/03/24", get("D2"))
	assert.Equal(t, "14:32:10", get("E2"))
	assert.Equal(t, "1", get("F2"))
	assert.Equal(t, "Yes", get("G2"))
	assert.Equal(t, "62", get("I2"))
	assert.Equal(t, "132", get("S2"))
}

func TestWriteRejectedRowCarriesMessageOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	rejected := domain.NewRejected(domain.KindClinical, "clinic.pdf", "/in/clinic.pdf")

	_, err := NewWorkbookWriter(nil).Write(path, []*domain.Record{rejected}, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetAllData)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	row := rows[1]
	require.GreaterOrEqual(t, len(row), 2)
	assert.Equal(t, "clinic.pdf", row[0])
	assert.Equal(t, domain.ClinicalReportMessage, row[1])
	for _, cell := range row[2:] {
		assert.Empty(t, cell)
	}
}

func TestWriteUnparseableScanDateStaysText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.xlsx")
	record := sampleRecord()
	record.ScanDate = "sometime in 2024"

	_, err := NewWorkbookWriter(nil).Write(path, []*domain.Record{record}, nil, nil)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue(SheetAllData, "D2")
	require.NoError(t, err)
	assert.Equal(t, "sometime in 2024", v)
}
