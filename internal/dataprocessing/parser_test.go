package dataprocessing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwacli/pkg/contracts/domain"
)

// detailedReportText mimics the text layer of a PWA Detailed Report: one
// labeled line per metric, the peripheral/aortic pressures table, and the
// footer timestamp repeated per page.
const detailedReportText = `PWA Detailed Report
Patient ID: AB123
Date Of Birth: 05/03/1961
Age, Gender: 64, Male
Height: 172.0 cm
Number Of Pulses: 28
Pulse Height: 145
Pulse Height Variation: 4 %
Diastolic Variation: 3 %
Shape Deviation: 5 %
Pulse Length Variation: 2 %
Overall Quality: 92 %
Brachial SYS/DIA: 132/78
PERIPHERAL AORTIC
SP 132 121
DP 78 79
PP 54 42
MAP HR 96 62
Heart Rate, Period: 62.0 bpm, 968 ms
Ejection Duration (ED): 311 ms, 32.1 %
Aortic T2: 143 ms
P1 Height (P1-DP): 31 mmHg
Aortic Augmentation (AP): -10.5 mmHg
Aortic AIx (AP/PP, P2/P1): -24 %, 132 %
Aortic AIx (AP/PP) @HR75: 18 %
Buckberg SEVR: 158 %
PTI (Systole, Diastole): 2180, 3440 mmHg.s/min
End Systolic Pressure: 103 mmHg
MAP (Systole, Diastole): 107, 88 mmHg
PP Amplification: 129 %
03/01/2024 09:15
03/01/2024 14:32:10
`

func TestParseReportExtractsLabeledFields(t *testing.T) {
	r := ParseReport(detailedReportText)

	assert.Equal(t, "AB123", r.ScannedID)
	assert.Equal(t, "05/03/1961", r.DateOfBirth)
	assert.Equal(t, "Male", r.Gender)

	requireFloat(t, 64, r.Age)
	requireFloat(t, 1.72, r.HeightM)
	requireFloat(t, 28, r.PulseCount)
	requireFloat(t, 145, r.PulseHeight)
	requireFloat(t, 4, r.PulseHeightVariation)
	requireFloat(t, 3, r.DiastolicVariation)
	requireFloat(t, 5, r.ShapeDeviation)
	requireFloat(t, 2, r.PulseLengthVariation)
	requireFloat(t, 92, r.OverallQuality)

	requireFloat(t, 62, r.HeartRate)
	requireFloat(t, 968, r.PeriodMS)
	requireFloat(t, 311, r.EjectionDurationMS)
	requireFloat(t, 32.1, r.EjectionDurationPct)
	requireFloat(t, 143, r.AorticT2)
	requireFloat(t, 31, r.P1Height)
	requireFloat(t, -10.5, r.AorticAugmentation)
	requireFloat(t, -24, r.AIxAPPP)
	requireFloat(t, 132, r.AIxP2P1)
	requireFloat(t, 18, r.AIxAPPPAtHR75)
	requireFloat(t, 158, r.BuckbergSEVR)
	requireFloat(t, 2180, r.PTISystolic)
	requireFloat(t, 3440, r.PTIDiastolic)
	requireFloat(t, 103, r.EndSystolicPressure)
	requireFloat(t, 107, r.MAPSystolic)
	requireFloat(t, 88, r.MAPDiastolic)
	requireFloat(t, 129, r.PPAmplification)
}

func TestParseReportPressureTable(t *testing.T) {
	r := ParseReport(detailedReportText)

	// Brachial SYS/DIA wins for the peripheral side, the table fills the
	// aortic side.
	requireFloat(t, 132, r.PeripheralSystolic)
	requireFloat(t, 78, r.PeripheralDiastolic)
	requireFloat(t, 54, r.PeripheralPulsePressure)
	requireFloat(t, 96, r.PeripheralMean)
	requireFloat(t, 121, r.AorticSystolic)
	requireFloat(t, 79, r.AorticDiastolic)
	requireFloat(t, 42, r.AorticPulsePressure)
}

func TestParseReportScanStampUsesLastOccurrence(t *testing.T) {
	r := ParseReport(detailedReportText)

	assert.Equal(t, "03/01/2024", r.ScanDate)
	assert.Equal(t, "14:32:10", r.ScanTime)
}

func TestParseReportDerivesPulsePressures(t *testing.T) {
	text := `PWA Detailed Report
Brachial SYS/DIA: 140/80
03/01/2024 10:00`

	r := ParseReport(text)

	requireFloat(t, 140, r.PeripheralSystolic)
	requireFloat(t, 80, r.PeripheralDiastolic)
	requireFloat(t, 60, r.PeripheralPulsePressure)
	assert.Nil(t, r.AorticPulsePressure)
}

func TestParseReportHeartRateFallsBackToTable(t *testing.T) {
	text := `PWA Detailed Report
SP 130 120
DP 75 76
MAP HR 93 71
03/01/2024 10:00`

	r := ParseReport(text)

	requireFloat(t, 71, r.HeartRate)
	requireFloat(t, 93, r.PeripheralMean)
}

func TestParseReportMissingFieldsStayNil(t *testing.T) {
	r := ParseReport("PWA Detailed Report\nnothing useful here")

	assert.Empty(t, r.ScannedID)
	assert.Empty(t, r.ScanDate)
	assert.Nil(t, r.Age)
	assert.Nil(t, r.PeripheralSystolic)
	assert.Nil(t, r.PeripheralPulsePressure)
}

func TestDetectKind(t *testing.T) {
	tests := []struct {
		name string
		text string
		want domain.ReportKind
	}{
		{"detailed", "some header\nPWA Detailed Report\nbody", domain.KindDetailed},
		{"detailed case-insensitive", "pwa detailed report", domain.KindDetailed},
		{"clinical", "PWA Clinical Report", domain.KindClinical},
		{"detailed wins over clinical", "PWA Clinical Report and PWA Detailed Report", domain.KindDetailed},
		{"unrecognized", "discharge summary", domain.KindUnrecognized},
		{"empty text", "", domain.KindUnrecognized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectKind(tt.text))
		})
	}
}

func TestPatientIDFromFilename(t *testing.T) {
	assert.Equal(t, "P0042", PatientIDFromFilename("P0042_visit2_detailed.pdf"))
	assert.Equal(t, "P0042", PatientIDFromFilename("P0042.pdf"))
	assert.Equal(t, "P0042", PatientIDFromFilename("P0042_a.PDF"))
}

func requireFloat(t *testing.T, want float64, got *float64) {
	t.Helper()
	require.NotNil(t, got)
	assert.InDelta(t, want, *got, 1e-9)
}
