package pairing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pwacli/pkg/contracts/domain"
)

func row(patient, file string, sys, dia, mean float64) *domain.Record {
	return &domain.Record{
		Kind:                domain.KindDetailed,
		PatientID:           patient,
		SourceFile:          file,
		PeripheralSystolic:  domain.Float(sys),
		PeripheralDiastolic: domain.Float(dia),
		PeripheralMean:      domain.Float(mean),
	}
}

func TestClosestPairCombinedMode(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 121, 81, 94)
	c := row("P1", "c.pdf", 150, 95, 113)

	pair, ok := ClosestPair([]*domain.Record{a, c, b}, ModeCombined)
	require.True(t, ok)
	assert.Equal(t, [2]*domain.Record{a, b}, pair)
}

func TestClosestPairKeepsFirstOnEqualDistanceCombined(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 122, 80, 93)
	c := row("P1", "c.pdf", 124, 80, 93)

	// (a,b) and (b,c) are both distance 2; the first pair in scan order wins.
	pair, ok := ClosestPair([]*domain.Record{a, b, c}, ModeCombined)
	require.True(t, ok)
	assert.Equal(t, [2]*domain.Record{a, b}, pair)
}

func TestClosestPairSystolicOnlyTieBreaksOnDiastolic(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 124, 95, 104)
	c := row("P1", "c.pdf", 116, 81, 94)

	// (a,b) and (a,c) tie on systolic distance 4; (a,c) has the closer
	// diastolic pressures and takes the tie.
	pair, ok := ClosestPair([]*domain.Record{a, b, c}, ModeSystolicOnly)
	require.True(t, ok)
	assert.Equal(t, [2]*domain.Record{a, c}, pair)
}

func TestClosestPairNeedsTwoRows(t *testing.T) {
	_, ok := ClosestPair([]*domain.Record{row("P1", "a.pdf", 120, 80, 93)}, ModeCombined)
	assert.False(t, ok)
}

func TestValidRowsRequireModeFields(t *testing.T) {
	complete := row("P1", "a.pdf", 120, 80, 93)
	noMean := row("P1", "b.pdf", 121, 81, 0)
	noMean.PeripheralMean = nil
	noSystolic := row("P1", "c.pdf", 0, 82, 95)
	noSystolic.PeripheralSystolic = nil

	rows := []*domain.Record{complete, noMean, noSystolic}

	assert.Equal(t, []*domain.Record{complete}, validRows(rows, ModeCombined))
	// Systolic-only mode needs only the systolic pressure.
	assert.Equal(t, []*domain.Record{complete, noMean}, validRows(rows, ModeSystolicOnly))
}

func TestBuildAnalyzedAveragesClosestPair(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 122, 82, 95)
	c := row("P1", "c.pdf", 150, 95, 113)
	single := row("P2", "only.pdf", 118, 76, 90)

	res := BuildAnalyzed([]*domain.Record{a, b, c, single}, ModeCombined, nil)

	require.Len(t, res.Averaged, 1)
	avg := res.Averaged[0]
	assert.Equal(t, "P1", avg.PatientID)
	require.NotNil(t, avg.PeripheralSystolic)
	assert.InDelta(t, 121, *avg.PeripheralSystolic, 1e-9)
	require.NotNil(t, avg.PeripheralDiastolic)
	assert.InDelta(t, 81, *avg.PeripheralDiastolic, 1e-9)

	assert.True(t, res.Kept[a])
	assert.True(t, res.Kept[b])
	assert.False(t, res.Kept[c])
	assert.False(t, res.Kept[single])
	assert.Equal(t, [2]*domain.Record{a, b}, res.Pairs["P1"])
	assert.NotContains(t, res.Pairs, "P2")
}

func TestBuildAnalyzedHonorsManualOverride(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 121, 81, 94)
	c := row("P1", "c.pdf", 150, 95, 113)

	manual := map[string][2]string{"P1": {"a.pdf", "c.pdf"}}
	res := BuildAnalyzed([]*domain.Record{a, b, c}, ModeCombined, manual)

	require.Len(t, res.Averaged, 1)
	assert.Equal(t, [2]*domain.Record{a, c}, res.Pairs["P1"])
	assert.True(t, res.Kept[a])
	assert.True(t, res.Kept[c])
	assert.False(t, res.Kept[b])
}

func TestBuildAnalyzedFallsBackWhenOverrideUnresolvable(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	b := row("P1", "b.pdf", 121, 81, 94)
	c := row("P1", "c.pdf", 150, 95, 113)

	manual := map[string][2]string{"P1": {"a.pdf", "missing.pdf"}}
	res := BuildAnalyzed([]*domain.Record{a, b, c}, ModeCombined, manual)

	require.Len(t, res.Averaged, 1)
	assert.Equal(t, [2]*domain.Record{a, b}, res.Pairs["P1"])
}

func TestBuildAnalyzedSkipsRejectedRows(t *testing.T) {
	rejected := domain.NewRejected(domain.KindClinical, "x.pdf", "/x.pdf")
	res := BuildAnalyzed([]*domain.Record{rejected}, ModeCombined, nil)
	assert.Empty(t, res.Averaged)
}

func TestAveragePairNumericAndTextRules(t *testing.T) {
	a := row("P1", "a.pdf", 120, 80, 93)
	a.Gender = "Male"
	a.ScanDate = "01/02/2024"
	a.Age = domain.Float(61)
	a.HeartRate = domain.Float(64)

	b := row("P1", "b.pdf", 122, 82, 95)
	b.ScanDate = "02/02/2024"
	b.Age = domain.Float(61)
	// Heart rate missing on b: the single present value carries over.

	avg := AveragePair(a, b)

	require.NotNil(t, avg.Age)
	assert.InDelta(t, 61, *avg.Age, 1e-9)
	require.NotNil(t, avg.HeartRate)
	assert.InDelta(t, 64, *avg.HeartRate, 1e-9)
	assert.Equal(t, "Male", avg.Gender)

	// Both sides missing stays missing.
	assert.Nil(t, avg.BuckbergSEVR)

	// Bookkeeping fields are outside the averaged layout.
	assert.Empty(t, avg.SourceFile)
	assert.Empty(t, avg.ScanDate)
	assert.Zero(t, avg.Recording)
}
