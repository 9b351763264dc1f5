package dataprocessing

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"pwacli/pkg/contracts/domain"
)

// The PWA Detailed Report prints one "Label: value unit" line per metric,
// plus a small peripheral/aortic pressures table (SP/DP/PP/MAP HR rows with
// one column per site). All patterns run against whitespace-normalized text
// so line wrapping inside the PDF text layer does not matter.
var (
	whitespaceRe = regexp.MustCompile(`\s+`)

	scannedIDRe   = regexp.MustCompile(`(?i)Patient ID:\s*(\S+)`)
	dobRe         = regexp.MustCompile(`(?i)Date Of Birth:\s*([0-9]{2}/[0-9]{2}/[0-9]{4})`)
	scanStampRe   = regexp.MustCompile(`([0-9]{2}/[0-9]{2}/[0-9]{4})\s+([0-9]{2}:[0-9]{2}(?::[0-9]{2})?)`)
	ageGenderRe   = regexp.MustCompile(`(?i)Age, Gender:\s*([0-9]+),\s*([A-Za-z]+)`)
	heightRe      = regexp.MustCompile(`(?i)Height:\s*([0-9.]+)\s*cm`)
	pulsesRe      = regexp.MustCompile(`(?i)Number Of Pulses:\s*([0-9]+)`)
	heartPeriodRe = regexp.MustCompile(`(?i)Heart Rate, Period:\s*([0-9.]+)\s*bpm,\s*([0-9.]+)\s*ms`)
	ejectionRe    = regexp.MustCompile(`(?i)Ejection Duration \(ED\):\s*([0-9.]+)\s*ms,\s*([0-9.]+)\s*%`)
	aorticT2Re    = regexp.MustCompile(`(?i)Aortic T2:\s*([0-9.]+)\s*ms`)
	p1HeightRe    = regexp.MustCompile(`(?i)P1 Height.*?:\s*([0-9.]+)\s*mmHg`)
	augmentRe     = regexp.MustCompile(`(?i)Aortic Augmentation.*?:\s*([-+]?[0-9.]+)\s*mmHg`)
	aixRe         = regexp.MustCompile(`(?i)Aortic AIx \(AP/PP, P2/P1\):\s*([-+]?[0-9.]+)\s*%,\s*([-+]?[0-9.]+)\s*%`)
	aixHR75Re     = regexp.MustCompile(`(?i)Aortic AIx \(AP/PP\) @HR75:\s*([-+]?[0-9.]+)\s*%`)
	buckbergRe    = regexp.MustCompile(`(?i)Buckberg SEVR:\s*([0-9.]+)\s*%`)
	ptiRe         = regexp.MustCompile(`(?i)PTI \(Systole, Diastole\):\s*([0-9.]+),\s*([0-9.]+)\s*mmHg\.s/min`)
	endSystolicRe = regexp.MustCompile(`(?i)End Systolic Pressure:\s*([0-9.]+)\s*mmHg`)
	mapPairRe     = regexp.MustCompile(`(?i)MAP \(Systole, Diastole\):\s*([0-9.]+),\s*([0-9.]+)\s*mmHg`)

	pulseHeightRe    = regexp.MustCompile(`(?i)Pulse Height:\s*([0-9.]+)`)
	pulseHeightVarRe = regexp.MustCompile(`(?i)Pulse Height Variation:\s*([0-9.]+)\s*%`)
	diastolicVarRe   = regexp.MustCompile(`(?i)Diastolic Variation:\s*([0-9.]+)\s*%`)
	shapeDeviationRe = regexp.MustCompile(`(?i)Shape Deviation:\s*([0-9.]+)\s*%`)
	pulseLengthVarRe = regexp.MustCompile(`(?i)Pulse Length Variation:\s*([0-9.]+)\s*%`)
	overallQualityRe = regexp.MustCompile(`(?i)Overall Quality:\s*([0-9.]+)\s*%`)
	amplificationRe  = regexp.MustCompile(`(?i)PP Amplification:\s*([0-9.]+)\s*%`)

	brachialRe = regexp.MustCompile(`(?i)Brachial SYS/DIA:\s*([0-9.]+)/([0-9.]+)`)
	spRowRe    = regexp.MustCompile(`(?i)SP\s+([0-9.]+)\s+([0-9.]+)`)
	dpRowRe    = regexp.MustCompile(`(?i)DP\s+([0-9.]+)\s+([0-9.]+)`)
	ppRowRe    = regexp.MustCompile(`(?i)PP\s+([0-9.]+)\s+([0-9.]+)`)
	mapHRRowRe = regexp.MustCompile(`(?i)MAP HR\s+([0-9.]+)\s+([0-9.]+)`)
)

// ParseReport extracts the fixed field set from the text of a PWA Detailed
// Report. A label that is absent or malformed leaves its field nil; the
// layout is fixed, so nothing is inferred.
func ParseReport(text string) *domain.Record {
	normalized := whitespaceRe.ReplaceAllString(text, " ")

	r := &domain.Record{Kind: domain.KindDetailed}

	r.ScannedID = searchText(scannedIDRe, normalized)
	r.DateOfBirth = searchText(dobRe, normalized)
	r.ScanDate, r.ScanTime = scanStamp(normalized)

	if m := ageGenderRe.FindStringSubmatch(normalized); m != nil {
		r.Age = parseNumber(m[1])
		r.Gender = m[2]
	}

	if cm := searchNumber(heightRe, normalized); cm != nil {
		r.HeightM = domain.Float(math.Round(*cm) / 100)
	}

	r.PulseCount = searchNumber(pulsesRe, normalized)
	r.PulseHeight = searchNumber(pulseHeightRe, normalized)
	r.PulseHeightVariation = searchNumber(pulseHeightVarRe, normalized)
	r.DiastolicVariation = searchNumber(diastolicVarRe, normalized)
	r.ShapeDeviation = searchNumber(shapeDeviationRe, normalized)
	r.PulseLengthVariation = searchNumber(pulseLengthVarRe, normalized)
	r.OverallQuality = searchNumber(overallQualityRe, normalized)

	if m := heartPeriodRe.FindStringSubmatch(normalized); m != nil {
		r.HeartRate = parseNumber(m[1])
		r.PeriodMS = parseNumber(m[2])
	}
	if m := ejectionRe.FindStringSubmatch(normalized); m != nil {
		r.EjectionDurationMS = parseNumber(m[1])
		r.EjectionDurationPct = parseNumber(m[2])
	}

	r.AorticT2 = searchNumber(aorticT2Re, normalized)
	r.P1Height = searchNumber(p1HeightRe, normalized)
	r.AorticAugmentation = searchNumber(augmentRe, normalized)

	if m := aixRe.FindStringSubmatch(normalized); m != nil {
		r.AIxAPPP = parseNumber(m[1])
		r.AIxP2P1 = parseNumber(m[2])
	}
	r.AIxAPPPAtHR75 = searchNumber(aixHR75Re, normalized)
	r.BuckbergSEVR = searchNumber(buckbergRe, normalized)

	if m := ptiRe.FindStringSubmatch(normalized); m != nil {
		r.PTISystolic = parseNumber(m[1])
		r.PTIDiastolic = parseNumber(m[2])
	}
	r.EndSystolicPressure = searchNumber(endSystolicRe, normalized)
	if m := mapPairRe.FindStringSubmatch(normalized); m != nil {
		r.MAPSystolic = parseNumber(m[1])
		r.MAPDiastolic = parseNumber(m[2])
	}

	r.PPAmplification = searchNumber(amplificationRe, normalized)

	parsePressureTable(r, normalized)
	deriveMissing(r)

	return r
}

// parsePressureTable reads the peripheral/aortic pressures table. Peripheral
// SYS/DIA from the Brachial header line take precedence over the table rows.
func parsePressureTable(r *domain.Record, normalized string) {
	if m := brachialRe.FindStringSubmatch(normalized); m != nil {
		r.PeripheralSystolic = parseNumber(m[1])
		r.PeripheralDiastolic = parseNumber(m[2])
	}

	if m := spRowRe.FindStringSubmatch(normalized); m != nil {
		if r.PeripheralSystolic == nil {
			r.PeripheralSystolic = parseNumber(m[1])
		}
		r.AorticSystolic = parseNumber(m[2])
	}
	if m := dpRowRe.FindStringSubmatch(normalized); m != nil {
		if r.PeripheralDiastolic == nil {
			r.PeripheralDiastolic = parseNumber(m[1])
		}
		r.AorticDiastolic = parseNumber(m[2])
	}
	if m := ppRowRe.FindStringSubmatch(normalized); m != nil {
		r.PeripheralPulsePressure = parseNumber(m[1])
		r.AorticPulsePressure = parseNumber(m[2])
	}
	if m := mapHRRowRe.FindStringSubmatch(normalized); m != nil {
		r.PeripheralMean = parseNumber(m[1])
		// Table heart rate is the fallback when the summary line is absent.
		if r.HeartRate == nil {
			r.HeartRate = parseNumber(m[2])
		}
	}
}

// deriveMissing computes pulse pressures from SYS-DIA when the table rows
// were not present.
func deriveMissing(r *domain.Record) {
	if r.PeripheralPulsePressure == nil && r.PeripheralSystolic != nil && r.PeripheralDiastolic != nil {
		r.PeripheralPulsePressure = domain.Float(*r.PeripheralSystolic - *r.PeripheralDiastolic)
	}
	if r.AorticPulsePressure == nil && r.AorticSystolic != nil && r.AorticDiastolic != nil {
		r.AorticPulsePressure = domain.Float(*r.AorticSystolic - *r.AorticDiastolic)
	}
}

// scanStamp returns the last date+time stamp in the text. The report footer
// repeats the scan timestamp on every page, so the last occurrence is the
// reliable one.
func scanStamp(normalized string) (date, clock string) {
	matches := scanStampRe.FindAllStringSubmatch(normalized, -1)
	if len(matches) == 0 {
		return "", ""
	}
	last := matches[len(matches)-1]
	return last[1], last[2]
}

// PatientIDFromFilename derives the export patient ID from the PDF filename:
// the stem up to the first underscore.
func PatientIDFromFilename(filename string) string {
	stem := strings.TrimSuffix(filename, ".pdf")
	stem = strings.TrimSuffix(stem, ".PDF")
	if i := strings.Index(stem, "_"); i >= 0 {
		return stem[:i]
	}
	return stem
}

func searchText(re *regexp.Regexp, text string) string {
	if m := re.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

func searchNumber(re *regexp.Regexp, text string) *float64 {
	if m := re.FindStringSubmatch(text); m != nil {
		return parseNumber(m[1])
	}
	return nil
}

func parseNumber(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &v
}
