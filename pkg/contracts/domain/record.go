package domain

// ReportKind classifies the text content of a PWA PDF.
type ReportKind string

const (
	// KindDetailed is a PWA Detailed Report, the only kind that is parsed.
	KindDetailed ReportKind = "detailed"
	// KindClinical is a PWA Clinical Report, which carries summary values
	// only and is rejected.
	KindClinical ReportKind = "clinical"
	// KindUnrecognized is anything else, including PDFs without a text layer.
	KindUnrecognized ReportKind = "unrecognized"
)

// Rejected rows carry one of these messages in the Patient ID column.
// The wording is kept byte-identical to the legacy export so downstream
// spreadsheets keep matching on it.
const (
	ClinicalReportMessage     = "Recognized as a Clinical Report, only upload the Detailed Reports"
	UnrecognizedReportMessage = "Not recognized as a PWA Detailed Report"
)

// Record is one row of the export: every field the converter extracts from a
// single PWA Detailed Report, plus bookkeeping assigned during dataset
// preparation. Numeric fields are pointers so a missing label on the report
// stays distinguishable from a measured zero.
type Record struct {
	SourceFile string
	SourcePath string
	Kind       ReportKind

	PatientID string // derived from the filename; carries the rejection message on rejected rows
	ScannedID string // Patient ID as printed inside the report
	ScanDate  string // dd/mm/yyyy as printed
	ScanTime  string // HH:MM or HH:MM:SS
	Recording int    // 1-based recording number per patient, 0 until assigned
	Analyzed  bool   // true when the row was used in an averaged pair

	DateOfBirth string // dd/mm/yyyy
	Gender      string

	Age                     *float64
	HeightM                 *float64
	PulseCount              *float64
	PulseHeight             *float64
	PulseHeightVariation    *float64
	DiastolicVariation      *float64
	ShapeDeviation          *float64
	PulseLengthVariation    *float64
	OverallQuality          *float64
	PeripheralSystolic      *float64
	PeripheralDiastolic     *float64
	PeripheralPulsePressure *float64
	PeripheralMean          *float64
	AorticSystolic          *float64
	AorticDiastolic         *float64
	AorticPulsePressure     *float64
	HeartRate               *float64
	PPAmplification         *float64
	PeriodMS                *float64
	EjectionDurationMS      *float64
	EjectionDurationPct     *float64
	AorticT2                *float64
	P1Height                *float64
	AorticAugmentation      *float64
	AIxAPPP                 *float64
	AIxP2P1                 *float64
	AIxAPPPAtHR75           *float64
	BuckbergSEVR            *float64
	PTISystolic             *float64
	PTIDiastolic            *float64
	EndSystolicPressure     *float64
	MAPSystolic             *float64
	MAPDiastolic            *float64
}

// Rejected reports whether this row is a rejection placeholder rather than a
// parsed Detailed Report.
func (r *Record) Rejected() bool {
	return r.Kind != KindDetailed
}

// NewRejected builds a placeholder row for a PDF that is not a Detailed
// Report. Only the source file and the message survive; every other cell
// stays empty.
func NewRejected(kind ReportKind, sourceFile, sourcePath string) *Record {
	message := UnrecognizedReportMessage
	if kind == KindClinical {
		message = ClinicalReportMessage
	}
	return &Record{
		SourceFile: sourceFile,
		SourcePath: sourcePath,
		Kind:       kind,
		PatientID:  message,
	}
}

// Float returns a pointer to a freshly allocated float64. Parser and test
// shorthand for populating optional fields.
func Float(v float64) *float64 {
	return &v
}
