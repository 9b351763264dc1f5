package domain

// Column describes one workbook column: its header, how to read and write the
// backing Record field, and how it behaves during pair averaging and export.
// The registry below is the single source of truth for column order; the
// exporter, the averaging step and the tests all iterate it rather than
// hard-coding headers.
type Column struct {
	Header string

	// Date marks columns that are written as real date cells.
	Date bool

	// Averaged marks columns that appear in the Averaged Data sheet. Numeric
	// columns are averaged over the pair, text columns take the first
	// non-empty value.
	Averaged bool

	// Number points at the backing optional numeric field. Exactly one of
	// Number and Text is set unless Value overrides the cell entirely.
	Number func(*Record) **float64

	// Text points at the backing string field.
	Text func(*Record) *string

	// Value overrides the exported cell for computed columns
	// (Recording #, Analyed).
	Value func(*Record) any
}

// Columns lists every exported column in workbook order.
//
// "Analyed" is misspelled on purpose: the header is matched byte-for-byte by
// downstream analysis sheets.
var Columns = []Column{
	{Header: "Source File", Text: func(r *Record) *string { return &r.SourceFile }},
	{Header: "Patient ID", Averaged: true, Text: func(r *Record) *string { return &r.PatientID }},
	{Header: "Scanned ID", Text: func(r *Record) *string { return &r.ScannedID }},
	{Header: "Scan Date", Date: true, Text: func(r *Record) *string { return &r.ScanDate }},
	{Header: "Scan Time", Text: func(r *Record) *string { return &r.ScanTime }},
	{Header: "Recording #", Value: func(r *Record) any {
		if r.Rejected() || r.Recording == 0 {
			return nil
		}
		return r.Recording
	}},
	{Header: "Analyed", Value: func(r *Record) any {
		if r.Rejected() {
			return nil
		}
		if r.Analyzed {
			return "Yes"
		}
		return "No"
	}},
	{Header: "Date of Birth", Date: true, Averaged: true, Text: func(r *Record) *string { return &r.DateOfBirth }},
	{Header: "Age", Averaged: true, Number: func(r *Record) **float64 { return &r.Age }},
	{Header: "Gender", Averaged: true, Text: func(r *Record) *string { return &r.Gender }},
	{Header: "Height (m)", Averaged: true, Number: func(r *Record) **float64 { return &r.HeightM }},
	{Header: "# of Pulses", Averaged: true, Number: func(r *Record) **float64 { return &r.PulseCount }},
	{Header: "Pulse Height", Averaged: true, Number: func(r *Record) **float64 { return &r.PulseHeight }},
	{Header: "Pulse Height Variation (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.PulseHeightVariation }},
	{Header: "Diastolic Variation (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.DiastolicVariation }},
	{Header: "Shape Deviation (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.ShapeDeviation }},
	{Header: "Pulse Length Variation (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.PulseLengthVariation }},
	{Header: "Overall Quality (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.OverallQuality }},
	{Header: "Peripheral Systolic Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.PeripheralSystolic }},
	{Header: "Peripheral Diastolic Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.PeripheralDiastolic }},
	{Header: "Peripheral Pulse Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.PeripheralPulsePressure }},
	{Header: "Peripheral Mean Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.PeripheralMean }},
	{Header: "Aortic Systolic Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.AorticSystolic }},
	{Header: "Aortic Diastolic Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.AorticDiastolic }},
	{Header: "Aortic Pulse Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.AorticPulsePressure }},
	{Header: "Heart Rate (bpm)", Averaged: true, Number: func(r *Record) **float64 { return &r.HeartRate }},
	{Header: "Pulse Pressure Amplification (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.PPAmplification }},
	{Header: "Period (ms)", Averaged: true, Number: func(r *Record) **float64 { return &r.PeriodMS }},
	{Header: "Ejection Duration (ms)", Averaged: true, Number: func(r *Record) **float64 { return &r.EjectionDurationMS }},
	{Header: "Ejection Duration (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.EjectionDurationPct }},
	{Header: "Aortic T2 (ms)", Averaged: true, Number: func(r *Record) **float64 { return &r.AorticT2 }},
	{Header: "P1 Height (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.P1Height }},
	{Header: "Aortic Augmentation (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.AorticAugmentation }},
	{Header: "Aortic AIx AP/PP(%)", Averaged: true, Number: func(r *Record) **float64 { return &r.AIxAPPP }},
	{Header: "Aortic AIx P2/P1(%)", Averaged: true, Number: func(r *Record) **float64 { return &r.AIxP2P1 }},
	{Header: "Aortic AIx AP/PP @ HR75 (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.AIxAPPPAtHR75 }},
	{Header: "Buckberg SEVR (%)", Averaged: true, Number: func(r *Record) **float64 { return &r.BuckbergSEVR }},
	{Header: "PTI Systolic (mmHg.s/min)", Averaged: true, Number: func(r *Record) **float64 { return &r.PTISystolic }},
	{Header: "PTI Diastolic (mmHg.s/min)", Averaged: true, Number: func(r *Record) **float64 { return &r.PTIDiastolic }},
	{Header: "End Systolic Pressure (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.EndSystolicPressure }},
	{Header: "MAP Systolic (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.MAPSystolic }},
	{Header: "MAP Diastolic (mmHg)", Averaged: true, Number: func(r *Record) **float64 { return &r.MAPDiastolic }},
}

// Headers returns the header row for the full All Data / Kept Data layout.
func Headers() []string {
	headers := make([]string, len(Columns))
	for i, c := range Columns {
		headers[i] = c.Header
	}
	return headers
}

// AveragedColumns returns the columns that make up the Averaged Data sheet,
// in workbook order.
func AveragedColumns() []Column {
	var cols []Column
	for _, c := range Columns {
		if c.Averaged {
			cols = append(cols, c)
		}
	}
	return cols
}

// CellValue resolves the exported value of this column for a record. Missing
// numeric fields and empty strings come back as nil so the cell stays blank.
func (c Column) CellValue(r *Record) any {
	switch {
	case c.Value != nil:
		return c.Value(r)
	case c.Number != nil:
		if p := *c.Number(r); p != nil {
			return *p
		}
		return nil
	case c.Text != nil:
		if s := *c.Text(r); s != "" {
			return s
		}
		return nil
	}
	return nil
}
