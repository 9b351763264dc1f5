// Package pairing selects and averages pairs of recordings for patients
// with multiple valid entries. The automatic policy picks the two most
// similar recordings; a manual overrides file can pin the pair per patient.
package pairing

import (
	"math"

	"pwacli/pkg/contracts/domain"
)

// Mode selects which pressures drive the closest-pair search.
type Mode int

const (
	// ModeCombined matches on peripheral SYS, DIA and MEAN pressure.
	ModeCombined Mode = 1
	// ModeSystolicOnly matches on peripheral systolic pressure alone, with
	// the diastolic difference breaking distance ties.
	ModeSystolicOnly Mode = 2
)

// Valid reports whether m is a known analysis mode.
func (m Mode) Valid() bool {
	return m == ModeCombined || m == ModeSystolicOnly
}

// fields returns the accessors for the pressures this mode matches on.
func (m Mode) fields() []func(*domain.Record) *float64 {
	systolic := func(r *domain.Record) *float64 { return r.PeripheralSystolic }
	if m == ModeSystolicOnly {
		return []func(*domain.Record) *float64{systolic}
	}
	return []func(*domain.Record) *float64{
		systolic,
		func(r *domain.Record) *float64 { return r.PeripheralDiastolic },
		func(r *domain.Record) *float64 { return r.PeripheralMean },
	}
}

// Result is the outcome of the pairing/averaging step.
type Result struct {
	// Averaged holds one averaged record per paired patient, in the order
	// the patients first appear in the input.
	Averaged []*domain.Record
	// Kept flags the individual records that were used in a pair.
	Kept map[*domain.Record]bool
	// Pairs maps patient ID to the chosen pair.
	Pairs map[string][2]*domain.Record
}

// BuildAnalyzed groups regular records by patient, chooses a pair per
// patient (manual override when given and resolvable, closest pair
// otherwise) and averages it. Patients with fewer than two valid recordings
// are skipped.
func BuildAnalyzed(records []*domain.Record, mode Mode, manual map[string][2]string) *Result {
	if !mode.Valid() {
		mode = ModeCombined
	}

	res := &Result{
		Kept:  make(map[*domain.Record]bool),
		Pairs: make(map[string][2]*domain.Record),
	}

	groups, order := groupByPatient(records)
	for _, patientID := range order {
		valid := validRows(groups[patientID], mode)

		pair, ok := resolveManual(valid, manual[patientID])
		if !ok {
			pair, ok = ClosestPair(valid, mode)
		}
		if !ok {
			continue
		}

		res.Averaged = append(res.Averaged, AveragePair(pair[0], pair[1]))
		res.Kept[pair[0]] = true
		res.Kept[pair[1]] = true
		res.Pairs[patientID] = pair
	}

	return res
}

// groupByPatient collects regular rows per patient, preserving first-seen
// patient order.
func groupByPatient(records []*domain.Record) (map[string][]*domain.Record, []string) {
	groups := make(map[string][]*domain.Record)
	var order []string
	for _, r := range records {
		if r.Rejected() {
			continue
		}
		if _, seen := groups[r.PatientID]; !seen {
			order = append(order, r.PatientID)
		}
		groups[r.PatientID] = append(groups[r.PatientID], r)
	}
	return groups, order
}

// validRows filters to rows where every analysis field of the mode is
// present.
func validRows(rows []*domain.Record, mode Mode) []*domain.Record {
	fields := mode.fields()
	var valid []*domain.Record
	for _, r := range rows {
		complete := true
		for _, f := range fields {
			if f(r) == nil {
				complete = false
				break
			}
		}
		if complete {
			valid = append(valid, r)
		}
	}
	return valid
}

// resolveManual maps a pair of source file names onto rows of the valid
// group. Both names must resolve to distinct valid rows, otherwise the
// override is ignored and the automatic pair is used.
func resolveManual(valid []*domain.Record, names [2]string) ([2]*domain.Record, bool) {
	if names[0] == "" || names[1] == "" || names[0] == names[1] {
		return [2]*domain.Record{}, false
	}
	byName := make(map[string]*domain.Record, len(valid))
	for _, r := range valid {
		byName[r.SourceFile] = r
	}
	a, okA := byName[names[0]]
	b, okB := byName[names[1]]
	if !okA || !okB {
		return [2]*domain.Record{}, false
	}
	return [2]*domain.Record{a, b}, true
}

// ClosestPair returns the two rows with the smallest Euclidean distance over
// the mode's analysis fields. In systolic-only mode, pairs at equal distance
// are split by the smaller absolute diastolic difference. Needs at least two
// valid rows.
func ClosestPair(valid []*domain.Record, mode Mode) ([2]*domain.Record, bool) {
	if len(valid) < 2 {
		return [2]*domain.Record{}, false
	}

	fields := mode.fields()
	systolicOnly := mode == ModeSystolicOnly

	best := [2]*domain.Record{}
	minDistance := math.Inf(1)
	minDiastolicDiff := math.Inf(1)
	found := false

	for i := 0; i < len(valid)-1; i++ {
		for j := i + 1; j < len(valid); j++ {
			var sum float64
			for _, f := range fields {
				d := *f(valid[i]) - *f(valid[j])
				sum += d * d
			}
			distance := math.Sqrt(sum)

			diastolicDiff := math.Inf(1)
			if systolicOnly {
				if a, b := valid[i].PeripheralDiastolic, valid[j].PeripheralDiastolic; a != nil && b != nil {
					diastolicDiff = math.Abs(*a - *b)
				}
			}

			switch {
			case distance < minDistance:
				minDistance = distance
				minDiastolicDiff = diastolicDiff
				best = [2]*domain.Record{valid[i], valid[j]}
				found = true
			case distance == minDistance && systolicOnly && diastolicDiff < minDiastolicDiff:
				minDiastolicDiff = diastolicDiff
				best = [2]*domain.Record{valid[i], valid[j]}
			}
		}
	}

	return best, found
}

// AveragePair produces the averaged row for a pair: numeric columns take the
// mean of the values present, text columns the first non-empty value.
// Bookkeeping columns (source file, scan stamps, recording number) are not
// part of the averaged layout.
func AveragePair(a, b *domain.Record) *domain.Record {
	avg := &domain.Record{Kind: domain.KindDetailed}
	for _, col := range domain.AveragedColumns() {
		switch {
		case col.Number != nil:
			va, vb := *col.Number(a), *col.Number(b)
			switch {
			case va != nil && vb != nil:
				*col.Number(avg) = domain.Float((*va + *vb) / 2)
			case va != nil:
				*col.Number(avg) = domain.Float(*va)
			case vb != nil:
				*col.Number(avg) = domain.Float(*vb)
			}
		case col.Text != nil:
			if v := *col.Text(a); v != "" {
				*col.Text(avg) = v
			} else {
				*col.Text(avg) = *col.Text(b)
			}
		}
	}
	return avg
}
