package dataprocessing

import (
	"fmt"
	"sort"
	"strconv"

	"pwacli/pkg/contracts/domain"
)

// Prepare orders the parsed records for export and assigns bookkeeping:
// rejected rows sink to the bottom, regular rows sort by patient then scan
// date then scan time, duplicate re-exports of the same recording collapse
// to one row, and surviving regular rows get 1-based per-patient recording
// numbers.
func Prepare(records []*domain.Record) []*domain.Record {
	sorted := make([]*domain.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessRecord(sorted[i], sorted[j])
	})

	// Suppress duplicates among regular rows. The key matches how devices
	// re-export the same recording: identical patient, scan time and PTI
	// diastolic value.
	seen := make(map[string]bool)
	result := sorted[:0]
	for _, r := range sorted {
		if !r.Rejected() {
			key := dedupeKey(r)
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		result = append(result, r)
	}

	// Assign recording numbers per patient over the surviving regular rows.
	counts := make(map[string]int)
	for _, r := range result {
		if r.Rejected() {
			continue
		}
		counts[r.PatientID]++
		r.Recording = counts[r.PatientID]
	}

	return result
}

func dedupeKey(r *domain.Record) string {
	pti := ""
	if r.PTIDiastolic != nil {
		pti = strconv.FormatFloat(*r.PTIDiastolic, 'g', -1, 64)
	}
	return fmt.Sprintf("%s|%s|%s", r.PatientID, r.ScanTime, pti)
}

func lessRecord(a, b *domain.Record) bool {
	if a.Rejected() != b.Rejected() {
		return !a.Rejected()
	}
	if a.PatientID != b.PatientID {
		return a.PatientID < b.PatientID
	}
	if c := compareScanDates(a.ScanDate, b.ScanDate); c != 0 {
		return c < 0
	}
	return a.ScanTime < b.ScanTime
}

// compareScanDates orders chronologically when both sides parse as
// dd/mm/yyyy and falls back to string comparison otherwise.
func compareScanDates(a, b string) int {
	ta, okA := domain.ParseReportDate(a)
	tb, okB := domain.ParseReportDate(b)
	if okA && okB {
		switch {
		case ta.Before(tb):
			return -1
		case ta.After(tb):
			return 1
		default:
			return 0
		}
	}
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
