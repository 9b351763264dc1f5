package dataprocessing

import (
	"strings"

	"pwacli/pkg/contracts/domain"
)

// Report markers as printed in the PDF header. Matching is case-insensitive
// because the text layer occasionally changes casing between device firmware
// versions.
const (
	detailedReportMarker = "PWA Detailed Report"
	clinicalReportMarker = "PWA Clinical Report"
)

// DetectKind classifies extracted report text. A Detailed marker wins over a
// Clinical one when both appear (combined exports print both headers).
func DetectKind(text string) domain.ReportKind {
	normalized := strings.ToLower(text)
	if strings.Contains(normalized, strings.ToLower(detailedReportMarker)) {
		return domain.KindDetailed
	}
	if strings.Contains(normalized, strings.ToLower(clinicalReportMarker)) {
		return domain.KindClinical
	}
	return domain.KindUnrecognized
}
