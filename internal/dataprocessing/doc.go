// Package dataprocessing turns raw PWA report text into export-ready
// records: report-type detection, labeled-field extraction, dataset
// preparation (ordering, duplicate suppression, recording numbers) and the
// concurrent batch processor that drives it all.
package dataprocessing
