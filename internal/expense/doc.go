// Package expense defines the domain types shared across the reporting
// pipeline: the raw and cleaned expense records, the tabular Dataset they
// live in, and the AnalysisResults bundle the analyzer produces.
//
// The types here carry no behavior beyond normalization and copying; the
// pipeline stages (loader, cleaner, analyzer, charts, report) operate on
// them without the types knowing about any stage.
package expense
