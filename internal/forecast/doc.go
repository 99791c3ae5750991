// Package forecast projects PO and PAR activity from monthly history and
// scores how steady and balanced that history is.
//
// Every function here is pure: it takes a chronologically ordered
// []domain.PeriodRecord and returns a value. Nothing is cached or shared
// between calls, so callers may run analyses for different windows
// concurrently.
package forecast
