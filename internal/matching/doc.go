// Package matching selects the catalog recording, release and artist credit
// that best describe a local audio file.
//
// Every candidate is scored as a sum of non-negative penalty terms; lower is
// better and zero means every evaluated signal agreed. The Resolver keeps the
// individual terms as a Breakdown so decisions can be logged and tested, and
// collapses them to a single integer only when comparing candidates. Ties go
// to the candidate that appeared first in the catalog response.
//
// Everything here is pure computation over already-fetched candidate lists:
// no I/O, no shared mutable state. A single Resolver may be used from many
// goroutines.
package matching
