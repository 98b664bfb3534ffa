// Package mixing provides the bookkeeping primitives used by
// history-based mixing algorithms: a bounded multi-slot rolling
// History and an inner-product Metric with a pluggable transform.
//
// Values held by a History or combined by a Metric are opaque to this
// package. Ownership of appended values passes to the history; callers
// must not mutate them afterward.
package mixing
