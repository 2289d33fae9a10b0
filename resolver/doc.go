// Package resolver links extracted data-type units into schema node graphs.
//
// Member types are written as raw text in declarations; the resolver turns
// that text into concrete schema nodes by consulting the IEC primitive name
// table, STRING/WSTRING and ARRAY syntax, the other declarations of the
// batch, and an optional map of externally provided types. Declarations may
// reference each other in any order; resolution is lazy and memoized, and
// cyclic references are reported as errors.
package resolver
