// Package errors provides structured error types for the iec-61131-3 library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: field path, data type name, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseResolve, errors.KindUnknownDataType).
//		TypeName("ST_Missing").
//		Detail("referenced from ST_Main.Data").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UnknownDataType("ST_Missing", local, provided)
//	err := errors.OutOfBounds(path, 126, 12)
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
