// Package errors provides structured error types for the MBE codec.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: byte offset, cell path, expected vs found
// values, Go/column type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseDecode, errors.KindFormat).
//		Offset(0x24).
//		Expected("CHNK", "XXXX").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.Truncated(errors.PhaseDecode, off, 8, 3)
//	err := errors.ValueType(errors.PhaseEncode, path, "string", "Int", v)
//
// The four kinds callers usually branch on have sentinels that match any phase:
//
//	if errors.Is(err, mbeerrors.ErrFormat) { ... }
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
