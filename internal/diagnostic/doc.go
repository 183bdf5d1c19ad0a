// Package diagnostic collects structured findings produced while verifying
// generated accessor programs.
//
// Key capabilities:
//   - Stack underflow and sort mismatch errors per instruction
//   - Unreachable instruction warnings
//   - A combined error suitable for wrapping
package diagnostic
