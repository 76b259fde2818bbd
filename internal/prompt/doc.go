// Package prompt implements the confirmation step that guards writing into a
// non-empty destination. Input is read through LineReader so the real
// terminal can be swapped for a scripted source in tests.
package prompt
