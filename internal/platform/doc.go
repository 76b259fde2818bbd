// Package platform hides the few places where generation behaves differently
// per operating system: applying Unix permission bits to generated files and
// detecting whether the user launched the tool from cmd.exe, which changes the
// shell syntax printed in the next-steps instructions.
package platform
