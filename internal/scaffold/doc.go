// Package scaffold generates a new Express API project. It loads the embedded
// scaffold plan, creates the root directory, runs every plan branch
// concurrently (a branch creates its subdirectory before writing its files)
// and joins them so the completion action runs exactly once.
package scaffold
