// Package scaffold materializes a new project directory from a bundled
// template tree. It powers the "expresskit new" command: it resolves the
// target path, creates or reuses the directory, copies the template with a
// fixed exclusion filter, and restores the dot-free "gitignore" alias to its
// intended ".gitignore" name after the copy.
package scaffold
