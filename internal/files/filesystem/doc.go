// Package filesystem abstracts file access behind FileSystemProvider so the
// tabular readers and the source-file inspector can be tested without
// touching disk.
//
// Three implementations exist: OSFileSystem for production reads,
// MemoryFileSystem for unit tests, and EmbedFileSystem for walking the
// embedded project templates.
package filesystem
