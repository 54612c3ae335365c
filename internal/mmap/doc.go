// Package mmap provides read-only memory-mapped file access.
//
// A mapped File exposes the file contents as a byte slice without copying
// them through the heap, which lets packfile serve packed words straight
// from the page cache. The slice is valid until Close.
//
// # Platform Support
//
//   - Unix (Linux, macOS, BSD): mmap(2) with PROT_READ/MAP_SHARED
//   - Windows: CreateFileMapping/MapViewOfFile
package mmap
