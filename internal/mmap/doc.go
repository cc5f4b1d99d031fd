// Package mmap provides read-only memory-mapped file access.
//
// The local blob store maps point files instead of copying them through a
// read buffer; the CSV decoder then scans the mapping front to back, which
// is why every mapping is opened with a sequential access hint.
//
//	m, err := mmap.Open("points.csv")
//	if err != nil { ... }
//	defer m.Close()
//	data := m.Bytes()
//
// Unix uses mmap(2) and madvise(2). Windows uses CreateFileMapping and
// MapViewOfFile; the access hint is a no-op there.
//
// Bytes must not be used after Close.
package mmap
