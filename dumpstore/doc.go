// Package dumpstore abstracts where posting dumps and result reports live.
//
// Store is the interface for reading dumps and writing reports.
// Implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem
//   - MemoryStore: in-memory, for tests
//   - s3.Store: Amazon S3 with streaming reads and managed uploads
//   - minio.Store: MinIO and other S3-compatible object stores
//
// Dumps are consumed strictly sequentially, so handles are plain readers;
// there is no random access. Files ending in .gz, .zst or .lz4 are
// transparently decompressed by ReadLines.
package dumpstore
