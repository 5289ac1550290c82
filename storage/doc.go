// Package storage defines the object store used to archive transcripts.
//
// Backends register themselves on import:
//
//   - storage/local: a directory on the local filesystem
//   - storage/s3: Amazon S3 and S3-compatible services
//
// Configuration:
//
//	storage:
//	  provider: s3
//	  bucket: transcripts
//	  region: eu-west-1
package storage
