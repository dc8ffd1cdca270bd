// Package publish uploads rendered documents to S3-compatible object
// storage.
package publish
