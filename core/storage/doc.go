// Package storage provides object storage access via the Minio S3 client.
//
// Import uploads and export artifacts produced by the catalog feature are
// archived here so a data import can always be traced back to the exact file
// an operator submitted.
//
// All operations go through the Client interface, which has a testify mock in
// the mocks subpackage.
package storage
