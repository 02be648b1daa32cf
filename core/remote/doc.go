// Package remote implements the SFTP client used to pull delimited inventory
// files from the distributor's file drop.
//
// The access pattern is deliberately minimal: one connect-fetch-disconnect
// cycle per invocation, no retries, no session pooling. WithSession provides
// scoped acquisition so the session is torn down on every exit path, including
// a failed transfer.
//
// Failures are reported as *ConnectionError (session could not be
// established) or *TransferError (session up, file retrieval failed). Both
// are fatal to a sync run.
package remote
