package remote

import "fmt"

// ConnectionError indicates the remote session could not be established
// (unreachable host, handshake failure, bad credentials). Fatal to a sync run.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("sftp connection to %s failed: %v", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// TransferError indicates the session was established but retrieving a file
// failed. Fatal to a sync run.
type TransferError struct {
	Path string
	Err  error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("sftp transfer of %s failed: %v", e.Path, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }
