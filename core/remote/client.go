package remote

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"time"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// Session is a live SFTP session. One file is fetched per call; there is no
// streaming or resumption.
type Session interface {
	// Fetch retrieves the full contents of the file at path.
	Fetch(path string) ([]byte, error)
	// Close tears down the session. Safe to call after a failed Fetch.
	Close() error
}

// Client opens SFTP sessions against the configured distributor host.
// Each invocation opens and tears down its own session; there is no pooling.
type Client interface {
	Connect(ctx context.Context) (Session, error)
}

// NewClient creates a Client for the configured host.
func NewClient(cfg Config) Client {
	return &sftpClient{cfg: cfg}
}

type sftpClient struct {
	cfg Config
}

func (c *sftpClient) Connect(ctx context.Context) (Session, error) {
	addr := fmt.Sprintf("%s:%d", c.cfg.Host, c.cfg.Port)

	auth, err := c.authMethods()
	if err != nil {
		return nil, &ConnectionError{Host: addr, Err: err}
	}

	timeout := c.cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}

	sshConfig := &ssh.ClientConfig{
		User: c.cfg.User,
		Auth: auth,
		// The distributor rotates hosts behind a load balancer, so host keys
		// are not pinned. Matches the legacy integration.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         time.Duration(timeout) * time.Second,
	}

	dialer := &net.Dialer{Timeout: sshConfig.Timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &ConnectionError{Host: addr, Err: err}
	}

	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, sshConfig)
	if err != nil {
		_ = conn.Close()
		return nil, &ConnectionError{Host: addr, Err: err}
	}
	sshClient := ssh.NewClient(sshConn, chans, reqs)

	sftpClient, err := sftp.NewClient(sshClient)
	if err != nil {
		_ = sshClient.Close()
		return nil, &ConnectionError{Host: addr, Err: err}
	}

	return &sftpSession{sftp: sftpClient, ssh: sshClient}, nil
}

// authMethods selects private key auth when a key path is configured,
// otherwise password auth.
func (c *sftpClient) authMethods() ([]ssh.AuthMethod, error) {
	if c.cfg.PrivateKeyPath != "" {
		keyData, err := os.ReadFile(c.cfg.PrivateKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read private key: %w", err)
		}
		signer, err := ssh.ParsePrivateKey(keyData)
		if err != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err)
		}
		return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
	}
	return []ssh.AuthMethod{ssh.Password(c.cfg.Password)}, nil
}

type sftpSession struct {
	sftp *sftp.Client
	ssh  *ssh.Client
}

func (s *sftpSession) Fetch(path string) ([]byte, error) {
	f, err := s.sftp.Open(path)
	if err != nil {
		return nil, &TransferError{Path: path, Err: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &TransferError{Path: path, Err: err}
	}
	return data, nil
}

func (s *sftpSession) Close() error {
	// Close both layers; report the first failure but attempt both.
	sftpErr := s.sftp.Close()
	sshErr := s.ssh.Close()
	if sftpErr != nil {
		return sftpErr
	}
	return sshErr
}

// WithSession runs fn inside a scoped session. The session is always closed,
// whether fn succeeds or fails.
func WithSession(ctx context.Context, c Client, fn func(Session) error) error {
	sess, err := c.Connect(ctx)
	if err != nil {
		return err
	}
	defer sess.Close()
	return fn(sess)
}
