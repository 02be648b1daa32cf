package remote

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSession records whether Close was called.
type fakeSession struct {
	data     []byte
	fetchErr error
	closed   bool
}

func (s *fakeSession) Fetch(path string) ([]byte, error) {
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.data, nil
}

func (s *fakeSession) Close() error {
	s.closed = true
	return nil
}

type fakeClient struct {
	session    *fakeSession
	connectErr error
}

func (c *fakeClient) Connect(ctx context.Context) (Session, error) {
	if c.connectErr != nil {
		return nil, c.connectErr
	}
	return c.session, nil
}

func TestWithSession(t *testing.T) {
	t.Run("ClosesOnSuccess", func(t *testing.T) {
		sess := &fakeSession{data: []byte("ok")}
		client := &fakeClient{session: sess}

		err := WithSession(context.Background(), client, func(s Session) error {
			_, err := s.Fetch("/outbound/inventory.csv")
			return err
		})

		assert.NoError(t, err)
		assert.True(t, sess.closed)
	})

	t.Run("ClosesOnFetchFailure", func(t *testing.T) {
		sess := &fakeSession{fetchErr: &TransferError{Path: "/x", Err: errors.New("gone")}}
		client := &fakeClient{session: sess}

		err := WithSession(context.Background(), client, func(s Session) error {
			_, err := s.Fetch("/x")
			return err
		})

		require.Error(t, err)
		var te *TransferError
		assert.True(t, errors.As(err, &te))
		// Teardown must happen even when the fetch fails.
		assert.True(t, sess.closed)
	})

	t.Run("ConnectFailureSkipsFn", func(t *testing.T) {
		client := &fakeClient{connectErr: &ConnectionError{Host: "host:22", Err: errors.New("refused")}}

		called := false
		err := WithSession(context.Background(), client, func(s Session) error {
			called = true
			return nil
		})

		require.Error(t, err)
		var ce *ConnectionError
		assert.True(t, errors.As(err, &ce))
		assert.False(t, called)
	})
}

func TestConnect(t *testing.T) {
	t.Run("UnreachableHost", func(t *testing.T) {
		client := NewClient(Config{
			Host:           "localhost",
			Port:           9,
			User:           "feed",
			Password:       "secret",
			TimeoutSeconds: 1,
		})

		sess, err := client.Connect(context.Background())
		require.Error(t, err)
		assert.Nil(t, sess)

		var ce *ConnectionError
		assert.True(t, errors.As(err, &ce))
	})

	t.Run("MissingPrivateKey", func(t *testing.T) {
		client := NewClient(Config{
			Host:           "localhost",
			Port:           22,
			User:           "feed",
			PrivateKeyPath: "/nonexistent/id_rsa",
			TimeoutSeconds: 1,
		})

		_, err := client.Connect(context.Background())
		require.Error(t, err)

		var ce *ConnectionError
		assert.True(t, errors.As(err, &ce))
		assert.Contains(t, err.Error(), "private key")
	})
}

func TestErrorMessages(t *testing.T) {
	ce := &ConnectionError{Host: "ftp.example.com:22", Err: errors.New("refused")}
	assert.Contains(t, ce.Error(), "ftp.example.com:22")
	assert.Equal(t, "refused", errors.Unwrap(ce).Error())

	te := &TransferError{Path: "/outbound/inventory.csv", Err: errors.New("no such file")}
	assert.Contains(t, te.Error(), "/outbound/inventory.csv")
	assert.Equal(t, "no such file", errors.Unwrap(te).Error())
}
