package connectivity

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckReachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer listener.Close()
	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				return
			}
			_ = conn.Close()
		}
	}()

	checker := NewChecker(listener.Addr().String(), time.Second)
	assert.True(t, checker.Check(context.Background()))
}

func TestCheckUnreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	assert.False(t, NewChecker(addr, time.Second).Check(context.Background()))
}

func TestDefaults(t *testing.T) {
	checker := NewChecker("", 0)
	assert.Equal(t, DefaultTarget, checker.Target())
	assert.Equal(t, DefaultTimeout, checker.timeout)
}
