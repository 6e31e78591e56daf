//go:build linux

package reactor_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-loops/api"
	"github.com/momentics/hioload-loops/reactor"
)

func TestReactor_EventfdReadiness(t *testing.T) {
	r, err := reactor.New()
	require.NoError(t, err)
	defer r.Close()

	efd, err := unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC)
	require.NoError(t, err)
	defer unix.Close(efd)

	require.NoError(t, r.Register(uintptr(efd), 42))

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], 1)
	_, err = unix.Write(efd, buf[:])
	require.NoError(t, err)

	events := make([]api.Event, 4)
	n, err := r.Wait(events, 1000)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	assert.Equal(t, uintptr(efd), events[0].Fd)
	assert.Equal(t, uintptr(42), events[0].UserData)
}

func TestReactor_WaitTimeout(t *testing.T) {
	r, err := reactor.New()
	require.NoError(t, err)
	defer r.Close()

	n, err := r.Wait(make([]api.Event, 1), 10)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestReactor_CloseTwice(t *testing.T) {
	r, err := reactor.New()
	require.NoError(t, err)
	require.NoError(t, r.Close())
	assert.NoError(t, r.Close())
}
