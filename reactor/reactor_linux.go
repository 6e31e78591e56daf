//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-loops/api"
)

// linuxReactor is an epoll-based event reactor. User data lives beside the
// epoll set because EpollEvent has no pointer-sized payload on every arch.
type linuxReactor struct {
	epfd int
	once sync.Once

	mu    sync.RWMutex
	udata map[int32]uintptr
}

// NewReactor constructs a new platform-specific EventReactor for Linux.
func NewReactor() (EventReactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, err
	}
	return &linuxReactor{epfd: epfd, udata: make(map[int32]uintptr)}, nil
}

// Register adds file descriptor to epoll.
func (r *linuxReactor) Register(fd uintptr, udata uintptr) error {
	event := &unix.EpollEvent{
		Events: unix.EPOLLIN | unix.EPOLLOUT | unix.EPOLLET,
		Fd:     int32(fd),
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, int(fd), event); err != nil {
		return err
	}
	r.udata[event.Fd] = udata
	return nil
}

// Wait waits for epoll events and fills the result into events slice.
func (r *linuxReactor) Wait(events []api.Event, timeoutMs int) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	rawEvents := make([]unix.EpollEvent, len(events))
	n, err := unix.EpollWait(r.epfd, rawEvents, timeoutMs)
	if err != nil {
		if err == unix.EINTR {
			return 0, nil
		}
		return 0, err
	}
	r.mu.RLock()
	for i := 0; i < n; i++ {
		events[i] = api.Event{
			Fd:       uintptr(rawEvents[i].Fd),
			UserData: r.udata[rawEvents[i].Fd],
		}
	}
	r.mu.RUnlock()
	return n, nil
}

// Close closes the epoll instance. Only the first call releases the fd.
func (r *linuxReactor) Close() error {
	var err error
	r.once.Do(func() {
		err = unix.Close(r.epfd)
	})
	return err
}
