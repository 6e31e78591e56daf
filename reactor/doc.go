// File: reactor/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

// Package reactor provides the poll-mode event reactor owned by every native
// worker: epoll on Linux, an ErrNotSupported stub elsewhere.
package reactor
