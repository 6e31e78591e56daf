// File: internal/transport/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package transport detects which I/O backend the host supports. The native
// backend is epoll on Linux; everything else runs on the portable one.

package transport
