// File: api/role.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Roles a connector requests execution groups for.

package api

// Role selects which execution group a connector asks for.
type Role int

const (
	// RoleServerSelect accepts new connections.
	RoleServerSelect Role = iota
	// RoleServer services established server-side connections.
	RoleServer
	// RoleClient services client-side connections.
	RoleClient
)

// String returns the thread-name fragment for the role.
func (r Role) String() string {
	switch r {
	case RoleServerSelect:
		return "select"
	case RoleServer:
		return "server"
	case RoleClient:
		return "client"
	default:
		return "unknown"
	}
}
