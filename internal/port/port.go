package port

import (
	"net"
	"strconv"
)

// InUse reports whether something is already listening on the local
// port. It briefly binds 127.0.0.1; a failed bind means the port is
// taken.
func InUse(port int) bool {
	l, err := net.Listen("tcp", net.JoinHostPort("127.0.0.1", strconv.Itoa(port)))
	if err != nil {
		return true
	}
	l.Close()
	return false
}
