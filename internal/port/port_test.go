package port

import (
	"net"
	"testing"
)

func TestInUse(t *testing.T) {
	// Grab an ephemeral port so the test never collides with other
	// listeners on the machine.
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port

	if !InUse(port) {
		t.Errorf("InUse(%d) = false while a listener is bound", port)
	}

	l.Close()

	if InUse(port) {
		t.Errorf("InUse(%d) = true after the listener closed", port)
	}
}
