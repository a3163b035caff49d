// Package port probes local TCP port availability.
//
// Before a tunnel is added, the local port is probed with a short-lived
// bind on 127.0.0.1:
//
//	if port.InUse(8080) {
//	    // something else is listening there
//	}
//
// The probe runs after the duplicate check in the registry, so a port
// that is busy because its own tunnel is live still reports as a
// duplicate rather than as in use.
package port
