package models

import (
	"testing"
)

func TestStatusForDerivation(t *testing.T) {
	const viewerA, viewerB = uint(1), uint(2)

	tests := []struct {
		name    string
		conn    Connection
		wantA   string
		wantB   string
	}{
		{
			name:  "pending request from A",
			conn:  Connection{RequesterID: viewerA, AddresseeID: viewerB, Status: ConnectionPending},
			wantA: StatusPending,
			wantB: StatusRequestReceived,
		},
		{
			name:  "pending request from B",
			conn:  Connection{RequesterID: viewerB, AddresseeID: viewerA, Status: ConnectionPending},
			wantA: StatusRequestReceived,
			wantB: StatusPending,
		},
		{
			name:  "accepted is symmetric",
			conn:  Connection{RequesterID: viewerA, AddresseeID: viewerB, Status: ConnectionAccepted},
			wantA: StatusConnected,
			wantB: StatusConnected,
		},
		{
			name:  "unknown row status",
			conn:  Connection{RequesterID: viewerA, AddresseeID: viewerB, Status: "garbage"},
			wantA: StatusNotConnected,
			wantB: StatusNotConnected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.conn.StatusFor(viewerA); got != tt.wantA {
				t.Errorf("StatusFor(A) = %q, want %q", got, tt.wantA)
			}
			if got := tt.conn.StatusFor(viewerB); got != tt.wantB {
				t.Errorf("StatusFor(B) = %q, want %q", got, tt.wantB)
			}
		})
	}
}

// One side seeing pending must always mean the other sees request_received,
// and connected must be mutual, for every combination of endpoints.
func TestStatusSymmetryInvariant(t *testing.T) {
	for _, status := range []string{ConnectionPending, ConnectionAccepted} {
		conn := Connection{RequesterID: 7, AddresseeID: 9, Status: status}

		a := conn.StatusFor(7)
		b := conn.StatusFor(9)

		if a == StatusPending && b != StatusRequestReceived {
			t.Errorf("requester sees %q but addressee sees %q", a, b)
		}
		if a == StatusConnected && b != StatusConnected {
			t.Errorf("connected is not symmetric: %q vs %q", a, b)
		}
	}
}

func TestPeerOf(t *testing.T) {
	conn := Connection{RequesterID: 3, AddresseeID: 5}

	if got := conn.PeerOf(3); got != 5 {
		t.Errorf("PeerOf(3) = %d, want 5", got)
	}
	if got := conn.PeerOf(5); got != 3 {
		t.Errorf("PeerOf(5) = %d, want 3", got)
	}
}
