package connmgr

import (
	"bufio"
	"net"
	"testing"
	"time"

	"cardroom/internal/config"
	"cardroom/internal/players"
	"cardroom/internal/rooms"
	"cardroom/internal/router"
)

func startTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Defaults()
	cfg.IP = "127.0.0.1"
	cfg.Port = 0

	playerRegistry := players.New()
	roomRegistry := rooms.New(0)
	rt := router.New(playerRegistry, roomRegistry)
	s := New(cfg, playerRegistry, roomRegistry, rt)

	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	deadline := time.Now().Add(2 * time.Second)
	for s.Addr() == nil {
		if time.Now().After(deadline) {
			t.Fatal("server did not start listening in time")
		}
		time.Sleep(time.Millisecond)
	}

	t.Cleanup(func() {
		s.Stop()
		<-errCh
	})
	return s
}

func dial(t *testing.T, s *Server) (net.Conn, *bufio.Scanner) {
	t.Helper()
	conn, err := net.Dial("tcp", s.Addr().String())
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	return conn, bufio.NewScanner(conn)
}

func readLine(t *testing.T, scanner *bufio.Scanner) string {
	t.Helper()
	if !scanner.Scan() {
		t.Fatalf("expected a line, scanner stopped: %v", scanner.Err())
	}
	return scanner.Text()
}

func TestConnectAndPingRoundTrip(t *testing.T) {
	s := startTestServer(t)
	conn, scanner := dial(t, s)
	defer conn.Close()

	conn.Write([]byte("0|||name=Alice\n"))
	connected := readLine(t, scanner)
	if len(connected) < 3 || connected[:3] != "100" {
		t.Fatalf("expected a CONNECTED (100) reply, got %q", connected)
	}

	conn.Write([]byte("4||\n"))
	pong := readLine(t, scanner)
	if len(pong) < 3 || pong[:3] != "104" {
		t.Fatalf("expected a PONG (104) reply, got %q", pong)
	}
}

func TestJoinRoomNotifiesExistingMember(t *testing.T) {
	s := startTestServer(t)

	aliceConn, aliceScanner := dial(t, s)
	defer aliceConn.Close()
	bobConn, bobScanner := dial(t, s)
	defer bobConn.Close()

	aliceConn.Write([]byte("0|||name=Alice\n"))
	readLine(t, aliceScanner)
	bobConn.Write([]byte("0|||name=Bob\n"))
	readLine(t, bobScanner)

	aliceConn.Write([]byte("2||\n"))
	readLine(t, aliceScanner) // Alice's own ROOM_JOINED reply

	bobConn.Write([]byte("2||\n"))
	readLine(t, bobScanner) // Bob's own ROOM_JOINED reply

	notice := readLine(t, aliceScanner) // broadcast to Alice that Bob joined
	if len(notice) < 3 || notice[:3] != "101" {
		t.Fatalf("expected a ROOM_JOINED notice to Alice, got %q", notice)
	}
}
