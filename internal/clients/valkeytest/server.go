// Package valkeytest runs an in-process server speaking enough RESP3 for the
// valkey-go client: the connection handshake plus GET, SET, EXPIRE and DEL.
package valkeytest

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type Server struct {
	ln net.Listener

	mu     sync.Mutex
	data   map[string]string
	ttl    map[string]int64
	fail   map[string]string
	drops  map[string]int
	calls  map[string]int
	conns  map[net.Conn]struct{}
	closed bool
	wg     sync.WaitGroup
}

// NewServer listens on a random local port and stops when the test ends.
func NewServer(t testing.TB) *Server {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("[valkeytest] listen: %v", err)
	}
	s := &Server{
		ln:    ln,
		data:  make(map[string]string),
		ttl:   make(map[string]int64),
		fail:  make(map[string]string),
		drops: make(map[string]int),
		calls: make(map[string]int),
		conns: make(map[net.Conn]struct{}),
	}
	s.wg.Add(1)
	go s.serve()
	t.Cleanup(s.Close)
	return s
}

func (s *Server) Addr() string {
	return s.ln.Addr().String()
}

func (s *Server) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for c := range s.conns {
		c.Close()
	}
	s.mu.Unlock()

	s.ln.Close()
	s.wg.Wait()
}

// Put stores a value directly, bypassing the protocol.
func (s *Server) Put(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *Server) Value(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

// TTL returns the seconds last set by EXPIRE on key.
func (s *Server) TTL(key string) (int64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.ttl[key]
	return v, ok
}

// FailKey makes every command on key answer with the error reply msg, e.g.
// "WRONGTYPE Operation against a key holding the wrong kind of value".
func (s *Server) FailKey(key, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[key] = msg
}

// DropNext closes the connection instead of answering the next n commands
// named cmd.
func (s *Server) DropNext(cmd string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drops[strings.ToUpper(cmd)] += n
}

// Calls counts the commands named cmd received so far, dropped ones included.
func (s *Server) Calls(cmd string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[strings.ToUpper(cmd)]
}

func (s *Server) serve() {
	defer s.wg.Done()
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			return
		}
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			conn.Close()
			return
		}
		s.conns[conn] = struct{}{}
		s.mu.Unlock()

		s.wg.Add(1)
		go s.handle(conn)
	}
}

func (s *Server) handle(conn net.Conn) {
	defer s.wg.Done()
	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
	}()

	r := bufio.NewReader(conn)
	w := bufio.NewWriter(conn)
	for {
		args, err := readCommand(r)
		if err != nil {
			return
		}
		reply, drop := s.exec(args)
		if drop {
			return
		}
		if _, err := w.WriteString(reply); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}
	}
}

func (s *Server) exec(args []string) (string, bool) {
	if len(args) == 0 {
		return "-ERR empty command\r\n", false
	}
	name := strings.ToUpper(args[0])

	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[name]++
	if s.drops[name] > 0 {
		s.drops[name]--
		return "", true
	}
	if len(args) > 1 {
		if msg, ok := s.fail[args[1]]; ok && name != "CLIENT" {
			return "-" + msg + "\r\n", false
		}
	}

	switch name {
	case "HELLO":
		return "%2\r\n+proto\r\n:3\r\n+version\r\n+7.2.4\r\n", false
	case "CLUSTER":
		return "-ERR This instance has cluster support disabled\r\n", false
	case "PING":
		return "+PONG\r\n", false
	case "GET":
		v, ok := s.data[args[1]]
		if !ok {
			return "_\r\n", false
		}
		return bulk(v), false
	case "SET":
		s.data[args[1]] = args[2]
		delete(s.ttl, args[1])
		return "+OK\r\n", false
	case "EXPIRE":
		if _, ok := s.data[args[1]]; !ok {
			return ":0\r\n", false
		}
		secs, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return "-ERR value is not an integer or out of range\r\n", false
		}
		s.ttl[args[1]] = secs
		return ":1\r\n", false
	case "DEL":
		n := 0
		for _, k := range args[1:] {
			if _, ok := s.data[k]; ok {
				delete(s.data, k)
				delete(s.ttl, k)
				n++
			}
		}
		return ":" + strconv.Itoa(n) + "\r\n", false
	default:
		return "+OK\r\n", false
	}
}

func bulk(v string) string {
	return "$" + strconv.Itoa(len(v)) + "\r\n" + v + "\r\n"
}

// readCommand reads one RESP array of bulk strings.
func readCommand(r *bufio.Reader) ([]string, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}
	if len(line) < 2 || line[0] != '*' {
		return nil, fmt.Errorf("[valkeytest] expected array, got %q", line)
	}
	n, err := strconv.Atoi(line[1:])
	if err != nil {
		return nil, err
	}

	args := make([]string, n)
	for i := range args {
		head, err := readLine(r)
		if err != nil {
			return nil, err
		}
		if len(head) < 2 || head[0] != '$' {
			return nil, fmt.Errorf("[valkeytest] expected bulk string, got %q", head)
		}
		size, err := strconv.Atoi(head[1:])
		if err != nil {
			return nil, err
		}
		buf := make([]byte, size+2)
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, err
		}
		args[i] = string(buf[:size])
	}
	return args, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(line, "\r\n"), nil
}
