// Package introspect implements an opt-in, line-oriented debug service:
// one JSON request per connection, one JSON response back. It exists as
// operational tooling around the compiler/VM as a library — it adds no
// concurrency or module-system semantics to the language itself, and each
// connection runs synchronously start-to-finish with its own VM instance.
package introspect

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"strings"

	"github.com/minilang/minilang/internal/bytecode"
	"github.com/minilang/minilang/internal/compiler"
	"github.com/minilang/minilang/internal/parser"
	"github.com/minilang/minilang/internal/vm"
)

// Request is one newline-terminated JSON request.
type Request struct {
	Op     string `json:"op"`     // "disasm" or "run"
	Source string `json:"source"`
	Stdin  string `json:"stdin,omitempty"`
}

// Response is the corresponding JSON reply.
type Response struct {
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server accepts connections and handles each with Handle.
type Server struct {
	listener net.Listener
}

// Listen starts a TCP listener at addr (e.g. "127.0.0.1:4747").
func Listen(addr string) (*Server, error) {
	l, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("introspect: listen %s: %w", addr, err)
	}
	return &Server{listener: l}, nil
}

// Addr returns the server's bound address.
func (s *Server) Addr() string {
	return s.listener.Addr().String()
}

// Close stops accepting new connections.
func (s *Server) Close() error {
	return s.listener.Close()
}

// Serve accepts connections forever, handling each one synchronously
// before accepting the next. Returns when the listener is closed.
func (s *Server) Serve() error {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			return err
		}
		handleConn(conn)
	}
}

func handleConn(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return
	}

	var req Request
	resp := Response{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &req); err != nil {
		resp.Error = fmt.Sprintf("invalid request: %v", err)
		writeResponse(conn, resp)
		return
	}

	switch req.Op {
	case "disasm":
		resp = handleDisasm(req)
	case "run":
		resp = handleRun(req)
	default:
		resp.Error = fmt.Sprintf("unknown op %q", req.Op)
	}

	writeResponse(conn, resp)
}

func writeResponse(conn net.Conn, resp Response) {
	enc := json.NewEncoder(conn)
	_ = enc.Encode(resp)
}

func compileSource(source string) (*bytecode.Chunk, map[string]*compiler.Func, error) {
	p := parser.New(source)
	prog, err := p.Parse()
	if err != nil {
		return nil, nil, err
	}
	c := compiler.NewMain()
	if err := c.Compile(prog.Statements); err != nil {
		return nil, nil, err
	}
	return c.Chunk(), c.UserFuncs(), nil
}

func handleDisasm(req Request) Response {
	chunk, funcs, err := compileSource(req.Source)
	if err != nil {
		return Response{Error: err.Error()}
	}

	var sb strings.Builder
	sb.WriteString(bytecode.Disassemble(chunk, "main"))
	for name, fn := range funcs {
		sb.WriteString(bytecode.Disassemble(fn.Chunk, name))
	}
	return Response{Output: sb.String()}
}

func handleRun(req Request) Response {
	chunk, funcs, err := compileSource(req.Source)
	if err != nil {
		return Response{Error: err.Error()}
	}

	var out strings.Builder
	m := vm.New(funcs, vm.WithStdout(&out), vm.WithStdin(strings.NewReader(req.Stdin)))
	if err := m.Run(chunk); err != nil {
		return Response{Output: out.String(), Error: err.Error()}
	}
	return Response{Output: out.String()}
}
