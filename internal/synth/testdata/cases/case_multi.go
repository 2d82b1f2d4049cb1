package cases

import (
	"net"
	"strconv"
)

type pool struct {
	addrs []string
}

// dial connects to the n-th address of the pool.
//errsum:errors *net.OpError
func (p *pool) dial(n int) (conn net.Conn, ok bool) {
	conn, _ = net.Dial("tcp", p.addrs[n])
	return conn, conn != nil
}

// parsePort converts raw to a port number.
//errsum:errors *strconv.NumError
func parsePort(raw string) int {
	port, _ := strconv.Atoi(raw)
	return port
}

// reset carries no directive and stays untouched.
func reset(p *pool) {
	p.addrs = nil
}
