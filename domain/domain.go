package domain

import (
	"net"
	"strconv"
)

// Address is the network location of one backend instance as read from configuration
// (<Tier>ServerIP{n}, <Tier>ServerPort{n}).
type Address struct {
	Host string
	Port int
}

// String returns host:port (IPv6 hosts are bracketed).
func (a Address) String() string {
	return net.JoinHostPort(a.Host, strconv.Itoa(a.Port))
}

// EndpointStatus is a point-in-time view of one pool member, used by the admin surface and logs.
// Index is the 1-based position in configuration order, matching the {n} suffix of its keys.
type EndpointStatus struct {
	Tier    Tier   `json:"tier"`
	Index   int    `json:"index"`
	Address string `json:"address"`
	Live    bool   `json:"live"`
}
