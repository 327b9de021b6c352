package interfaces

import "errors"

var ErrDuplicateNode = errors.New("node id already registered")

type networkEventType string

type INetworkEventType interface {
	getNetworkEventType() networkEventType
	String() string
}

// this is just for preventing simple string from being used as INetworkEventType
func (t networkEventType) getNetworkEventType() networkEventType {
	return t
}

func (t networkEventType) String() string {
	return string(t)
}

// the order is the one events are drawn from
const (
	NODE_CONNECT       = networkEventType("node_connect")
	NODE_DISCONNECT    = networkEventType("node_disconnect")
	NETWORK_CONGESTION = networkEventType("network_congestion")
)

var NETWORK_EVENT_TYPES = []INetworkEventType{NODE_CONNECT, NODE_DISCONNECT, NETWORK_CONGESTION}

type health string

type IHealth interface {
	getHealth() health
	String() string
}

// this is just for preventing simple string from being used as IHealth
func (h health) getHealth() health {
	return h
}

func (h health) String() string {
	return string(h)
}

const (
	HEALTH_EXCELLENT = health("excellent")
	HEALTH_GOOD      = health("good")
	HEALTH_FAIR      = health("fair")
	HEALTH_POOR      = health("poor")
	HEALTH_UNKNOWN   = health("unknown")
)
