package interfaces

type nodeKind string

type INodeKind interface {
	getNodeKind() nodeKind
	String() string
}

// this is just for preventing simple string from being used as INodeKind
func (kind nodeKind) getNodeKind() nodeKind {
	return kind
}

func (kind nodeKind) String() string {
	return string(kind)
}

// add node kinds here
const (
	FULL_NODE      = nodeKind("full")
	LIGHT_NODE     = nodeKind("light")
	MINING_NODE    = nodeKind("mining")
	VALIDATOR_NODE = nodeKind("validator")
)

var NODE_KINDS = []INodeKind{FULL_NODE, LIGHT_NODE, MINING_NODE, VALIDATOR_NODE}

type protocol string

type IProtocol interface {
	getProtocol() protocol
	String() string
}

// this is just for preventing simple string from being used as IProtocol
func (p protocol) getProtocol() protocol {
	return p
}

func (p protocol) String() string {
	return string(p)
}

// add protocols here
const (
	BITCOIN  = protocol("bitcoin")
	ETHEREUM = protocol("ethereum")
	CUSTOM   = protocol("custom")
)

var PROTOCOLS = []IProtocol{BITCOIN, ETHEREUM, CUSTOM}

// client versions a node of a protocol can run, one is drawn at creation
var PROTOCOL_VERSIONS = map[IProtocol][]string{
	BITCOIN:  {"24.0.1", "23.0.0", "22.0.0"},
	ETHEREUM: {"1.12.0", "1.11.0", "1.10.0"},
	CUSTOM:   {"1.0.0", "0.9.0", "0.8.0"},
}

type nodeStatus string

type INodeStatus interface {
	getNodeStatus() nodeStatus
	String() string
}

// this is just for preventing simple string from being used as INodeStatus
func (s nodeStatus) getNodeStatus() nodeStatus {
	return s
}

func (s nodeStatus) String() string {
	return string(s)
}

const (
	ONLINE  = nodeStatus("online")
	OFFLINE = nodeStatus("offline")
)
