package zabbix

import (
	"encoding/json"
	"fmt"
)

// InterfaceType is the Zabbix host interface type.
type InterfaceType int

// Interface types accepted by hostinterface objects.
const (
	InterfaceAgent InterfaceType = 1
	InterfaceSNMP  InterfaceType = 2
	InterfaceIPMI  InterfaceType = 3
	InterfaceJMX   InterfaceType = 4
)

// HostStatus is the monitoring status of a host.
type HostStatus int

const (
	HostMonitored   HostStatus = 0
	HostUnmonitored HostStatus = 1
)

// Host is the subset of a host object returned by host.get.
type Host struct {
	HostID string `json:"hostid"`
	Host   string `json:"host"`
}

// HostInterface is a hostinterface object as sent to host.create.
type HostInterface struct {
	Type  InterfaceType `json:"type"`
	Main  int           `json:"main"`
	UseIP int           `json:"useip"`
	IP    string        `json:"ip"`
	DNS   string        `json:"dns"`
	Port  string        `json:"port"`
	Bulk  int           `json:"bulk"`
}

// GroupRef references an existing host group.
type GroupRef struct {
	GroupID string `json:"groupid"`
}

// TemplateRef references an existing template.
type TemplateRef struct {
	TemplateID string `json:"templateid"`
}

// HostCreateRequest holds the host.create parameters.
type HostCreateRequest struct {
	Host       string          `json:"host"`
	Name       string          `json:"name"`
	Status     HostStatus      `json:"status"`
	Interfaces []HostInterface `json:"interfaces"`
	Groups     []GroupRef      `json:"groups"`
	Templates  []TemplateRef   `json:"templates"`
}

// rpcRequest is a JSON-RPC 2.0 request envelope.
type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params"`
	ID      int    `json:"id"`
	Auth    string `json:"auth,omitempty"`
}

// rpcResponse is a JSON-RPC 2.0 response envelope.
type rpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *APIError       `json:"error"`
	ID      int             `json:"id"`
}

// APIError is a JSON-RPC error returned by the Zabbix API.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    string `json:"data"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("zabbix API error %d: %s %s", e.Code, e.Message, e.Data)
}
