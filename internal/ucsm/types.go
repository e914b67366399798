package ucsm

import (
	"encoding/xml"
	"fmt"
)

// responseStatus carries the error attributes every XML API reply may set.
type responseStatus struct {
	ErrorCode        string `xml:"errorCode,attr"`
	ErrorDescr       string `xml:"errorDescr,attr"`
	InvocationResult string `xml:"invocationResult,attr"`
}

func (r responseStatus) err(method string) error {
	if r.ErrorCode == "" || r.ErrorCode == "0" {
		return nil
	}
	return &APIError{Method: method, Code: r.ErrorCode, Description: r.ErrorDescr, Result: r.InvocationResult}
}

type aaaLoginRequest struct {
	XMLName    xml.Name `xml:"aaaLogin"`
	InName     string   `xml:"inName,attr"`
	InPassword string   `xml:"inPassword,attr"`
}

type aaaLoginResponse struct {
	XMLName xml.Name `xml:"aaaLogin"`
	responseStatus
	OutCookie        string `xml:"outCookie,attr"`
	OutRefreshPeriod int    `xml:"outRefreshPeriod,attr"`
	OutPriv          string `xml:"outPriv,attr"`
}

type aaaLogoutRequest struct {
	XMLName  xml.Name `xml:"aaaLogout"`
	InCookie string   `xml:"inCookie,attr"`
}

type aaaLogoutResponse struct {
	XMLName xml.Name `xml:"aaaLogout"`
	responseStatus
	OutStatus string `xml:"outStatus,attr"`
}

type configConfMosRequest struct {
	XMLName        xml.Name   `xml:"configConfMos"`
	Cookie         string     `xml:"cookie,attr"`
	InHierarchical string     `xml:"inHierarchical,attr"`
	Pairs          []confPair `xml:"inConfigs>pair"`
}

type confPair struct {
	Key string `xml:"key,attr"`
	MO  ManagedObject
}

type configConfMosResponse struct {
	XMLName xml.Name `xml:"configConfMos"`
	responseStatus
}

// APIError is an error reply from the UCS Manager XML API.
type APIError struct {
	Method      string
	Code        string
	Description string
	Result      string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ucsm %s failed: code %s: %s", e.Method, e.Code, e.Description)
}
