package ucsm

import "encoding/xml"

// Distinguished names of the SNMP configuration subtree.
const (
	DnSvcExt  = "sys/svc-ext"
	DnSnmpSvc = DnSvcExt + "/snmp-svc"
)

// Managed object status values. "created,modified" upserts; "created" fails
// if the object already exists.
const (
	StatusCreated         = "created"
	StatusCreatedModified = "created,modified"
)

// ManagedObject is a node in the UCS Manager configuration tree.
type ManagedObject interface {
	DN() string
}

// CommSnmp is the SNMP service of a UCS domain.
type CommSnmp struct {
	XMLName     xml.Name `xml:"commSnmp"`
	Dn          string   `xml:"dn,attr"`
	AdminState  string   `xml:"adminState,attr"`
	SysContact  string   `xml:"sysContact,attr,omitempty"`
	SysLocation string   `xml:"sysLocation,attr,omitempty"`
	Status      string   `xml:"status,attr,omitempty"`
}

func (m *CommSnmp) DN() string { return m.Dn }

// CommSnmpUser is an SNMPv3 user under the SNMP service.
type CommSnmpUser struct {
	XMLName xml.Name `xml:"commSnmpUser"`
	Dn      string   `xml:"dn,attr"`
	Name    string   `xml:"name,attr"`
	Auth    string   `xml:"auth,attr"`
	Pwd     string   `xml:"pwd,attr"`
	PrivPwd string   `xml:"privpwd,attr"`
	UseAes  string   `xml:"useAes,attr"`
	Status  string   `xml:"status,attr,omitempty"`
}

func (m *CommSnmpUser) DN() string { return m.Dn }

// NewCommSnmp returns the SNMP service object, enabled, upserted.
func NewCommSnmp(contact, location string) *CommSnmp {
	return &CommSnmp{
		Dn:          DnSnmpSvc,
		AdminState:  "enabled",
		SysContact:  contact,
		SysLocation: location,
		Status:      StatusCreatedModified,
	}
}

// NewCommSnmpUser returns an SNMPv3 user using passphrase for both
// authentication and privacy.
func NewCommSnmpUser(name, auth, passphrase string, useAES bool) *CommSnmpUser {
	aes := "no"
	if useAES {
		aes = "yes"
	}
	return &CommSnmpUser{
		Dn:      DnSnmpSvc + "/snmpv3-user-" + name,
		Name:    name,
		Auth:    auth,
		Pwd:     passphrase,
		PrivPwd: passphrase,
		UseAes:  aes,
		Status:  StatusCreated,
	}
}
