// Package fabric derives fabric-interconnect names from UCS chassis names.
package fabric

import (
	"errors"
	"fmt"
	"strings"
)

// Suffixes appended to the first label of a chassis name.
const (
	SuffixA = "-a"
	SuffixB = "-b"
)

// ErrEmptyName is returned for names with no leading label.
var ErrEmptyName = errors.New("empty chassis name")

// DefaultChassis lists the UCS domains whose interconnects are named by default.
var DefaultChassis = []string{
	"ucs1.compute.otp1.edc.strln.net", "ucs1.compute.mum1.edc.strln.net",
	"ucs1.compute.dxb1.edc.strln.net", "ucs1.compute.dub1.edc.strln.net",
	"ucs1.compute.cph1.edc.strln.net", "ucs1.compute.cdg1.edc.strln.net",
	"ucs1.compute.mel1.edc.strln.net", "ucs1.compute.prg1.edc.strln.net",
	"ucs1.compute.mil1.edc.strln.net", "ucs1.compute.den1.edc.strln.net",
	"ucs1.compute.wrw1.edc.strln.net", "ucs1.compute.lon1.edc.strln.net",
	"ucs2.compute.lon1.edc.strln.net", "ucs1.compute.atl1.edc.strln.net",
	"ucs1.compute.ash1.edc.strln.net", "ucs1.compute.dfw1.edc.strln.net",
	"ucs1.compute.pao1.edc.strln.net", "ucs1.compute.lax1.edc.strln.net",
	"ucs1.compute.mia1.edc.strln.net", "ucs1.compute.nyc1.edc.strln.net",
	"ucs1.compute.ams1.edc.strln.net", "ucs1.compute.syd1.edc.strln.net",
	"ucs1.compute.fra1.edc.strln.net", "ucs1.compute.sin1.edc.strln.net",
	"ucs1.compute.nrt1.edc.strln.net", "ucs1.compute.yyz1.edc.strln.net",
}

// Config holds the fabric name derivation settings.
type Config struct {
	Chassis []string `mapstructure:"chassis"`
}

// DefaultConfig returns a Config listing DefaultChassis.
func DefaultConfig() Config {
	return Config{Chassis: append([]string(nil), DefaultChassis...)}
}

// Pair is the two interconnect names of one chassis.
type Pair struct {
	Chassis string
	A       string
	B       string
}

// Derive inserts -a and -b after the first label of name:
// ucs1.compute.otp1.edc.strln.net gives ucs1-a.compute.otp1.edc.strln.net
// and ucs1-b.compute.otp1.edc.strln.net.
func Derive(name string) (Pair, error) {
	head, rest, hasRest := strings.Cut(name, ".")
	if head == "" {
		return Pair{}, fmt.Errorf("%q: %w", name, ErrEmptyName)
	}

	join := func(suffix string) string {
		if !hasRest {
			return head + suffix
		}
		return head + suffix + "." + rest
	}
	return Pair{Chassis: name, A: join(SuffixA), B: join(SuffixB)}, nil
}

// DeriveAll derives a Pair for every name, preserving input order.
func DeriveAll(names []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(names))
	for _, name := range names {
		p, err := Derive(name)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
