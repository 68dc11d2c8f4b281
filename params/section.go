package params

import (
	"strings"

	"github.com/sarchlab/radflow/validation"
)

// Scope tells how the parameters of a section are distributed.
type Scope int

// The section scopes.
const (
	// InstanceScope sections declare one instance and hold nested
	// category: {param: value} mappings.
	InstanceScope Scope = iota
	// BroadcastScope sections hold flat param: value pairs applied to every
	// instance.
	BroadcastScope
	// ClusterScope sections hold flat cluster-wide knobs.
	ClusterScope
)

func (s Scope) String() string {
	switch s {
	case InstanceScope:
		return "instance"
	case BroadcastScope:
		return "broadcast"
	default:
		return "cluster"
	}
}

// InstanceMarker is the leading token of an instance-declaration section,
// as in "config rad1".
const InstanceMarker = "config"

var sectionScopes = map[string]Scope{
	"noc":          BroadcastScope,
	"noc_adapters": BroadcastScope,
	"interfaces":   BroadcastScope,
	"cluster":      ClusterScope,
}

// Section is a classified top-level section of a configuration document.
type Section struct {
	Key      string
	Scope    Scope
	Instance string
}

// ParseSection classifies a top-level section key.
func ParseSection(key string) (Section, error) {
	if scope, ok := sectionScopes[key]; ok {
		return Section{Key: key, Scope: scope}, nil
	}

	tokens := strings.Fields(key)
	if len(tokens) > 0 && tokens[0] == InstanceMarker {
		if len(tokens) != 2 {
			return Section{}, validation.Errorf(validation.UnknownParameter, key,
				"instance sections must be named %q", InstanceMarker+" <name>")
		}
		return Section{Key: key, Scope: InstanceScope, Instance: tokens[1]}, nil
	}

	return Section{}, validation.Errorf(validation.UnknownParameter, key,
		"unknown section")
}

// RoutedName composes the registry name of a parameter found under a
// category or a flat section.
func RoutedName(category, param string) string {
	return category + "_" + param
}

// Targets is a set of namespaces.
type Targets uint8

func targetOf(ns Namespace) Targets {
	switch ns {
	case Topology:
		return 1
	case Header:
		return 2
	case Knobs:
		return 4
	default:
		return 8
	}
}

// Has reports whether ns is in the set.
func (t Targets) Has(ns Namespace) bool { return t&targetOf(ns) != 0 }

// Without returns the set minus ns.
func (t Targets) Without(ns Namespace) Targets { return t &^ targetOf(ns) }

// Empty reports whether the set has no namespace.
func (t Targets) Empty() bool { return t == 0 }

// Namespaces lists the members of the set in the fixed namespace order.
func (t Targets) Namespaces() []Namespace {
	var out []Namespace
	for _, ns := range Namespaces {
		if t.Has(ns) {
			out = append(out, ns)
		}
	}
	return out
}
