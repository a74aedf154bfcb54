// Package gcrule builds garbage collection rules for column families.
package gcrule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/bigtable/admin/apiv2/adminpb"
	"google.golang.org/protobuf/types/known/durationpb"

	"github.com/datastax/bigtable-admin-apis/wire"
)

var (
	ErrNoRules         = errors.New("no garbage collection rules were specified")
	ErrSingleUnion     = errors.New("a union must have more than one garbage collection rule")
	ErrSingleIntersect = errors.New("an intersection must have more than one garbage collection rule")
	ErrInvalidVersions = errors.New("max versions must be positive")
	ErrInvalidMaxAge   = errors.New("max age must be at least one millisecond")
	ErrNilRule         = errors.New("nil garbage collection rule")
)

// MaxVersions keeps at most n versions of each cell.
func MaxVersions(n int32) *adminpb.GcRule {
	return &adminpb.GcRule{Rule: &adminpb.GcRule_MaxNumVersions{MaxNumVersions: n}}
}

// MaxAge deletes cells older than d. d must be at least one millisecond; it
// is sent as given and the server keeps microsecond precision.
func MaxAge(d time.Duration) (*adminpb.GcRule, error) {
	if d < time.Millisecond {
		return nil, ErrInvalidMaxAge
	}
	return &adminpb.GcRule{Rule: &adminpb.GcRule_MaxAge{MaxAge: durationpb.New(d)}}, nil
}

// Union deletes cells matched by any of rules.
func Union(rules ...*adminpb.GcRule) (*adminpb.GcRule, error) {
	if err := checkRules(rules, ErrSingleUnion); err != nil {
		return nil, err
	}
	return &adminpb.GcRule{Rule: &adminpb.GcRule_Union_{Union: &adminpb.GcRule_Union{Rules: rules}}}, nil
}

// Intersection deletes cells matched by every one of rules.
func Intersection(rules ...*adminpb.GcRule) (*adminpb.GcRule, error) {
	if err := checkRules(rules, ErrSingleIntersect); err != nil {
		return nil, err
	}
	return &adminpb.GcRule{Rule: &adminpb.GcRule_Intersection_{Intersection: &adminpb.GcRule_Intersection{Rules: rules}}}, nil
}

func checkRules(rules []*adminpb.GcRule, single error) error {
	switch len(rules) {
	case 0:
		return ErrNoRules
	case 1:
		return single
	}
	for _, r := range rules {
		if r == nil {
			return ErrNilRule
		}
	}
	return nil
}

// Policy is the declarative form of a rule, as accepted by the gateway.
type Policy struct {
	// Age deletes cells older than it when positive.
	Age time.Duration `json:"age,omitempty" mapstructure:"age"`
	// Versions keeps that many versions when positive.
	Versions int32 `json:"versions,omitempty" mapstructure:"versions"`
	// Rule nests another policy.
	Rule *Policy `json:"rule,omitempty" mapstructure:"rule"`
	// Union combines the rules with a union instead of an intersection.
	Union bool `json:"union,omitempty" mapstructure:"union"`
}

// FromPolicy converts p. A positive Age below one millisecond is rejected. A single rule is returned as is unless Union is set;
// several rules are combined into an intersection, or a union when Union is
// set.
func FromPolicy(p Policy) (*adminpb.GcRule, error) {
	if p.Age < 0 {
		return nil, ErrInvalidMaxAge
	}
	if p.Versions < 0 {
		return nil, ErrInvalidVersions
	}

	var rules []*adminpb.GcRule
	if p.Age > 0 {
		age, err := MaxAge(p.Age)
		if err != nil {
			return nil, err
		}
		rules = append(rules, age)
	}
	if p.Versions > 0 {
		rules = append(rules, MaxVersions(p.Versions))
	}
	if p.Rule != nil {
		nested, err := FromPolicy(*p.Rule)
		if err != nil {
			return nil, err
		}
		rules = append(rules, nested)
	}

	switch {
	case len(rules) == 0:
		return nil, ErrNoRules
	case len(rules) == 1 && p.Union:
		return nil, ErrSingleUnion
	case len(rules) == 1:
		return rules[0], nil
	case p.Union:
		return Union(rules...)
	}
	return Intersection(rules...)
}

// ToPolicy is the inverse of FromPolicy for the rules it produces. Rules it
// cannot express, such as an intersection of two unions, are reported as an
// error.
func ToPolicy(rule *adminpb.GcRule) (Policy, error) {
	switch wire.Which(rule, "rule") {
	case "maxNumVersions":
		return Policy{Versions: rule.GetMaxNumVersions()}, nil
	case "maxAge":
		return Policy{Age: rule.GetMaxAge().AsDuration()}, nil
	case "union":
		return combinedPolicy(rule.GetUnion().GetRules(), true)
	case "intersection":
		return combinedPolicy(rule.GetIntersection().GetRules(), false)
	}
	return Policy{}, ErrNoRules
}

func combinedPolicy(rules []*adminpb.GcRule, union bool) (Policy, error) {
	p := Policy{Union: union}
	for _, r := range rules {
		switch wire.Which(r, "rule") {
		case "maxNumVersions":
			if p.Versions != 0 {
				return Policy{}, fmt.Errorf("policy cannot hold more than one version limit: %s", String(r))
			}
			p.Versions = r.GetMaxNumVersions()
		case "maxAge":
			if p.Age != 0 {
				return Policy{}, fmt.Errorf("policy cannot hold more than one age limit: %s", String(r))
			}
			p.Age = r.GetMaxAge().AsDuration()
		default:
			if p.Rule != nil {
				return Policy{}, fmt.Errorf("policy cannot hold more than one nested rule: %s", String(r))
			}
			nested, err := ToPolicy(r)
			if err != nil {
				return Policy{}, err
			}
			p.Rule = &nested
		}
	}
	return p, nil
}

// String renders rule as a readable expression, for example
// "(age() > 24h0m0s || versions() > 3)".
func String(rule *adminpb.GcRule) string {
	switch wire.Which(rule, "rule") {
	case "maxNumVersions":
		return fmt.Sprintf("versions() > %d", rule.GetMaxNumVersions())
	case "maxAge":
		return fmt.Sprintf("age() > %s", rule.GetMaxAge().AsDuration())
	case "union":
		return join(rule.GetUnion().GetRules(), " || ")
	case "intersection":
		return join(rule.GetIntersection().GetRules(), " && ")
	}
	return "never"
}

func join(rules []*adminpb.GcRule, op string) string {
	parts := make([]string, len(rules))
	for i, r := range rules {
		parts[i] = String(r)
	}
	return "(" + strings.Join(parts, op) + ")"
}
