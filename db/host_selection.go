package db

import (
	"github.com/gocql/gocql"
	"go.uber.org/atomic"
)

// NewDefaultHostSelectionPolicy routes requests to localDC, or to the data
// center of the first host added when localDC is empty.
func NewDefaultHostSelectionPolicy(localDC string) gocql.HostSelectionPolicy {
	var fallback gocql.HostSelectionPolicy
	if localDC != "" {
		fallback = gocql.DCAwareRoundRobinPolicy(localDC)
	} else {
		fallback = newInferredDCPolicy()
	}
	return gocql.TokenAwareHostPolicy(fallback, gocql.ShuffleReplicas())
}

// inferredDCPolicy round robins over every host until the first one is added,
// then sticks to that host's data center.
type inferredDCPolicy struct {
	inferred *atomic.Bool
	current  atomic.Value // policyHolder
}

type policyHolder struct {
	gocql.HostSelectionPolicy
}

func newInferredDCPolicy() *inferredDCPolicy {
	p := &inferredDCPolicy{inferred: atomic.NewBool(false)}
	p.current.Store(policyHolder{gocql.RoundRobinHostPolicy()})
	return p
}

func (p *inferredDCPolicy) policy() gocql.HostSelectionPolicy {
	return p.current.Load().(policyHolder).HostSelectionPolicy
}

func (p *inferredDCPolicy) AddHost(host *gocql.HostInfo) {
	if p.inferred.CAS(false, true) {
		p.current.Store(policyHolder{gocql.DCAwareRoundRobinPolicy(host.DataCenter())})
	}
	p.policy().AddHost(host)
}

func (p *inferredDCPolicy) RemoveHost(host *gocql.HostInfo) { p.policy().RemoveHost(host) }
func (p *inferredDCPolicy) HostUp(host *gocql.HostInfo)     { p.policy().HostUp(host) }
func (p *inferredDCPolicy) HostDown(host *gocql.HostInfo)   { p.policy().HostDown(host) }
func (p *inferredDCPolicy) IsLocal(host *gocql.HostInfo) bool {
	return p.policy().IsLocal(host)
}

func (p *inferredDCPolicy) SetPartitioner(partitioner string) {
	p.policy().SetPartitioner(partitioner)
}

func (p *inferredDCPolicy) KeyspaceChanged(e gocql.KeyspaceUpdateEvent) {
	p.policy().KeyspaceChanged(e)
}

// Init is not forwarded: the token aware parent never calls it on its fallback.
func (p *inferredDCPolicy) Init(*gocql.Session) {}

func (p *inferredDCPolicy) Pick(query gocql.ExecutableQuery) gocql.NextHost {
	return p.policy().Pick(query)
}
