package rpc

import (
	"fmt"
	"strings"
)

// InstanceName returns "projects/<project>/instances/<instance>".
func InstanceName(project, instance string) string {
	return "projects/" + project + "/instances/" + instance
}

// TableName returns the full name of a table.
func TableName(project, instance, table string) string {
	return InstanceName(project, instance) + "/tables/" + table
}

// ClusterName returns the full name of a cluster.
func ClusterName(project, instance, cluster string) string {
	return InstanceName(project, instance) + "/clusters/" + cluster
}

// SnapshotName returns the full name of a snapshot.
func SnapshotName(project, instance, cluster, snapshot string) string {
	return ClusterName(project, instance, cluster) + "/snapshots/" + snapshot
}

// FormatTableName qualifies a table id with its instance. Ids that already
// contain a slash are taken to be full names and returned unchanged.
func FormatTableName(instanceName, id string) string {
	if strings.Contains(id, "/") {
		return id
	}
	return instanceName + "/tables/" + id
}

// FormatSnapshotName qualifies a snapshot id with its cluster. A full name is
// accepted only when it belongs to that cluster.
func FormatSnapshotName(clusterName, id string) (string, error) {
	if !strings.Contains(id, "/") {
		return clusterName + "/snapshots/" + id, nil
	}
	prefix := clusterName + "/snapshots/"
	if !strings.HasPrefix(id, prefix) || strings.Contains(id[len(prefix):], "/") || len(id) == len(prefix) {
		return "", fmt.Errorf("snapshot name %q does not belong to cluster %q", id, clusterName)
	}
	return id, nil
}

// ResourceName is a parsed table, cluster or snapshot name.
type ResourceName struct {
	Project  string
	Instance string
	// Kind is "tables", "clusters" or empty for an instance name.
	Kind string
	ID   string
	// Snapshot is set for snapshot names, whose ID is the cluster.
	Snapshot string
}

// InstanceName returns the name of the instance n belongs to.
func (n ResourceName) InstanceName() string {
	return InstanceName(n.Project, n.Instance)
}

// ParseName splits a resource name into its parts.
func ParseName(name string) (ResourceName, error) {
	parts := strings.Split(name, "/")
	invalid := fmt.Errorf("invalid resource name %q", name)
	if len(parts) < 4 || parts[0] != "projects" || parts[2] != "instances" {
		return ResourceName{}, invalid
	}
	for _, p := range parts {
		if p == "" {
			return ResourceName{}, invalid
		}
	}
	n := ResourceName{Project: parts[1], Instance: parts[3]}
	switch len(parts) {
	case 4:
		return n, nil
	case 6:
		if parts[4] != "tables" && parts[4] != "clusters" {
			return ResourceName{}, invalid
		}
		n.Kind, n.ID = parts[4], parts[5]
		return n, nil
	case 8:
		if parts[4] != "clusters" || parts[6] != "snapshots" {
			return ResourceName{}, invalid
		}
		n.Kind, n.ID, n.Snapshot = parts[4], parts[5], parts[7]
		return n, nil
	}
	return ResourceName{}, invalid
}

// ParseTableName returns the project, instance and table id of a table name.
func ParseTableName(name string) (project, instance, table string, err error) {
	n, err := ParseName(name)
	if err != nil {
		return "", "", "", err
	}
	if n.Kind != "tables" {
		return "", "", "", fmt.Errorf("%q is not a table name", name)
	}
	return n.Project, n.Instance, n.ID, nil
}
