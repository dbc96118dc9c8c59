// SPDX-License-Identifier: MIT

package membership

import (
	"sort"

	"github.com/katalvlaran/trienrich/assign"
)

// ClassMembership maps each label to the group of every occurrence of it.
// Labels are kept in first-seen order so downstream ties resolve the same way
// on every run.
type ClassMembership struct {
	order  []string
	groups map[string][]assign.GroupID
	total  int
}

// NewClassMembership returns an empty ClassMembership.
func NewClassMembership() *ClassMembership {
	return &ClassMembership{groups: make(map[string][]assign.GroupID)}
}

// Add records one occurrence of label in group g.
// Complexity: amortized O(1).
func (c *ClassMembership) Add(label string, g assign.GroupID) {
	if _, ok := c.groups[label]; !ok {
		c.order = append(c.order, label)
	}
	c.groups[label] = append(c.groups[label], g)
	c.total++
}

// Labels returns the distinct labels in first-seen order.
func (c *ClassMembership) Labels() []string {
	return append([]string(nil), c.order...)
}

// Groups returns the group of every occurrence of label, in insertion order.
func (c *ClassMembership) Groups(label string) []assign.GroupID {
	return append([]assign.GroupID(nil), c.groups[label]...)
}

// Len returns the total number of label occurrences.
func (c *ClassMembership) Len() int { return c.total }

// Build pairs every entity with its hard assignment and records one
// occurrence per label produced by policy.
//
// Implementation:
//   - Stage 1: len(a) must equal len(entities), else *ShapeMismatchError.
//   - Stage 2: an entity with an empty ID is a *MalformedLabelError (index attached).
//   - Stage 3: policy.Split(label) → Add(label, a[i]) for every part.
//
// Complexity: O(total label occurrences).
func Build(a assign.HardAssignment, entities []LabeledEntity, policy SplitPolicy) (*ClassMembership, error) {
	if len(a) != len(entities) {
		return nil, &ShapeMismatchError{What: "assignments vs labeled entities", Want: len(a), Got: len(entities)}
	}
	cm := NewClassMembership()
	for i, e := range entities {
		if e.ID == "" {
			return nil, &MalformedLabelError{Index: i, Reason: "missing identifier"}
		}
		for _, label := range policy.Split(e.Label) {
			cm.Add(label, a[i])
		}
	}

	return cm, nil
}

// ClusterMembership maps each group to the labels of its entities, one entry
// per occurrence. Groups are ascending; labels within a group follow the
// first-seen order of the ClassMembership it was inverted from.
type ClusterMembership struct {
	groups []assign.GroupID
	labels map[assign.GroupID][]string
	total  int
}

// Invert builds the ClusterMembership for cm. Multiplicity is preserved.
// Complexity: O(occurrences + G log G).
func Invert(cm *ClassMembership) *ClusterMembership {
	out := &ClusterMembership{labels: make(map[assign.GroupID][]string)}
	for _, label := range cm.order {
		for _, g := range cm.groups[label] {
			if _, ok := out.labels[g]; !ok {
				out.groups = append(out.groups, g)
			}
			out.labels[g] = append(out.labels[g], label)
			out.total++
		}
	}
	sort.Slice(out.groups, func(i, j int) bool { return out.groups[i] < out.groups[j] })

	return out
}

// Groups returns the groups holding at least one label occurrence, ascending.
func (c *ClusterMembership) Groups() []assign.GroupID {
	return append([]assign.GroupID(nil), c.groups...)
}

// Labels returns the label occurrences of group g (nil if g is empty).
func (c *ClusterMembership) Labels(g assign.GroupID) []string {
	return append([]string(nil), c.labels[g]...)
}

// Len returns the total number of label occurrences across all groups.
func (c *ClusterMembership) Len() int { return c.total }

// Regroup is the logical inverse of Invert: it groups occurrences back by label.
// The result equals the source ClassMembership as a multiset of (label, group)
// pairs; the order of groups within a label may differ.
func (c *ClusterMembership) Regroup() *ClassMembership {
	cm := NewClassMembership()
	for _, g := range c.groups {
		for _, label := range c.labels[g] {
			cm.Add(label, g)
		}
	}

	return cm
}
