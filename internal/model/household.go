package model

// Child is one household child as known to the name resolver
type Child struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Nicknames []string `json:"nicknames"`
	Age       int      `json:"age"`
}

// Parent is one adult household member
type Parent struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// HouseholdContext is the read-only set of children and parents used to
// resolve names mentioned in speech. The pipeline never mutates it; slice
// order is the household ordering used for documented tie-breaks.
type HouseholdContext struct {
	HouseholdID string   `json:"household_id"`
	Children    []Child  `json:"children"`
	Parents     []Parent `json:"parents"`
}

// ChildByID returns the child with the given id, if any
func (h HouseholdContext) ChildByID(id string) (Child, bool) {
	for _, c := range h.Children {
		if c.ID == id {
			return c, true
		}
	}
	return Child{}, false
}

// ParentByID returns the parent with the given id, if any
func (h HouseholdContext) ParentByID(id string) (Parent, bool) {
	for _, p := range h.Parents {
		if p.ID == id {
			return p, true
		}
	}
	return Parent{}, false
}

// MemberLoad is the current workload of one household member, in charge
// weight points
type MemberLoad struct {
	MemberID string  `json:"member_id"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
}

// WorkloadSnapshot is a read-only view of per-member load used for assignee
// suggestion. Member order follows the household ordering.
type WorkloadSnapshot struct {
	Members []MemberLoad `json:"members"`
}
