package types

import "github.com/go-playground/validator/v10"

// GroupPolicy describes the access policy attached to one unix group.
type GroupPolicy struct {
	// Restricted marks groups whose membership gates read access (licensed
	// data). Restricted corpora must deny "other" read/execute; open corpora
	// must grant it.
	Restricted bool `json:"restricted" yaml:"restricted"`

	// AllowedOwners optionally narrows who may own a restricted corpus.
	AllowedOwners []string `json:"allowed_owners,omitempty" yaml:"allowed_owners,omitempty" validate:"dive,required"`

	// Desc is shown in the restricted-access table of the rendered report
	// (how to request membership).
	Desc string `json:"desc,omitempty" yaml:"desc,omitempty"`
}

// GroupConfig maps group name to policy. A group absent from the map is
// treated as open-access. Loaded once per run and never mutated.
type GroupConfig map[string]GroupPolicy

// AllowsOwner reports whether owner may own a corpus under this policy.
// An empty AllowedOwners set places no restriction on ownership.
func (p GroupPolicy) AllowsOwner(owner string) bool {
	if len(p.AllowedOwners) == 0 {
		return true
	}
	for _, o := range p.AllowedOwners {
		if o == owner {
			return true
		}
	}
	return false
}

// Validate checks the decoded group configuration using the validator.
func (gc GroupConfig) Validate() error {
	validate := validator.New()
	for name, policy := range gc {
		if err := validate.Struct(policy); err != nil {
			return &GroupConfigError{Group: name, Cause: err}
		}
	}
	return nil
}

// GroupConfigError reports an invalid entry in the group configuration.
type GroupConfigError struct {
	Group string
	Cause error
}

func (e *GroupConfigError) Error() string {
	return "invalid group config entry \"" + e.Group + "\": " + e.Cause.Error()
}

func (e *GroupConfigError) Unwrap() error {
	return e.Cause
}
