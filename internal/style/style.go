// Package style manages the prompt-template bundles a debate runs with.
//
// A Style holds one template per (role, slot) pair. Built-in styles are
// immutable and always resolvable; user styles are created by remixing an
// existing style and are persisted through a Store.
package style

import (
	"fmt"
	"strings"
)

// Role identifies a debate participant whose prompts a style configures.
type Role string

const (
	RolePro   Role = "pro"
	RoleCon   Role = "con"
	RoleJudge Role = "judge"
)

// Roles lists every role in canonical order.
func Roles() []Role { return []Role{RolePro, RoleCon, RoleJudge} }

// Slot identifies one prompt template within a role.
type Slot string

const (
	SlotSystem     Slot = "system"
	SlotOpening    Slot = "opening"
	SlotRound      Slot = "round"
	SlotRapidFire  Slot = "rapidFire"
	SlotClosing    Slot = "closing"
	SlotEvaluation Slot = "evaluation"
)

var (
	debaterSlots = []Slot{SlotSystem, SlotOpening, SlotRound, SlotRapidFire, SlotClosing}
	judgeSlots   = []Slot{SlotSystem, SlotEvaluation}
)

// Slots returns the fixed set of template slots a role requires. The
// enumeration is closed so missing-slot fallback is a total function.
func Slots(role Role) []Slot {
	if role == RoleJudge {
		return judgeSlots
	}
	return debaterSlots
}

// PromptSet maps slots to template text for a single role.
type PromptSet map[Slot]string

// Style is a named bundle of prompt templates keyed by role and slot.
type Style struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	BuiltIn     bool               `json:"builtIn"`
	Prompts     map[Role]PromptSet `json:"promptsByRole"`
}

// Template returns the raw template for role/slot, without fallback.
func (s Style) Template(role Role, slot Slot) string {
	return s.Prompts[role][slot]
}

// Clone returns a deep copy so callers can edit without aliasing.
func (s Style) Clone() Style {
	out := s
	out.Prompts = make(map[Role]PromptSet, len(s.Prompts))
	for role, set := range s.Prompts {
		cp := make(PromptSet, len(set))
		for slot, tmpl := range set {
			cp[slot] = tmpl
		}
		out.Prompts[role] = cp
	}
	return out
}

// Selection names the style each role uses for a run. Empty fields fall
// back to the persisted defaults, then to the built-in default style.
type Selection struct {
	Pro   string `json:"proStyleId"`
	Con   string `json:"conStyleId"`
	Judge string `json:"judgeStyleId"`
}

// ValidationError reports the fields missing from a style draft.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("style: missing required fields: %s", strings.Join(e.Missing, ", "))
}

// validate checks that the name and every role/slot template are non-blank.
func validate(s Style) error {
	var missing []string
	if strings.TrimSpace(s.Name) == "" {
		missing = append(missing, "name")
	}
	for _, role := range Roles() {
		for _, slot := range Slots(role) {
			if strings.TrimSpace(s.Prompts[role][slot]) == "" {
				missing = append(missing, fmt.Sprintf("%s.%s", role, slot))
			}
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}
