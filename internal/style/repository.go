package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrBuiltIn is returned when a mutation targets a built-in style.
var ErrBuiltIn = errors.New("style: built-in styles cannot be modified")

// ErrNotFound is returned when an update targets an unknown user style.
var ErrNotFound = errors.New("style: no such user style")

// Store persists user-defined styles and the default role selection.
// Implementations are external key-value resources; reads and writes are
// atomic per entry but not transactional across entries.
type Store interface {
	LoadStyles() ([]Style, error)
	SaveStyles([]Style) error
	LoadSelection() (Selection, error)
	SaveSelection(Selection) error
}

// Repository resolves styles and templates, layering user-defined styles
// from a Store over the immutable built-ins.
type Repository struct {
	store Store
}

// NewRepository creates a Repository backed by store.
func NewRepository(store Store) *Repository {
	return &Repository{store: store}
}

// ListAll returns built-in styles in canonical order followed by user
// styles in storage order.
func (r *Repository) ListAll() ([]Style, error) {
	user, err := r.userStyles()
	if err != nil {
		return nil, err
	}
	return append(BuiltIns(), user...), nil
}

// Resolve returns the style named by id. An empty or unrecognized id, or a
// store failure, resolves to the default built-in style.
func (r *Repository) Resolve(id string) Style {
	id = strings.TrimSpace(id)
	if b, ok := builtins[id]; ok {
		return b
	}
	if id != "" {
		user, err := r.userStyles()
		if err == nil {
			for _, s := range user {
				if s.ID == id {
					return s
				}
			}
		}
	}
	return builtins[DefaultStyleID]
}

// ResolveTemplate returns s's template for role/slot, falling back to the
// default built-in style's template for that exact slot when the style's
// own template is missing or blank.
func (r *Repository) ResolveTemplate(s Style, role Role, slot Slot) string {
	if tmpl := s.Template(role, slot); strings.TrimSpace(tmpl) != "" {
		return tmpl
	}
	return builtins[DefaultStyleID].Template(role, slot)
}

// Create validates draft, assigns it a fresh identifier, and persists it.
func (r *Repository) Create(draft Style) (Style, error) {
	if err := validate(draft); err != nil {
		return Style{}, err
	}
	s := draft.Clone()
	s.ID = uuid.NewString()
	s.Name = strings.TrimSpace(s.Name)
	s.BuiltIn = false

	user, err := r.userStyles()
	if err != nil {
		return Style{}, err
	}
	user = append(user, s)
	if err := r.store.SaveStyles(user); err != nil {
		return Style{}, fmt.Errorf("style: saving: %w", err)
	}
	return s, nil
}

// Remix clones the style named by id (resolving fallbacks per slot) and
// persists the copy as a new user style under name. A blank name derives
// one from the source style.
func (r *Repository) Remix(id, name string) (Style, error) {
	src := r.Resolve(id)
	draft := src.Clone()
	if name = strings.TrimSpace(name); name == "" {
		name = src.Name + " (remix)"
	}
	draft.Name = name
	draft.Description = src.Description
	// Materialize fallbacks so the remix is self-contained.
	for _, role := range Roles() {
		if draft.Prompts[role] == nil {
			draft.Prompts[role] = PromptSet{}
		}
		for _, slot := range Slots(role) {
			draft.Prompts[role][slot] = r.ResolveTemplate(src, role, slot)
		}
	}
	return r.Create(draft)
}

// Update overwrites the persisted user style with a matching identifier.
// Built-in identifiers are refused.
func (r *Repository) Update(s Style) (Style, error) {
	if IsBuiltIn(s.ID) {
		return Style{}, ErrBuiltIn
	}
	if err := validate(s); err != nil {
		return Style{}, err
	}
	user, err := r.userStyles()
	if err != nil {
		return Style{}, err
	}
	for i := range user {
		if user[i].ID == s.ID {
			updated := s.Clone()
			updated.Name = strings.TrimSpace(updated.Name)
			updated.BuiltIn = false
			user[i] = updated
			if err := r.store.SaveStyles(user); err != nil {
				return Style{}, fmt.Errorf("style: saving: %w", err)
			}
			return updated, nil
		}
	}
	return Style{}, ErrNotFound
}

// Delete removes the user style named by id. Built-in identifiers and
// unknown identifiers are a no-op.
func (r *Repository) Delete(id string) error {
	if IsBuiltIn(id) {
		return nil
	}
	user, err := r.userStyles()
	if err != nil {
		return err
	}
	kept := user[:0]
	for _, s := range user {
		if s.ID != id {
			kept = append(kept, s)
		}
	}
	if len(kept) == len(user) {
		return nil
	}
	if err := r.store.SaveStyles(kept); err != nil {
		return fmt.Errorf("style: saving: %w", err)
	}
	return nil
}

// Defaults returns the persisted default selection, normalized so that a
// selection naming a deleted style falls back to the default built-in.
func (r *Repository) Defaults() Selection {
	sel, err := r.store.LoadSelection()
	if err != nil {
		sel = Selection{}
	}
	return Selection{
		Pro:   r.normalizeID(sel.Pro),
		Con:   r.normalizeID(sel.Con),
		Judge: r.normalizeID(sel.Judge),
	}
}

// SetDefaults normalizes and persists sel as the default selection.
func (r *Repository) SetDefaults(sel Selection) (Selection, error) {
	normalized := Selection{
		Pro:   r.normalizeID(sel.Pro),
		Con:   r.normalizeID(sel.Con),
		Judge: r.normalizeID(sel.Judge),
	}
	if err := r.store.SaveSelection(normalized); err != nil {
		return Selection{}, fmt.Errorf("style: saving defaults: %w", err)
	}
	return normalized, nil
}

// NormalizeSelection fills the blanks in a per-run selection from the
// persisted defaults and drops identifiers that no longer resolve.
func (r *Repository) NormalizeSelection(sel Selection) Selection {
	defaults := r.Defaults()
	pick := func(id, fallback string) string {
		id = strings.TrimSpace(id)
		if id == "" || !r.exists(id) {
			return fallback
		}
		return id
	}
	return Selection{
		Pro:   pick(sel.Pro, defaults.Pro),
		Con:   pick(sel.Con, defaults.Con),
		Judge: pick(sel.Judge, defaults.Judge),
	}
}

func (r *Repository) normalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || !r.exists(id) {
		return DefaultStyleID
	}
	return id
}

func (r *Repository) exists(id string) bool {
	if IsBuiltIn(id) {
		return true
	}
	user, err := r.userStyles()
	if err != nil {
		return false
	}
	for _, s := range user {
		if s.ID == id {
			return true
		}
	}
	return false
}

// userStyles reads user styles from the store, dropping malformed entries,
// duplicates, and entries that collide with built-in identifiers.
func (r *Repository) userStyles() ([]Style, error) {
	loaded, err := r.store.LoadStyles()
	if err != nil {
		return nil, fmt.Errorf("style: loading: %w", err)
	}
	seen := make(map[string]bool, len(loaded))
	var out []Style
	for _, s := range loaded {
		s.ID = strings.TrimSpace(s.ID)
		s.Name = strings.TrimSpace(s.Name)
		if s.ID == "" || s.Name == "" || s.Prompts == nil {
			continue
		}
		if IsBuiltIn(s.ID) || seen[s.ID] {
			continue
		}
		seen[s.ID] = true
		s.BuiltIn = false
		out = append(out, s)
	}
	return out, nil
}
