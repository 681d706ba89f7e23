package refetch

import (
	"sort"

	language "github.com/BigsonLvrocha/relay/internal/language"
)

// rootVariable is one variable declaration the synthesized query must carry.
type rootVariable struct {
	Name    string
	Type    string
	Default *language.Value
	pos     *language.Position
}

// useSite keys a variable occurrence by the field argument it feeds. Sites
// let a free variable borrow its type from a declared variable used at the
// same argument position. Directive occurrences carry no field and never
// participate in borrowing.
type useSite struct {
	field string
	arg   string
}

// freeUse records one occurrence of a variable that is not covered by the
// enclosing fragment's own argument definitions.
type freeUse struct {
	name      string
	fragment  string
	site      useSite
	knownType string // set when the occurrence binds a typed fragment argument
	pos       *language.Position
}

// propagated is the engine's answer for one refetchable fragment: the sorted
// root variable declarations, the root fragment's own argument definitions
// (each to be bound to the same-named root variable by the synthesized
// spread), and every other fragment reached, in discovery order.
type propagated struct {
	variables    []rootVariable
	rootDefs     []argumentDefinition
	dependencies []*language.FragmentDefinition
}

type propagation struct {
	index    fragmentIndex
	root     *language.FragmentDefinition
	defs     map[string][]argumentDefinition
	visited  map[string]bool
	onStack  map[string]bool
	deps     []*language.FragmentDefinition
	roots    map[string]*rootVariable
	uses     []freeUse
	siteType map[useSite]map[string]bool
}

// propagate computes the externally-visible argument set of root by walking
// every fragment its spread graph reaches. The walk is memoized so diamond
// references are visited once; a spread back into the active chain is a
// cycle and aborts the transform.
func propagate(idx fragmentIndex, root *language.FragmentDefinition) (*propagated, *Violation) {
	p := &propagation{
		index:    idx,
		root:     root,
		defs:     make(map[string][]argumentDefinition),
		visited:  make(map[string]bool),
		onStack:  make(map[string]bool),
		roots:    make(map[string]*rootVariable),
		siteType: make(map[useSite]map[string]bool),
	}

	rootDefs, v := p.argumentDefinitions(root)
	if v != nil {
		return nil, v
	}
	// The synthesized spread binds every one of the root fragment's own
	// argument definitions to a same-named root variable.
	for i := range rootDefs {
		def := rootDefs[i]
		if v := p.declareRoot(def.Name, def.Type, def.Default, def.pos); v != nil {
			return nil, v
		}
	}
	if v := p.visitFragment(root); v != nil {
		return nil, v
	}
	if v := p.resolveFreeUses(); v != nil {
		return nil, v
	}

	vars := make([]rootVariable, 0, len(p.roots))
	for _, rv := range p.roots {
		vars = append(vars, *rv)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].Name < vars[j].Name })

	return &propagated{variables: vars, rootDefs: rootDefs, dependencies: p.deps}, nil
}

func (p *propagation) argumentDefinitions(f *language.FragmentDefinition) ([]argumentDefinition, *Violation) {
	if defs, ok := p.defs[f.Name]; ok {
		return defs, nil
	}
	defs, v := parseArgumentDefinitions(f)
	if v != nil {
		return nil, v
	}
	p.defs[f.Name] = defs
	return defs, nil
}

// declareRoot merges a candidate declaration into the root variable set.
// Same name with the same type collapses to one declaration; the first
// default value seen wins. Diverging types are a hard conflict.
func (p *propagation) declareRoot(name, typ string, def *language.Value, pos *language.Position) *Violation {
	if existing, ok := p.roots[name]; ok {
		if existing.Type != typ {
			return violationArgumentTypeConflict(name, existing.Type, typ, pos)
		}
		if existing.Default == nil {
			existing.Default = def
		}
		return nil
	}
	p.roots[name] = &rootVariable{Name: name, Type: typ, Default: def, pos: pos}
	return nil
}

func (p *propagation) visitFragment(f *language.FragmentDefinition) *Violation {
	if p.visited[f.Name] {
		return nil
	}
	p.visited[f.Name] = true
	p.onStack[f.Name] = true
	defer delete(p.onStack, f.Name)

	if f != p.root {
		p.deps = append(p.deps, f)
	}

	defs, v := p.argumentDefinitions(f)
	if v != nil {
		return v
	}
	local := make(map[string]argumentDefinition, len(defs))
	for _, def := range defs {
		local[def.Name] = def
	}

	var vio *Violation
	language.Walk(f.SelectionSet, func(sel language.Selection) bool {
		if vio != nil {
			return false
		}
		switch n := sel.(type) {
		case *language.Field:
			for _, a := range n.Arguments {
				p.collectUses(f, local, a.Value, useSite{field: n.Name, arg: a.Name})
			}
			for _, d := range n.Directives {
				p.collectDirectiveUses(f, local, d)
			}
		case *language.InlineFragment:
			for _, d := range n.Directives {
				p.collectDirectiveUses(f, local, d)
			}
		case *language.FragmentSpread:
			vio = p.visitSpread(f, local, n)
			return false
		}
		return true
	})
	return vio
}

func (p *propagation) visitSpread(f *language.FragmentDefinition, local map[string]argumentDefinition, s *language.FragmentSpread) *Violation {
	target, ok := p.index[s.Name]
	if !ok {
		return violationUndefinedFragment(f.Name, s.Name, s.Position)
	}
	if p.onStack[s.Name] {
		return violationCyclicFragmentReference(f.Name, s.Name, s.Position)
	}
	targetDefs, v := p.argumentDefinitions(target)
	if v != nil {
		return v
	}
	byName := make(map[string]argumentDefinition, len(targetDefs))
	for _, def := range targetDefs {
		byName[def.Name] = def
	}

	bound := make(map[string]bool)
	for _, a := range spreadArguments(s) {
		def, ok := byName[a.Name]
		if !ok {
			return violationUnknownFragmentArgument(s.Name, a.Name, a.Position)
		}
		bound[a.Name] = true
		// A binding value is an occurrence in the caller's scope. A bare
		// variable propagates upward unchanged, carrying the declared type
		// of the fragment argument it fills.
		if a.Value != nil && a.Value.Kind == language.Variable {
			if _, isLocal := local[a.Value.Raw]; !isLocal {
				p.uses = append(p.uses, freeUse{
					name:      a.Value.Raw,
					fragment:  f.Name,
					knownType: def.Type,
					pos:       a.Value.Position,
				})
			}
			continue
		}
		p.collectUses(f, local, a.Value, useSite{})
	}
	for _, d := range s.Directives {
		if classifyDirective(d) == directiveArguments {
			continue
		}
		p.collectDirectiveUses(f, local, d)
	}

	// Argument definitions the spread leaves unbound surface at the root
	// under their local name.
	for _, def := range targetDefs {
		if bound[def.Name] {
			continue
		}
		if v := p.declareRoot(def.Name, def.Type, def.Default, def.pos); v != nil {
			return v
		}
	}
	return p.visitFragment(target)
}

func (p *propagation) collectDirectiveUses(f *language.FragmentDefinition, local map[string]argumentDefinition, d *language.Directive) {
	for _, a := range d.Arguments {
		p.collectUses(f, local, a.Value, useSite{})
	}
}

func (p *propagation) collectUses(f *language.FragmentDefinition, local map[string]argumentDefinition, v *language.Value, site useSite) {
	language.WalkValues(v, func(val *language.Value) {
		if val.Kind != language.Variable {
			return
		}
		name := val.Raw
		if def, isLocal := local[name]; isLocal {
			// Covered by the fragment's own argument definitions. The
			// declared type still informs the site, so a free sibling at
			// the same argument can borrow it.
			if site.field != "" {
				p.recordSiteType(site, def.Type)
			}
			return
		}
		p.uses = append(p.uses, freeUse{name: name, fragment: f.Name, site: site, pos: val.Position})
	})
}

func (p *propagation) recordSiteType(site useSite, typ string) {
	set := p.siteType[site]
	if set == nil {
		set = make(map[string]bool)
		p.siteType[site] = set
	}
	set[typ] = true
}

// resolveFreeUses promotes every free variable to a root declaration. Types
// come, in order of preference, from a binding site's declared type, a
// same-named argument definition anywhere in the reachable graph, or a
// declared variable used at the same field argument. No type from any source
// is an error, two different types are a conflict.
func (p *propagation) resolveFreeUses() *Violation {
	for i := range p.uses {
		use := p.uses[i]
		if existing, ok := p.roots[use.name]; ok {
			if use.knownType != "" && use.knownType != existing.Type {
				return violationArgumentTypeConflict(use.name, existing.Type, use.knownType, use.pos)
			}
			continue
		}

		types := make(map[string]bool)
		for j := i; j < len(p.uses); j++ {
			other := p.uses[j]
			if other.name != use.name {
				continue
			}
			if other.knownType != "" {
				types[other.knownType] = true
			}
			if other.site.field != "" {
				for t := range p.siteType[other.site] {
					types[t] = true
				}
			}
		}
		for _, defs := range p.defs {
			for _, def := range defs {
				if def.Name == use.name {
					types[def.Type] = true
				}
			}
		}

		unique := make([]string, 0, len(types))
		for t := range types {
			unique = append(unique, t)
		}
		sort.Strings(unique)
		switch len(unique) {
		case 0:
			return violationUndeterminedVariableType(use.name, use.fragment, use.pos)
		case 1:
			if v := p.declareRoot(use.name, unique[0], nil, use.pos); v != nil {
				return v
			}
		default:
			return violationArgumentTypeConflict(use.name, unique[0], unique[1], use.pos)
		}
	}
	return nil
}
