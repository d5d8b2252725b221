// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

package semantic

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dacolabs/reflectgen/internal/normalize"
	"github.com/dacolabs/reflectgen/internal/schema"
	"github.com/dacolabs/reflectgen/internal/symbols"
)

// Normalize runs the standard normalization pipeline and the semantic
// builder over the schema. Success always yields a fully-constructed IR;
// failure carries the failing stage's complete diagnostic batch.
func Normalize(s *schema.Schema, log *zap.Logger) (*Schema, error) {
	if err := normalize.Standard(log).Run(s); err != nil {
		return nil, err
	}
	return NewNormalizer(log).Normalize(s)
}

// Normalizer consumes a normalized schema and produces the semantic IR in
// five phases: symbol discovery, type resolution, dependency analysis,
// semantic validation, and IR construction. Resolution is lenient:
// unresolved references degrade to logged placeholders and generation
// proceeds against partially-specified schemas.
type Normalizer struct {
	log *zap.Logger

	table      *symbols.Table
	resolution map[string]symbols.ID
	scopes     [][]string
}

// NewNormalizer creates a Normalizer. A nil logger defaults to the no-op
// logger.
func NewNormalizer(log *zap.Logger) *Normalizer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Normalizer{log: log}
}

// Normalize builds the semantic schema. The input schema is not mutated and
// must not be mutated by the caller afterwards; the IR holds no references
// back into it.
func (n *Normalizer) Normalize(s *schema.Schema) (*Schema, error) {
	n.table = symbols.NewTable()
	n.resolution = make(map[string]symbols.ID)
	n.scopes = nil

	merged := mergedTypes(s)

	// Phase 1: symbol discovery.
	n.discoverSymbols(s, merged)

	// Phase 2: type resolution cache.
	n.buildResolutionCache()

	// Phase 3: dependency analysis.
	order := n.analyzeDependencies(merged)

	// Phase 4: semantic validation. Naming-convention and generic-bound
	// checks land here once they exist; the phase is a deliberate no-op for
	// now.

	// Phase 5: IR construction.
	out := &Schema{
		ID:          uuid.New(),
		Name:        s.Name,
		Description: s.Description,
		types:       make(map[string]TypeDef),
		functions:   make(map[string]FunctionDef),
		table:       n.table,
	}
	for _, name := range order {
		t, ok := lookupMerged(merged, name)
		if !ok {
			continue
		}
		def := n.buildType(t)
		out.types[idKey(def.DefID())] = def
		out.typeIDs = append(out.typeIDs, def.DefID())
	}
	sortIDs(out.typeIDs)

	for _, fn := range s.Functions {
		def := n.buildFunction(fn)
		out.functions[idKey(def.ID)] = def
		out.funcIDs = append(out.funcIDs, def.ID)
	}
	sortIDs(out.funcIDs)

	return out, nil
}

// mergedEntry pairs a type with its post-consolidation unique name.
type mergedEntry struct {
	name string
	t    schema.Type
}

// mergedTypes flattens both typespaces into one name-unique view. After
// consolidation, a name present in both spaces is structurally equal, so
// first writer wins.
func mergedTypes(s *schema.Schema) []mergedEntry {
	seen := make(map[string]struct{})
	var out []mergedEntry
	for _, ts := range []*schema.Typespace{&s.InputTypes, &s.OutputTypes} {
		for t := range ts.Types() {
			if _, ok := seen[t.TypeName()]; ok {
				continue
			}
			seen[t.TypeName()] = struct{}{}
			out = append(out, mergedEntry{name: t.TypeName(), t: t})
		}
	}
	return out
}

func lookupMerged(merged []mergedEntry, name string) (schema.Type, bool) {
	for _, e := range merged {
		if e.name == name {
			return e.t, true
		}
	}
	return nil, false
}

func typeKind(t schema.Type) symbols.Kind {
	switch t.Kind() {
	case schema.KindEnum:
		return symbols.KindEnum
	case schema.KindPrimitive:
		return symbols.KindPrimitive
	default:
		return symbols.KindStruct
	}
}

func typeID(t schema.Type) symbols.ID {
	return symbols.NewID(typeKind(t), schema.ParseName(t.TypeName())...)
}

func (n *Normalizer) discoverSymbols(s *schema.Schema, merged []mergedEntry) {
	for _, e := range merged {
		id := typeID(e.t)
		n.table.Register(symbols.Info{ID: id, Name: e.name, Description: e.t.TypeDescription()})

		switch v := e.t.(type) {
		case *schema.Struct:
			for _, f := range v.Fields {
				fid := id.Child(symbols.KindField, f.Name)
				n.table.Register(symbols.Info{ID: fid, Name: f.Name, Description: f.Description})
			}
		case *schema.Enum:
			for _, variant := range v.Variants {
				vid := id.Child(symbols.KindVariant, variant.Name)
				n.table.Register(symbols.Info{ID: vid, Name: variant.Name, Description: variant.Description})
				for _, f := range variant.Fields {
					fid := vid.Child(symbols.KindField, f.Name)
					n.table.Register(symbols.Info{ID: fid, Name: f.Name, Description: f.Description})
				}
			}
		}
	}

	for _, fn := range s.Functions {
		id := symbols.NewID(symbols.KindEndpoint, schema.ParseName(fn.Name)...)
		n.table.Register(symbols.Info{ID: id, Name: fn.Name, Description: fn.Description})
	}
}

// buildResolutionCache maps every registered type symbol's raw and
// path-qualified names, plus the well-known standard names, to symbol IDs.
func (n *Normalizer) buildResolutionCache() {
	for name, id := range wellKnownNames() {
		n.resolution[name] = id
	}
	for _, id := range n.table.IDs() {
		switch id.Kind {
		case symbols.KindStruct, symbols.KindEnum, symbols.KindPrimitive:
			info, _ := n.table.Lookup(id)
			n.resolution[info.Name] = id
			n.resolution[id.PathString()] = id
		}
	}
}

// analyzeDependencies registers hard dependency edges between type symbols
// and returns type names in dependency order. A surviving cycle is logged
// and tolerated: construction proceeds in sorted symbol order instead.
func (n *Normalizer) analyzeDependencies(merged []mergedEntry) []string {
	addEdges := func(from symbols.ID, f schema.Field) {
		if !f.Required {
			return
		}
		var walk func(ref schema.TypeReference)
		walk = func(ref schema.TypeReference) {
			if schema.IsIndirection(ref.Name) {
				return
			}
			if to, ok := n.resolution[ref.Name]; ok {
				switch to.Kind {
				case symbols.KindStruct, symbols.KindEnum:
					if !to.Equal(from) {
						n.table.AddDependency(from, to)
					}
				}
			}
			for _, a := range ref.Arguments {
				walk(a)
			}
		}
		walk(f.TypeRef)
	}

	for _, e := range merged {
		id := typeID(e.t)
		switch v := e.t.(type) {
		case *schema.Struct:
			for _, f := range v.Fields {
				addEdges(id, f)
			}
		case *schema.Enum:
			for _, variant := range v.Variants {
				for _, f := range variant.Fields {
					addEdges(id, f)
				}
			}
		}
	}

	sorted, err := n.table.TopologicalSort()
	if err != nil {
		n.log.Warn("dependency cycle survived normalization; falling back to sorted symbol order",
			zap.Error(err))
		sorted = n.table.IDs()
	}

	var order []string
	for _, id := range sorted {
		switch id.Kind {
		case symbols.KindStruct, symbols.KindEnum, symbols.KindPrimitive:
			if info, ok := n.table.Lookup(id); ok {
				order = append(order, info.Name)
			}
		}
	}
	return order
}

func (n *Normalizer) pushScope(params []schema.TypeParameter) {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	n.scopes = append(n.scopes, names)
}

func (n *Normalizer) popScope() {
	n.scopes = n.scopes[:len(n.scopes)-1]
}

func (n *Normalizer) inScope(name string) bool {
	for i := len(n.scopes) - 1; i >= 0; i-- {
		for _, p := range n.scopes[i] {
			if p == name {
				return true
			}
		}
	}
	return false
}

// resolveRef resolves a reference against the generic-parameter scope first,
// then the global cache. Unresolved names degrade to placeholders: a
// generic-parameter-shaped alias for unqualified names, a synthesized struct
// identity otherwise.
func (n *Normalizer) resolveRef(ref schema.TypeReference, referrer string) ResolvedTypeReference {
	out := ResolvedTypeReference{Name: ref.Name}
	switch {
	case n.inScope(ref.Name):
		out.Symbol = symbols.NewID(symbols.KindTypeAlias, ref.Name)
	default:
		if id, ok := n.resolution[ref.Name]; ok {
			out.Symbol = id
			break
		}
		n.log.Warn("unresolved type reference",
			zap.String("name", ref.Name),
			zap.String("referrer", referrer))
		qn := schema.ParseName(ref.Name)
		if !qn.IsQualified() {
			out.Symbol = symbols.NewID(symbols.KindTypeAlias, ref.Name)
		} else {
			out.Symbol = symbols.NewID(symbols.KindStruct, qn...)
		}
	}
	for _, a := range ref.Arguments {
		out.Arguments = append(out.Arguments, n.resolveRef(a, referrer))
	}
	return out
}

func (n *Normalizer) resolveOptionalRef(ref *schema.TypeReference, referrer string) *ResolvedTypeReference {
	if ref == nil {
		return nil
	}
	resolved := n.resolveRef(*ref, referrer)
	return &resolved
}

func (n *Normalizer) buildFields(parent symbols.ID, referrer string, fields []schema.Field) []FieldDef {
	out := make([]FieldDef, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldDef{
			ID:          parent.Child(symbols.KindField, f.Name),
			Name:        f.Name,
			SerdeName:   f.SerdeName,
			Description: f.Description,
			Type:        n.resolveRef(f.TypeRef, referrer+"."+f.Name),
			Required:    f.Required,
			Flattened:   f.Flattened,
		})
	}
	return out
}

func (n *Normalizer) buildType(t schema.Type) TypeDef {
	id := typeID(t)
	n.pushScope(t.TypeParameters())
	defer n.popScope()

	params := make([]string, 0, len(t.TypeParameters()))
	for _, p := range t.TypeParameters() {
		params = append(params, p.Name)
	}

	switch v := t.(type) {
	case *schema.Primitive:
		return &PrimitiveDef{
			ID:          id,
			Name:        v.Name,
			Description: v.Description,
			Parameters:  params,
			Fallback:    n.resolveOptionalRef(v.Fallback, v.Name),
		}
	case *schema.Enum:
		def := &EnumDef{
			ID:             id,
			Name:           v.Name,
			SerdeName:      v.SerdeName,
			Description:    v.Description,
			Parameters:     params,
			Representation: v.Representation,
		}
		for _, variant := range v.Variants {
			vid := id.Child(symbols.KindVariant, variant.Name)
			def.Variants = append(def.Variants, VariantDef{
				ID:           vid,
				Name:         variant.Name,
				SerdeName:    variant.SerdeName,
				Description:  variant.Description,
				Fields:       n.buildFields(vid, v.Name+"."+variant.Name, variant.Fields),
				Discriminant: variant.Discriminant,
				Untagged:     variant.Untagged,
			})
		}
		return def
	default:
		st := t.(*schema.Struct)
		return &StructDef{
			ID:          id,
			Name:        st.Name,
			SerdeName:   st.SerdeName,
			Description: st.Description,
			Parameters:  params,
			Fields:      n.buildFields(id, st.Name, st.Fields),
			Transparent: st.Transparent,
		}
	}
}

func (n *Normalizer) buildFunction(fn schema.Function) FunctionDef {
	id := symbols.NewID(symbols.KindEndpoint, schema.ParseName(fn.Name)...)
	return FunctionDef{
		ID:            id,
		Name:          fn.Name,
		Path:          fn.Path,
		Description:   fn.Description,
		Input:         n.resolveOptionalRef(fn.InputType, fn.Name),
		InputHeaders:  n.resolveOptionalRef(fn.InputHeaders, fn.Name),
		Output:        n.resolveOptionalRef(fn.OutputType, fn.Name),
		Error:         n.resolveOptionalRef(fn.ErrorType, fn.Name),
		Serialization: fn.Serialization,
		Readonly:      fn.Readonly,
	}
}
