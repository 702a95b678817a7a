package crate

import (
	"fmt"
	"sort"

	"github.com/sacereda/tinyusdz/intern"
	"github.com/sacereda/tinyusdz/value"
)

// primMetaConsumedKeys names the field entries that never land in a
// prim's Residual meta: the keys metaFromFields recognizes by name plus
// the structural fields buildPrimTree reads itself, kept in one place so
// buildPrimTree can pass the same "consumed" set for every prim.
var primMetaConsumedKeys = map[string]bool{
	fieldKind: true, fieldActive: true, fieldHidden: true, fieldReferences: true,
	fieldPayload: true, fieldInherits: true, fieldSpecializes: true,
	fieldVariantSets: true, fieldVariants: true, fieldAssetInfo: true,
	fieldAPISchemas: true, fieldCustomData: true, fieldDoc: true,
	fieldTypeName: true, fieldSpecifier: true, "primChildren": true, "properties": true,
	"xformOpOrder": true,
}

// buildPrimTree implements §4.E's "Node-hierarchy build": walk paths in
// declared order, attach each Prim spec's properties from its live
// field-set, and nest prims per the reconstructed path hierarchy.
func buildPrimTree(specs []Spec, pathPool *intern.PathPool, lfsAll [][]NamedValue) (*value.Prim, []value.Diagnostic) {
	var warnings []value.Diagnostic
	prims := make(map[string]*value.Prim)
	primChildOrder := make(map[string][]string)
	rootPath := value.RootPath()

	for i, s := range specs {
		if s.Type != SpecTypePrim && s.Type != SpecTypePseudoRoot {
			continue
		}
		p, err := pathPool.Get(s.PathIdx)
		if err != nil {
			warnings = append(warnings, value.Diagnostic{Err: err, Note: fmt.Sprintf("spec %d", i)})
			continue
		}
		lfs := liveFieldSetView(lfsAll[i])
		prim := value.NewPrim(specifierFromFields(lfs), typeNameFromFields(lfs), p.ElementName(), p)
		prim.Meta = metaFromFields(lfs, primMetaConsumedKeys)
		if tv, ok := lfs.find("xformOpOrder"); ok {
			if toks, err := tv.AsTokenArray(); err == nil {
				for _, t := range toks {
					prim.XformOps = append(prim.XformOps, t.String())
				}
			}
		}
		if cv, ok := lfs.find("primChildren"); ok {
			if toks, err := cv.AsTokenArray(); err == nil {
				primChildOrder[p.String()] = tokensToStrings(toks)
			}
		}
		prims[p.String()] = prim
		if s.Type == SpecTypePseudoRoot {
			rootPath = p
		}
	}
	if _, ok := prims[rootPath.String()]; !ok {
		prims[rootPath.String()] = value.NewPrim(value.SpecifierDef, "", "", rootPath)
	}

	for i, s := range specs {
		if s.Type != SpecTypeAttribute && s.Type != SpecTypeRelationship {
			continue
		}
		p, err := pathPool.Get(s.PathIdx)
		if err != nil {
			warnings = append(warnings, value.Diagnostic{Err: err, Note: fmt.Sprintf("spec %d", i)})
			continue
		}
		if !p.IsProperty() {
			continue
		}
		owner, ok := prims[p.PrimPath().String()]
		if !ok {
			warnings = append(warnings, value.Diagnostic{
				Err: fmt.Errorf("%w: property %s has no owning prim", value.ErrInternal, p),
				Path: p,
			})
			continue
		}
		lfs := liveFieldSetView(lfsAll[i])
		prop := buildProperty(s.Type, lfs)
		owner.Props[p.PropertyName()] = prop
	}

	for pathStr, prim := range prims {
		if pathStr == rootPath.String() {
			continue
		}
		parent, ok := prims[prim.Path.ParentPath().String()]
		if !ok {
			continue
		}
		parent.Children = append(parent.Children, prim)
	}
	for pathStr, prim := range prims {
		orderChildren(prim, primChildOrder[pathStr])
	}

	return prims[rootPath.String()], warnings
}

// orderChildren sorts prim.Children by the authored primChildren order
// when known, falling back to a stable lexical sort so the tree is
// deterministic even without that field (map iteration during the
// attach pass above is not itself ordered).
func orderChildren(prim *value.Prim, declared []string) {
	if len(prim.Children) < 2 {
		return
	}
	if len(declared) > 0 {
		rank := make(map[string]int, len(declared))
		for i, name := range declared {
			rank[name] = i
		}
		sort.SliceStable(prim.Children, func(i, j int) bool {
			ri, iok := rank[prim.Children[i].Name]
			rj, jok := rank[prim.Children[j].Name]
			if iok && jok {
				return ri < rj
			}
			if iok != jok {
				return iok
			}
			return prim.Children[i].Name < prim.Children[j].Name
		})
		return
	}
	sort.SliceStable(prim.Children, func(i, j int) bool {
		return prim.Children[i].Name < prim.Children[j].Name
	})
}

// buildProperty routes an Attribute or Relationship spec's live
// field-set into a generic value.Property, per §3/§4.E.
func buildProperty(specType SpecType, lfs liveFieldSetView) value.Property {
	consumed := map[string]bool{
		fieldTypeName: true, fieldVariability: true, fieldDefault: true,
		fieldTimeSamples: true, fieldConnectionPaths: true, fieldTargetPaths: true,
	}

	if specType == SpecTypeRelationship {
		rel := value.Relationship{Meta: metaDictFromFields(lfs, consumed)}
		if tv, ok := lfs.find(fieldTargetPaths); ok {
			if op, ok := asPathListOp(tv); ok {
				rel.Targets = flattenPathListOp(op)
			} else if pv, err := tv.AsPathVector(); err == nil {
				rel.Targets = pv
			}
		}
		return value.NewRelationshipProperty(rel)
	}

	typeName := typeNameFromFields(lfs)
	variability := value.VariabilityVarying
	if vv, ok := lfs.find(fieldVariability); ok {
		if v, err := vv.AsVariability(); err == nil {
			variability = v
		}
	}

	var attr value.Attribute
	switch {
	case hasKey(lfs, fieldConnectionPaths):
		cv, _ := lfs.find(fieldConnectionPaths)
		var targets []value.Path
		if op, ok := asPathListOp(cv); ok {
			targets = flattenPathListOp(op)
		} else if pv, err := cv.AsPathVector(); err == nil {
			targets = pv
		}
		attr = value.NewConnectionAttribute(typeName, targets)
	case hasTimeSamples(lfs):
		tv, _ := lfs.find(fieldTimeSamples)
		ts, _ := tv.AsTimeSamples()
		attr = value.NewTimeSampledAttribute(typeName, ts)
	default:
		if dv, ok := lfs.find(fieldDefault); ok {
			if dv.IsBlocked() {
				attr = value.NewBlockedAttribute(typeName, variability)
			} else {
				attr = value.NewScalarAttribute(typeName, variability, dv)
			}
		} else {
			attr = value.NewDeclaredAttribute(typeName, variability)
		}
	}
	attr.Variability = variability
	attr.Meta = metaDictFromFields(lfs, consumed)
	return value.NewAttributeProperty(attr)
}

func hasKey(lfs liveFieldSetView, name string) bool {
	_, ok := lfs.find(name)
	return ok
}

func hasTimeSamples(lfs liveFieldSetView) bool {
	tv, ok := lfs.find(fieldTimeSamples)
	return ok && tv.Kind() == value.KindTimeSamples
}

func metaDictFromFields(lfs liveFieldSetView, consumed map[string]bool) value.Dictionary {
	var d value.Dictionary
	for _, nv := range lfs {
		if consumed[nv.Name] {
			continue
		}
		d.Set(nv.Name, nv.Value)
	}
	return d
}
