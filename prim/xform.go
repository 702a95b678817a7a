package prim

import (
	"fmt"
	"strings"

	"github.com/sacereda/tinyusdz/value"
)

// xformOpKindByName maps the op-name segment of an "xformOp:<name>"
// (or "xformOp:<name>:<custom suffix>") token to its Kind.
var xformOpKindByName = map[string]value.XformOpKind{
	"translate":  value.XformOpTranslate,
	"rotateX":    value.XformOpRotateX,
	"rotateY":    value.XformOpRotateY,
	"rotateZ":    value.XformOpRotateZ,
	"rotateXYZ":  value.XformOpRotateXYZ,
	"rotateXZY":  value.XformOpRotateXZY,
	"rotateYXZ":  value.XformOpRotateYXZ,
	"rotateYZX":  value.XformOpRotateYZX,
	"rotateZXY":  value.XformOpRotateZXY,
	"rotateZYX":  value.XformOpRotateZYX,
	"orient":     value.XformOpOrient,
	"scale":      value.XformOpScale,
	"transform":  value.XformOpTransform,
}

// ResolveXformOps parses a GeomXformable's raw xformOpOrder token array
// (§4.G, §8 scenario 6) into resolved XformOp entries: "!resetXformStack!"
// must be first if present and carries no value; each remaining token may
// carry an "!invert!" prefix ahead of "xformOp:<name>[:<custom suffix>]".
//
// §9 Open Question (c): the source's rotateY/rotateZ arms reuse the
// wrong suffix variable from a neighboring branch. Here every branch
// derives Suffix/PropName from its own token, so that bug can't recur.
func ResolveXformOps(path value.Path, raw []string) ([]value.XformOp, error) {
	ops := make([]value.XformOp, 0, len(raw))
	for i, tok := range raw {
		if tok == "!resetXformStack!" {
			if i != 0 {
				return nil, fmt.Errorf("%s: xformOpOrder: !resetXformStack! must be first: %w", path, value.ErrInternal)
			}
			ops = append(ops, value.XformOp{Kind: value.XformOpResetXformStack})
			continue
		}

		rest := tok
		inverted := false
		if strings.HasPrefix(rest, "!invert!") {
			inverted = true
			rest = strings.TrimPrefix(rest, "!invert!")
		}
		if !strings.HasPrefix(rest, "xformOp:") {
			return nil, fmt.Errorf("%s: xformOpOrder: %q is not an xformOp entry: %w", path, tok, value.ErrInternal)
		}
		suffix := strings.TrimPrefix(rest, "xformOp:")
		opName := suffix
		if idx := strings.IndexByte(suffix, ':'); idx >= 0 {
			opName = suffix[:idx]
		}
		kind, ok := xformOpKindByName[opName]
		if !ok {
			return nil, fmt.Errorf("%s: xformOpOrder: unknown op %q: %w", path, opName, value.ErrUnknownEnum)
		}
		ops = append(ops, value.XformOp{
			Kind:     kind,
			Inverted: inverted,
			Suffix:   suffix,
			PropName: "xformOp:" + suffix,
		})
	}
	return ops, nil
}
