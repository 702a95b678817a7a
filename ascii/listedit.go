package ascii

import "github.com/sacereda/tinyusdz/value"

// ListEditQual is the optional `add|append|prepend|delete|reorder` prefix
// on relational/composition-arc metadata fields, per §4.F.
type ListEditQual uint8

const (
	QualNone ListEditQual = iota
	QualAdd
	QualAppend
	QualPrepend
	QualDelete
	QualReorder
)

func (q ListEditQual) String() string {
	switch q {
	case QualAdd:
		return "add"
	case QualAppend:
		return "append"
	case QualPrepend:
		return "prepend"
	case QualDelete:
		return "delete"
	case QualReorder:
		return "reorder"
	default:
		return ""
	}
}

var listEditKeywords = map[string]ListEditQual{
	"add": QualAdd, "append": QualAppend, "prepend": QualPrepend,
	"delete": QualDelete, "reorder": QualReorder,
}

// parseListEditQual consumes a leading list-edit qualifier keyword if
// present, per §4.F: "optional prefix ... before certain relational or
// composition-arc fields."
func (p *Parser) parseListEditQual() (ListEditQual, error) {
	t, err := p.peek()
	if err != nil {
		return QualNone, err
	}
	if t.Kind != TokIdent {
		return QualNone, nil
	}
	q, ok := listEditKeywords[t.Text]
	if !ok {
		return QualNone, nil
	}
	// Consume it as a qualifier unless '=' follows, in which case it is
	// actually a bare field name spelled the same as a qualifier keyword.
	cp := p.mark()
	p.advance()
	nt, err := p.peek()
	if err != nil {
		return QualNone, err
	}
	if nt.Kind == TokEquals {
		p.rollback(cp)
		return QualNone, nil
	}
	return q, nil
}

// applyPathQual assembles a ListOp[Path] from a qualifier and a parsed
// path list, honoring §3's isExplicit/added/prepended/appended/
// deleted/ordered split.
func applyPathQual(q ListEditQual, paths []value.Path) value.ListOp[value.Path] {
	op := value.ListOp[value.Path]{}
	switch q {
	case QualAdd:
		op.Added = paths
	case QualAppend:
		op.Appended = paths
	case QualPrepend:
		op.Prepended = paths
	case QualDelete:
		op.Deleted = paths
	case QualReorder:
		op.Ordered = paths
	default:
		op.IsExplicit = true
		op.Explicit = paths
	}
	return op
}

func applyStringQual(q ListEditQual, ss []string) value.ListOp[string] {
	op := value.ListOp[string]{}
	switch q {
	case QualAdd:
		op.Added = ss
	case QualAppend:
		op.Appended = ss
	case QualPrepend:
		op.Prepended = ss
	case QualDelete:
		op.Deleted = ss
	case QualReorder:
		op.Ordered = ss
	default:
		op.IsExplicit = true
		op.Explicit = ss
	}
	return op
}

func applyReferenceQual(q ListEditQual, refs []value.Reference) value.ListOp[value.Reference] {
	op := value.ListOp[value.Reference]{}
	switch q {
	case QualAdd:
		op.Added = refs
	case QualAppend:
		op.Appended = refs
	case QualPrepend:
		op.Prepended = refs
	case QualDelete:
		op.Deleted = refs
	case QualReorder:
		op.Ordered = refs
	default:
		op.IsExplicit = true
		op.Explicit = refs
	}
	return op
}
