package prim

import "github.com/sacereda/tinyusdz/value"

// Shader, Material, and the concrete shading-network node types below
// have no header in original_source; their attribute names follow §3's
// listing plus the standard, publicly documented UsdShade/UsdPreviewSurface
// schema attribute set.

// shaderSubtypes lists the info:id values §4.G's shader dispatch
// recognizes. Anything else is an error ("Unknown IDs are an error").
var shaderSubtypes = map[string]func(*value.Prim) schemaType{
	"UsdPreviewSurface":        func(gp *value.Prim) schemaType { return newUsdPreviewSurface(gp) },
	"UsdUVTexture":             func(gp *value.Prim) schemaType { return newUsdUVTexture(gp) },
	"UsdTransform2d":           func(gp *value.Prim) schemaType { return newUsdTransform2d(gp) },
	"UsdPrimvarReader_int":     func(gp *value.Prim) schemaType { return newUsdPrimvarReader(gp, "int") },
	"UsdPrimvarReader_float":   func(gp *value.Prim) schemaType { return newUsdPrimvarReader(gp, "float") },
	"UsdPrimvarReader_float2":  func(gp *value.Prim) schemaType { return newUsdPrimvarReader(gp, "float2") },
	"UsdPrimvarReader_float3":  func(gp *value.Prim) schemaType { return newUsdPrimvarReader(gp, "float3") },
	"UsdPrimvarReader_float4":  func(gp *value.Prim) schemaType { return newUsdPrimvarReader(gp, "float4") },
}

// ShaderInfoID reads the uniform token info:id property required on
// every Shader prim, without going through the general resolver: the
// value selects which subtype schema to build in the first place, per
// §4.G's shader dispatch.
func ShaderInfoID(gp *value.Prim) (string, bool) {
	prop, ok := gp.Props["info:id"]
	if !ok || prop.IsRelationship {
		return "", false
	}
	v, err := prop.Attr.Scalar()
	if err != nil {
		return "", false
	}
	tok, err := v.AsToken()
	if err != nil {
		return "", false
	}
	return tok.String(), true
}

// UsdPreviewSurface is the portable physically-based surface shader.
type UsdPreviewSurface struct {
	Base
	InfoID              *Slot
	DiffuseColor        *Slot
	EmissiveColor       *Slot
	UseSpecularWorkflow *Slot
	SpecularColor       *Slot
	Metallic            *Slot
	Roughness           *Slot
	Clearcoat           *Slot
	ClearcoatRoughness  *Slot
	Opacity             *Slot
	OpacityThreshold    *Slot
	IOR                 *Slot
	Normal              *Slot
	Displacement        *Slot
	Occlusion           *Slot
	OutputsSurface      *Slot
	OutputsDisplacement *Slot
}

func newUsdPreviewSurface(gp *value.Prim) *UsdPreviewSurface {
	return &UsdPreviewSurface{
		Base:                newBase(gp),
		InfoID:              newUniformSlot("token", false, value.TokenVal(value.NewToken("UsdPreviewSurface"))),
		DiffuseColor:        newSlotWithDefault("color3f", false, value.Vec(value.KindVec3f, []float64{0.18, 0.18, 0.18})),
		EmissiveColor:       newSlotWithDefault("color3f", false, value.Vec(value.KindVec3f, []float64{0, 0, 0})),
		UseSpecularWorkflow: newUniformSlot("int", false, value.Int(0)),
		SpecularColor:       newSlotWithDefault("color3f", false, value.Vec(value.KindVec3f, []float64{0, 0, 0})),
		Metallic:            newSlotWithDefault("float", false, value.Float(0.0)),
		Roughness:           newSlotWithDefault("float", false, value.Float(0.5)),
		Clearcoat:           newSlotWithDefault("float", false, value.Float(0.0)),
		ClearcoatRoughness:  newSlotWithDefault("float", false, value.Float(0.01)),
		Opacity:             newSlotWithDefault("float", false, value.Float(1.0)),
		OpacityThreshold:    newSlotWithDefault("float", false, value.Float(0.0)),
		IOR:                 newSlotWithDefault("float", false, value.Float(1.5)),
		Normal:              newSlotWithDefault("normal3f", false, value.Vec(value.KindVec3f, []float64{0, 0, 1})),
		Displacement:        newSlotWithDefault("float", false, value.Float(0.0)),
		Occlusion:           newSlotWithDefault("float", false, value.Float(1.0)),
		OutputsSurface:      newTerminalSlot("token"),
		OutputsDisplacement: newTerminalSlot("token"),
	}
}

func (s *UsdPreviewSurface) attrs() []AttrDef {
	return []AttrDef{
		{Name: "info:id", Slot: s.InfoID},
		{Name: "inputs:diffuseColor", Slot: s.DiffuseColor},
		{Name: "inputs:emissiveColor", Slot: s.EmissiveColor},
		{Name: "inputs:useSpecularWorkflow", Slot: s.UseSpecularWorkflow},
		{Name: "inputs:specularColor", Slot: s.SpecularColor},
		{Name: "inputs:metallic", Slot: s.Metallic},
		{Name: "inputs:roughness", Slot: s.Roughness},
		{Name: "inputs:clearcoat", Slot: s.Clearcoat},
		{Name: "inputs:clearcoatRoughness", Slot: s.ClearcoatRoughness},
		{Name: "inputs:opacity", Slot: s.Opacity},
		{Name: "inputs:opacityThreshold", Slot: s.OpacityThreshold},
		{Name: "inputs:ior", Slot: s.IOR},
		{Name: "inputs:normal", Slot: s.Normal},
		{Name: "inputs:displacement", Slot: s.Displacement},
		{Name: "inputs:occlusion", Slot: s.Occlusion},
		{Name: "outputs:surface", Slot: s.OutputsSurface},
		{Name: "outputs:displacement", Slot: s.OutputsDisplacement},
	}
}

var textureWrapEnum = []string{"black", "clamp", "repeat", "mirror"}
var textureColorSpaceEnum = []string{"raw", "sRGB", "auto"}

// UsdUVTexture samples an image asset.
type UsdUVTexture struct {
	Base
	InfoID           *Slot
	File             *Slot
	St               *Slot
	WrapS            *Slot
	WrapT            *Slot
	Fallback         *Slot
	Scale            *Slot
	Bias             *Slot
	SourceColorSpace *Slot
	OutputsR         *Slot
	OutputsG         *Slot
	OutputsB         *Slot
	OutputsA         *Slot
	OutputsRGB       *Slot
}

func newUsdUVTexture(gp *value.Prim) *UsdUVTexture {
	return &UsdUVTexture{
		Base:             newBase(gp),
		InfoID:           newUniformSlot("token", false, value.TokenVal(value.NewToken("UsdUVTexture"))),
		File:             newSlot("asset", false),
		St:               newSlotWithDefault("float2", false, value.Vec(value.KindVec2f, []float64{0, 0})),
		WrapS:            enumSlot("token", "black", textureWrapEnum),
		WrapT:            enumSlot("token", "black", textureWrapEnum),
		Fallback:         newSlotWithDefault("float4", false, value.Vec(value.KindVec4f, []float64{0, 0, 0, 1})),
		Scale:            newSlotWithDefault("float4", false, value.Vec(value.KindVec4f, []float64{1, 1, 1, 1})),
		Bias:             newSlotWithDefault("float4", false, value.Vec(value.KindVec4f, []float64{0, 0, 0, 0})),
		SourceColorSpace: enumSlot("token", "auto", textureColorSpaceEnum),
		OutputsR:         newTerminalSlot("float"),
		OutputsG:         newTerminalSlot("float"),
		OutputsB:         newTerminalSlot("float"),
		OutputsA:         newTerminalSlot("float"),
		OutputsRGB:       newTerminalSlot("float3"),
	}
}

func (t *UsdUVTexture) attrs() []AttrDef {
	return []AttrDef{
		{Name: "info:id", Slot: t.InfoID},
		{Name: "inputs:file", Slot: t.File},
		{Name: "inputs:st", Slot: t.St},
		{Name: "inputs:wrapS", Slot: t.WrapS},
		{Name: "inputs:wrapT", Slot: t.WrapT},
		{Name: "inputs:fallback", Slot: t.Fallback},
		{Name: "inputs:scale", Slot: t.Scale},
		{Name: "inputs:bias", Slot: t.Bias},
		{Name: "inputs:sourceColorSpace", Slot: t.SourceColorSpace},
		{Name: "outputs:r", Slot: t.OutputsR},
		{Name: "outputs:g", Slot: t.OutputsG},
		{Name: "outputs:b", Slot: t.OutputsB},
		{Name: "outputs:a", Slot: t.OutputsA},
		{Name: "outputs:rgb", Slot: t.OutputsRGB},
	}
}

// UsdPrimvarReader reads a named primvar as one of the T variants in
// info:id's UsdPrimvarReader_{int,float,float2,float3,float4} family.
type UsdPrimvarReader struct {
	Base
	ResultType string
	InfoID     *Slot
	Varname    *Slot
	Fallback   *Slot
	Result     *Slot
}

func newUsdPrimvarReader(gp *value.Prim, resultType string) *UsdPrimvarReader {
	return &UsdPrimvarReader{
		Base:       newBase(gp),
		ResultType: resultType,
		InfoID:     newUniformSlot("token", false, value.TokenVal(value.NewToken("UsdPrimvarReader_"+resultType))),
		Varname:    newSlot("token", false),
		Fallback:   newSlot(resultType, false),
		Result:     newTerminalSlot(resultType),
	}
}

func (r *UsdPrimvarReader) attrs() []AttrDef {
	return []AttrDef{
		{Name: "info:id", Slot: r.InfoID},
		{Name: "inputs:varname", Slot: r.Varname},
		{Name: "inputs:fallback", Slot: r.Fallback},
		{Name: "outputs:result", Slot: r.Result},
	}
}

// UsdTransform2d applies an affine 2D transform to a texture coordinate.
type UsdTransform2d struct {
	Base
	InfoID      *Slot
	In          *Slot
	Rotation    *Slot
	Scale       *Slot
	Translation *Slot
	Result      *Slot
}

func newUsdTransform2d(gp *value.Prim) *UsdTransform2d {
	return &UsdTransform2d{
		Base:        newBase(gp),
		InfoID:      newUniformSlot("token", false, value.TokenVal(value.NewToken("UsdTransform2d"))),
		In:          newSlot("float2", false),
		Rotation:    newSlotWithDefault("float", false, value.Float(0.0)),
		Scale:       newSlotWithDefault("float2", false, value.Vec(value.KindVec2f, []float64{1, 1})),
		Translation: newSlotWithDefault("float2", false, value.Vec(value.KindVec2f, []float64{0, 0})),
		Result:      newTerminalSlot("float2"),
	}
}

func (t *UsdTransform2d) attrs() []AttrDef {
	return []AttrDef{
		{Name: "info:id", Slot: t.InfoID},
		{Name: "inputs:in", Slot: t.In},
		{Name: "inputs:rotation", Slot: t.Rotation},
		{Name: "inputs:scale", Slot: t.Scale},
		{Name: "inputs:translation", Slot: t.Translation},
		{Name: "outputs:result", Slot: t.Result},
	}
}

// Material binds a shading network's terminal outputs to a boundable
// prim via GPrim.MaterialBinding.
type Material struct {
	GPrim
	OutputsSurface      *Slot
	OutputsDisplacement *Slot
	OutputsVolume       *Slot
}

func newMaterial(gp *value.Prim) *Material {
	return &Material{
		GPrim:               newGPrim(gp),
		OutputsSurface:      newTerminalSlot("token"),
		OutputsDisplacement: newTerminalSlot("token"),
		OutputsVolume:       newTerminalSlot("token"),
	}
}

func (m *Material) attrs() []AttrDef {
	return append(m.GPrim.attrs(),
		AttrDef{Name: "outputs:surface", Slot: m.OutputsSurface},
		AttrDef{Name: "outputs:displacement", Slot: m.OutputsDisplacement},
		AttrDef{Name: "outputs:volume", Slot: m.OutputsVolume},
	)
}
