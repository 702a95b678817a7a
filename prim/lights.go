package prim

import "github.com/sacereda/tinyusdz/value"

// LightAPI is the attribute set every UsdLux light shares; grounded on
// §3's light-kind listing plus the standard UsdLux schema (no header for
// lights exists in original_source).
type LightAPI struct {
	GPrim
	Intensity              *Slot
	Exposure               *Slot
	Color                  *Slot
	ColorTemperature       *Slot
	EnableColorTemperature *Slot
	Diffuse                *Slot
	Specular               *Slot
	Normalize              *Slot
}

func newLightAPI(gp *value.Prim) LightAPI {
	return LightAPI{
		GPrim:                  newGPrim(gp),
		Intensity:              newSlotWithDefault("float", false, value.Float(1.0)),
		Exposure:               newSlotWithDefault("float", false, value.Float(0.0)),
		Color:                  newSlotWithDefault("color3f", false, value.Vec(value.KindVec3f, []float64{1, 1, 1})),
		ColorTemperature:       newSlotWithDefault("float", false, value.Float(6500.0)),
		EnableColorTemperature: newUniformSlot("bool", false, value.Bool(false)),
		Diffuse:                newSlotWithDefault("float", false, value.Float(1.0)),
		Specular:               newSlotWithDefault("float", false, value.Float(1.0)),
		Normalize:              newUniformSlot("bool", false, value.Bool(false)),
	}
}

func (l *LightAPI) attrs() []AttrDef {
	return append(l.GPrim.attrs(),
		AttrDef{Name: "inputs:intensity", Slot: l.Intensity},
		AttrDef{Name: "inputs:exposure", Slot: l.Exposure},
		AttrDef{Name: "inputs:color", Slot: l.Color},
		AttrDef{Name: "inputs:colorTemperature", Slot: l.ColorTemperature},
		AttrDef{Name: "inputs:enableColorTemperature", Slot: l.EnableColorTemperature},
		AttrDef{Name: "inputs:diffuse", Slot: l.Diffuse},
		AttrDef{Name: "inputs:specular", Slot: l.Specular},
		AttrDef{Name: "inputs:normalize", Slot: l.Normalize},
	)
}

// SphereLight, per UsdLux: inputs:radius{0.5}.
type SphereLight struct {
	LightAPI
	Radius *Slot
}

func newSphereLight(gp *value.Prim) *SphereLight {
	return &SphereLight{LightAPI: newLightAPI(gp), Radius: newSlotWithDefault("float", false, value.Float(0.5))}
}

func (l *SphereLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(), AttrDef{Name: "inputs:radius", Slot: l.Radius})
}

// RectLight, per UsdLux: inputs:width{1}, inputs:height{1}.
type RectLight struct {
	LightAPI
	Width  *Slot
	Height *Slot
	File   *Slot
}

func newRectLight(gp *value.Prim) *RectLight {
	return &RectLight{
		LightAPI: newLightAPI(gp),
		Width:    newSlotWithDefault("float", false, value.Float(1.0)),
		Height:   newSlotWithDefault("float", false, value.Float(1.0)),
		File:     newSlot("asset", false),
	}
}

func (l *RectLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(),
		AttrDef{Name: "inputs:width", Slot: l.Width},
		AttrDef{Name: "inputs:height", Slot: l.Height},
		AttrDef{Name: "inputs:texture:file", Slot: l.File},
	)
}

// DiskLight, per UsdLux: inputs:radius{0.5}.
type DiskLight struct {
	LightAPI
	Radius *Slot
}

func newDiskLight(gp *value.Prim) *DiskLight {
	return &DiskLight{LightAPI: newLightAPI(gp), Radius: newSlotWithDefault("float", false, value.Float(0.5))}
}

func (l *DiskLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(), AttrDef{Name: "inputs:radius", Slot: l.Radius})
}

// CylinderLight, per UsdLux: inputs:radius{0.5}, inputs:length{1}.
type CylinderLight struct {
	LightAPI
	Radius *Slot
	Length *Slot
}

func newCylinderLight(gp *value.Prim) *CylinderLight {
	return &CylinderLight{
		LightAPI: newLightAPI(gp),
		Radius:   newSlotWithDefault("float", false, value.Float(0.5)),
		Length:   newSlotWithDefault("float", false, value.Float(1.0)),
	}
}

func (l *CylinderLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(),
		AttrDef{Name: "inputs:radius", Slot: l.Radius},
		AttrDef{Name: "inputs:length", Slot: l.Length},
	)
}

// DistantLight, per UsdLux: inputs:angle{0.53}.
type DistantLight struct {
	LightAPI
	Angle *Slot
}

func newDistantLight(gp *value.Prim) *DistantLight {
	return &DistantLight{LightAPI: newLightAPI(gp), Angle: newSlotWithDefault("float", false, value.Float(0.53))}
}

func (l *DistantLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(), AttrDef{Name: "inputs:angle", Slot: l.Angle})
}

var domeLightTextureFormatEnum = []string{"automatic", "latlong", "mirroredBall", "angular", "cubeMapVerticalCross"}

// DomeLight, per UsdLux: inputs:texture:file (optional environment map).
type DomeLight struct {
	LightAPI
	TextureFile   *Slot
	TextureFormat *Slot
}

func newDomeLight(gp *value.Prim) *DomeLight {
	return &DomeLight{
		LightAPI:      newLightAPI(gp),
		TextureFile:   newSlot("asset", false),
		TextureFormat: enumSlot("token", "automatic", domeLightTextureFormatEnum),
	}
}

func (l *DomeLight) attrs() []AttrDef {
	return append(l.LightAPI.attrs(),
		AttrDef{Name: "inputs:texture:file", Slot: l.TextureFile},
		AttrDef{Name: "inputs:texture:format", Slot: l.TextureFormat},
	)
}
