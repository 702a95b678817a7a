package prim

// roleAliases maps a usda "role" type spelling to the plain underlying
// type spelling it shares storage with, mirroring ascii/typenames.go's
// typeKinds table (point3f/vector3f/normal3f/color3f all back onto the
// same Vec3f storage; texCoord2f onto Vec2f; frame4d onto matrix4d). The
// reconstructor's type-mismatch check (§4.G, §8 scenario 5: "type name
// of attr ≠ expected T's type name (and its underlying)") must treat an
// authored role type as compatible with a schema field declared in
// either spelling.
var roleAliases = map[string]string{
	"point3f": "float3", "point3d": "double3", "point3h": "half3",
	"vector3f": "float3", "vector3d": "double3", "vector3h": "half3",
	"normal3f": "float3", "normal3d": "double3", "normal3h": "half3",
	"color3f": "float3", "color3d": "double3", "color3h": "half3",
	"color4f": "float4", "color4d": "double4", "color4h": "half4",
	"texCoord2f": "float2", "texCoord2d": "double2", "texCoord2h": "half2",
	"frame4d": "matrix4d",
}

// canonicalTypeName resolves role aliases down to their underlying
// spelling so "point3f" and "float3" compare equal.
func canonicalTypeName(name string) string {
	if base, ok := roleAliases[name]; ok {
		return base
	}
	return name
}

// typeNamesCompatible reports whether an authored type name satisfies a
// schema slot's expected type name, per §4.G's "and its underlying"
// clause.
func typeNamesCompatible(authored, expected string) bool {
	return canonicalTypeName(authored) == canonicalTypeName(expected)
}
