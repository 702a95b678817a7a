package prim

import "testing"

func TestTypeNamesCompatible_RoleAliases(t *testing.T) {
	cases := []struct{ authored, expected string }{
		{"point3f", "float3"},
		{"vector3f", "float3"},
		{"normal3f", "float3"},
		{"color3f", "float3"},
		{"texCoord2f", "float2"},
		{"frame4d", "matrix4d"},
		{"double", "double"},
	}
	for _, c := range cases {
		if !typeNamesCompatible(c.authored, c.expected) {
			t.Errorf("typeNamesCompatible(%q, %q) = false, want true", c.authored, c.expected)
		}
	}
}

func TestTypeNamesCompatible_Mismatch(t *testing.T) {
	if typeNamesCompatible("int", "double") {
		t.Error("typeNamesCompatible(int, double) = true, want false")
	}
	if typeNamesCompatible("point3f", "double3") {
		t.Error("typeNamesCompatible(point3f, double3) = true, want false (single vs double precision)")
	}
}
