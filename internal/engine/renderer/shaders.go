package renderer

// The vertex shader rebuilds the fixed-point position from the four u32
// lanes of packed.Vec3 (lane 0 lowest). Fields: z bits 0..41, y bits
// 42..84, x bits 85..127, each signed with 14 fractional bits. The
// arithmetic mirrors packed.LanesToFloat32.
const planetVertexShader = `
#version 410 core

layout (location = 0) in uvec4 aPacked;
layout (location = 1) in vec4 aColor;

uniform mat4 uViewProj;
uniform float uInvScale;

out vec3 vColor;
out vec3 vNormal;

vec3 decode(uvec4 l) {
	float x = float(int(l.w)) * 2048.0 + float(l.z >> 21u);

	int yTop = int(l.z << 11u) >> 11;
	float y = float(yTop) * 4194304.0 + float(l.y >> 10u);

	int zTop = int(l.y << 22u) >> 22;
	int zLow = int(l.x);
	if (zLow < 0) {
		zTop += 1;
	}
	float z = float(zTop) * 4294967296.0 + float(zLow);

	return vec3(x, y, z) * uInvScale;
}

void main() {
	vec3 pos = decode(aPacked);
	gl_Position = uViewProj * vec4(pos, 1.0);
	vColor = aColor.rgb;
	vNormal = normalize(pos);
}
`

const planetFragmentShader = `
#version 410 core

in vec3 vColor;
in vec3 vNormal;

uniform vec3 uLightDir;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	float diffuse = max(dot(normalize(vNormal), uLightDir), 0.0);
	FragColor = vec4(vColor * (uAmbient + (1.0 - uAmbient) * diffuse), 1.0);
}
`
