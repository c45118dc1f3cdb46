package graphics

// Chunk shaders. Attribute locations match meshing.Mesh.Interleaved.
const chunkVertexShader = `#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 model;
uniform mat4 view;
uniform mat4 proj;

out vec3 vNormal;
out vec2 vUV;
out float vDepth;

void main() {
    vec4 eye = view * model * vec4(aPos, 1.0);
    vNormal = aNormal;
    vUV = aUV;
    vDepth = -eye.z;
    gl_Position = proj * eye;
}
`

const chunkFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vUV;
in float vDepth;

// east, west, top, bottom, north, south
uniform float faceShade[6];
uniform vec3 topColor;
uniform vec3 sideColor;
uniform vec3 fogColor;
uniform float fogEnd;

out vec4 FragColor;

int faceIndex(vec3 n) {
    if (n.x > 0.5) return 0;
    if (n.x < -0.5) return 1;
    if (n.y > 0.5) return 2;
    if (n.y < -0.5) return 3;
    if (n.z > 0.5) return 4;
    return 5;
}

void main() {
    int f = faceIndex(vNormal);
    vec3 base = f == 2 ? topColor : sideColor;

    // darken block edges so individual cubes stay readable
    vec2 e = min(vUV, 1.0 - vUV);
    float edge = smoothstep(0.0, 0.04, min(e.x, e.y));
    vec3 color = base * faceShade[f] * mix(0.75, 1.0, edge);

    float fog = clamp(vDepth / fogEnd, 0.0, 1.0);
    FragColor = vec4(mix(color, fogColor, fog * fog), 1.0);
}
`
