package graphics

import "fmt"

const zOnlyVertex = `#version 120
void main() {
	gl_Position = ftransform();
}
`

const zOnlyFragment = `#version 120
void main() {
	gl_FragColor = vec4(1.0);
}
`

// The shadow receiver lights with light 0 and samples a depth texture
// through shadowMatrix (bias * lightProjection * lightView * model).
const shadowReceiverVertex = `#version 120
uniform mat4 shadowMatrix;
varying vec4 shadowCoord;
varying vec4 diffuse;
varying vec4 ambient;
varying vec2 uv;

void main() {
	vec3 normal = normalize(gl_NormalMatrix * gl_Normal);
	vec4 eyePos = gl_ModelViewMatrix * gl_Vertex;
	vec4 lightPos = gl_LightSource[0].position;
	vec3 lightDir = normalize(lightPos.xyz - eyePos.xyz * lightPos.w);
	float nDotL = max(dot(normal, lightDir), 0.0);

	diffuse = gl_FrontMaterial.diffuse * gl_LightSource[0].diffuse * nDotL * gl_Color;
	ambient = gl_FrontMaterial.ambient * gl_LightSource[0].ambient * gl_Color;
	shadowCoord = shadowMatrix * gl_Vertex;
	uv = gl_MultiTexCoord0.xy;
	gl_Position = ftransform();
}
`

const shadowReceiverFragment = `#version 120
uniform sampler2D mainTexture;
uniform sampler2DShadow shadowMap;
varying vec4 shadowCoord;
varying vec4 diffuse;
varying vec4 ambient;
varying vec2 uv;

void main() {
	vec3 coord = shadowCoord.xyz / shadowCoord.w;
	coord.z -= 0.0005;
	float lit = shadow2D(shadowMap, coord).r;
	vec4 base = texture2D(mainTexture, uv);
	gl_FragColor = base * (ambient + diffuse * lit);
}
`

// DefaultShaders lazily compiles and caches the built-in programs.
type DefaultShaders struct {
	dev     Device
	zOnly   *Shader
	shadows *Shader
}

func NewDefaultShaders(dev Device) *DefaultShaders {
	return &DefaultShaders{dev: dev}
}

// ZOnly returns the depth-only program used by the Z prepass.
func (d *DefaultShaders) ZOnly() (*Shader, error) {
	if d.zOnly == nil {
		s, err := NewShaderFromSource(d.dev, zOnlyVertex, zOnlyFragment)
		if err != nil {
			return nil, fmt.Errorf("z-only shader: %w", err)
		}
		d.zOnly = s
	}
	return d.zOnly, nil
}

// ShadowReceiver returns the lit, shadow-mapped program. It samples the
// material texture from unit 0 and the shadow map from unit 1.
func (d *DefaultShaders) ShadowReceiver() (*Shader, error) {
	if d.shadows == nil {
		s, err := NewShaderFromSource(d.dev, shadowReceiverVertex, shadowReceiverFragment)
		if err != nil {
			return nil, fmt.Errorf("shadow receiver shader: %w", err)
		}
		d.shadows = s
	}
	return d.shadows, nil
}

// Release deletes every program compiled so far.
func (d *DefaultShaders) Release() {
	if d.zOnly != nil {
		d.zOnly.Delete()
		d.zOnly = nil
	}
	if d.shadows != nil {
		d.shadows.Delete()
		d.shadows = nil
	}
}
