package gl

import "sort"

// Constants used by the host itself.
const (
	DepthBufferBit   uint32 = 0x00000100
	StencilBufferBit uint32 = 0x00000400
	ColorBufferBit   uint32 = 0x00004000

	Points        uint32 = 0x0000
	Lines         uint32 = 0x0001
	LineLoop      uint32 = 0x0002
	LineStrip     uint32 = 0x0003
	Triangles     uint32 = 0x0004
	TriangleStrip uint32 = 0x0005
	TriangleFan   uint32 = 0x0006

	ArrayBuffer        uint32 = 0x8892
	ElementArrayBuffer uint32 = 0x8893
	StreamDraw         uint32 = 0x88E0
	StaticDraw         uint32 = 0x88E4
	DynamicDraw        uint32 = 0x88E8

	CullFace          uint32 = 0x0B44
	Blend             uint32 = 0x0BE2
	Dither            uint32 = 0x0BD0
	StencilTest       uint32 = 0x0B90
	DepthTest         uint32 = 0x0B71
	ScissorTest       uint32 = 0x0C11
	PolygonOffsetFill uint32 = 0x8037

	NoError          uint32 = 0
	InvalidEnum      uint32 = 0x0500
	InvalidValue     uint32 = 0x0501
	InvalidOperation uint32 = 0x0502
	OutOfMemory      uint32 = 0x0505

	Never    uint32 = 0x0200
	Less     uint32 = 0x0201
	Equal    uint32 = 0x0202
	Lequal   uint32 = 0x0203
	Greater  uint32 = 0x0204
	Notequal uint32 = 0x0205
	Gequal   uint32 = 0x0206
	Always   uint32 = 0x0207

	Byte          uint32 = 0x1400
	UnsignedByte  uint32 = 0x1401
	Short         uint32 = 0x1402
	UnsignedShort uint32 = 0x1403
	Int           uint32 = 0x1404
	UnsignedInt   uint32 = 0x1405
	Float         uint32 = 0x1406

	FragmentShader uint32 = 0x8B30
	VertexShader   uint32 = 0x8B31
	CompileStatus  uint32 = 0x8B81
	LinkStatus     uint32 = 0x8B82

	CW  uint32 = 0x0900
	CCW uint32 = 0x0901
)

// Constants maps every numeric WebGL 1 constant to its value, keyed by its WebGL name.
var Constants = map[string]uint32{
	"DEPTH_BUFFER_BIT":   DepthBufferBit,
	"STENCIL_BUFFER_BIT": StencilBufferBit,
	"COLOR_BUFFER_BIT":   ColorBufferBit,

	"POINTS":         Points,
	"LINES":          Lines,
	"LINE_LOOP":      LineLoop,
	"LINE_STRIP":     LineStrip,
	"TRIANGLES":      Triangles,
	"TRIANGLE_STRIP": TriangleStrip,
	"TRIANGLE_FAN":   TriangleFan,

	"ZERO":                     0,
	"ONE":                      1,
	"SRC_COLOR":                0x0300,
	"ONE_MINUS_SRC_COLOR":      0x0301,
	"SRC_ALPHA":                0x0302,
	"ONE_MINUS_SRC_ALPHA":      0x0303,
	"DST_ALPHA":                0x0304,
	"ONE_MINUS_DST_ALPHA":      0x0305,
	"DST_COLOR":                0x0306,
	"ONE_MINUS_DST_COLOR":      0x0307,
	"SRC_ALPHA_SATURATE":       0x0308,
	"FUNC_ADD":                 0x8006,
	"BLEND_EQUATION":           0x8009,
	"BLEND_EQUATION_RGB":       0x8009,
	"BLEND_EQUATION_ALPHA":     0x883D,
	"FUNC_SUBTRACT":            0x800A,
	"FUNC_REVERSE_SUBTRACT":    0x800B,
	"BLEND_DST_RGB":            0x80C8,
	"BLEND_SRC_RGB":            0x80C9,
	"BLEND_DST_ALPHA":          0x80CA,
	"BLEND_SRC_ALPHA":          0x80CB,
	"CONSTANT_COLOR":           0x8001,
	"ONE_MINUS_CONSTANT_COLOR": 0x8002,
	"CONSTANT_ALPHA":           0x8003,
	"ONE_MINUS_CONSTANT_ALPHA": 0x8004,
	"BLEND_COLOR":              0x8005,

	"ARRAY_BUFFER":                 ArrayBuffer,
	"ELEMENT_ARRAY_BUFFER":         ElementArrayBuffer,
	"ARRAY_BUFFER_BINDING":         0x8894,
	"ELEMENT_ARRAY_BUFFER_BINDING": 0x8895,
	"STREAM_DRAW":                  StreamDraw,
	"STATIC_DRAW":                  StaticDraw,
	"DYNAMIC_DRAW":                 DynamicDraw,
	"BUFFER_SIZE":                  0x8764,
	"BUFFER_USAGE":                 0x8765,
	"CURRENT_VERTEX_ATTRIB":        0x8626,

	"FRONT":                    0x0404,
	"BACK":                     0x0405,
	"FRONT_AND_BACK":           0x0408,
	"CULL_FACE":                CullFace,
	"BLEND":                    Blend,
	"DITHER":                   Dither,
	"STENCIL_TEST":             StencilTest,
	"DEPTH_TEST":               DepthTest,
	"SCISSOR_TEST":             ScissorTest,
	"POLYGON_OFFSET_FILL":      PolygonOffsetFill,
	"SAMPLE_ALPHA_TO_COVERAGE": 0x809E,
	"SAMPLE_COVERAGE":          0x80A0,

	"NO_ERROR":          NoError,
	"INVALID_ENUM":      InvalidEnum,
	"INVALID_VALUE":     InvalidValue,
	"INVALID_OPERATION": InvalidOperation,
	"OUT_OF_MEMORY":     OutOfMemory,

	"CW":                       CW,
	"CCW":                      CCW,
	"LINE_WIDTH":               0x0B21,
	"ALIASED_POINT_SIZE_RANGE": 0x846D,
	"ALIASED_LINE_WIDTH_RANGE": 0x846E,
	"CULL_FACE_MODE":           0x0B45,
	"FRONT_FACE":               0x0B46,
	"DEPTH_RANGE":              0x0B70,
	"DEPTH_WRITEMASK":          0x0B72,
	"DEPTH_CLEAR_VALUE":        0x0B73,
	"DEPTH_FUNC":               0x0B74,
	"STENCIL_CLEAR_VALUE":      0x0B91,
	"STENCIL_FUNC":             0x0B92,
	"VIEWPORT":                 0x0BA2,
	"SCISSOR_BOX":              0x0C10,
	"COLOR_CLEAR_VALUE":        0x0C22,
	"COLOR_WRITEMASK":          0x0C23,
	"UNPACK_ALIGNMENT":         0x0CF5,
	"PACK_ALIGNMENT":           0x0D05,
	"MAX_TEXTURE_SIZE":         0x0D33,
	"MAX_VIEWPORT_DIMS":        0x0D3A,

	"DONT_CARE":            0x1100,
	"FASTEST":              0x1101,
	"NICEST":               0x1102,
	"GENERATE_MIPMAP_HINT": 0x8192,

	"BYTE":           Byte,
	"UNSIGNED_BYTE":  UnsignedByte,
	"SHORT":          Short,
	"UNSIGNED_SHORT": UnsignedShort,
	"INT":            Int,
	"UNSIGNED_INT":   UnsignedInt,
	"FLOAT":          Float,

	"DEPTH_COMPONENT": 0x1902,
	"ALPHA":           0x1906,
	"RGB":             0x1907,
	"RGBA":            0x1908,
	"LUMINANCE":       0x1909,
	"LUMINANCE_ALPHA": 0x190A,

	"FRAGMENT_SHADER":          FragmentShader,
	"VERTEX_SHADER":            VertexShader,
	"MAX_VERTEX_ATTRIBS":       0x8869,
	"SHADER_TYPE":              0x8B4F,
	"DELETE_STATUS":            0x8B80,
	"COMPILE_STATUS":           CompileStatus,
	"LINK_STATUS":              LinkStatus,
	"VALIDATE_STATUS":          0x8B83,
	"ATTACHED_SHADERS":         0x8B85,
	"ACTIVE_UNIFORMS":          0x8B86,
	"ACTIVE_ATTRIBUTES":        0x8B89,
	"SHADING_LANGUAGE_VERSION": 0x8B8C,
	"CURRENT_PROGRAM":          0x8B8D,

	"NEVER":    Never,
	"LESS":     Less,
	"EQUAL":    Equal,
	"LEQUAL":   Lequal,
	"GREATER":  Greater,
	"NOTEQUAL": Notequal,
	"GEQUAL":   Gequal,
	"ALWAYS":   Always,

	"KEEP":      0x1E00,
	"REPLACE":   0x1E01,
	"INCR":      0x1E02,
	"DECR":      0x1E03,
	"INVERT":    0x150A,
	"INCR_WRAP": 0x8507,
	"DECR_WRAP": 0x8508,

	"VENDOR":   0x1F00,
	"RENDERER": 0x1F01,
	"VERSION":  0x1F02,

	"NEAREST":                0x2600,
	"LINEAR":                 0x2601,
	"NEAREST_MIPMAP_NEAREST": 0x2700,
	"LINEAR_MIPMAP_NEAREST":  0x2701,
	"NEAREST_MIPMAP_LINEAR":  0x2702,
	"LINEAR_MIPMAP_LINEAR":   0x2703,
	"TEXTURE_MAG_FILTER":     0x2800,
	"TEXTURE_MIN_FILTER":     0x2801,
	"TEXTURE_WRAP_S":         0x2802,
	"TEXTURE_WRAP_T":         0x2803,
	"TEXTURE_2D":             0x0DE1,
	"TEXTURE":                0x1702,
	"TEXTURE_CUBE_MAP":       0x8513,
	"TEXTURE0":               0x84C0,
	"ACTIVE_TEXTURE":         0x84E0,
	"REPEAT":                 0x2901,
	"CLAMP_TO_EDGE":          0x812F,
	"MIRRORED_REPEAT":        0x8370,

	"FRAMEBUFFER":          0x8D40,
	"RENDERBUFFER":         0x8D41,
	"FRAMEBUFFER_COMPLETE": 0x8CD5,

	"UNPACK_FLIP_Y_WEBGL":            0x9240,
	"UNPACK_PREMULTIPLY_ALPHA_WEBGL": 0x9241,
	"CONTEXT_LOST_WEBGL":             0x9242,
}

// ConstantNames returns the names in Constants, sorted.
func ConstantNames() []string {
	names := make([]string, 0, len(Constants))
	for name := range Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
