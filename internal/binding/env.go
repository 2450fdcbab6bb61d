package binding

import "fmt"

// legacyNames maps the earlier env import names to their webgl entries.
var legacyNames = map[string]string{
	"compileShader":             "compileShader",
	"linkShaderProgram":         "linkShaderProgram",
	"glClearColor":              "clearColor",
	"glEnable":                  "enable",
	"glDepthFunc":               "depthFunc",
	"glClear":                   "clear",
	"glGetAttribLocation":       "getAttribLocation",
	"glGetUniformLocation":      "getUniformLocation",
	"glUniform4fv":              "uniform4fv",
	"glCreateBuffer":            "createBuffer",
	"glBindBuffer":              "bindBuffer",
	"glBufferData":              "bufferData",
	"glUseProgram":              "useProgram",
	"glEnableVertexAttribArray": "enableVertexAttribArray",
	"glVertexAttribPointer":     "vertexAttribPointer",
	"glDrawArrays":              "drawArrays",
}

// Env returns the env namespace for modules built against the explicit gl* imports.
// Each entry is the composed webgl entry it aliases.
func Env(webgl *Namespace) *Namespace {
	funcs := make(map[string]Func, len(legacyNames))
	for alias, name := range legacyNames {
		f, ok := webgl.Lookup(name)
		if !ok {
			panic(fmt.Sprintf("binding: env alias %s targets missing webgl entry %s", alias, name))
		}
		funcs[alias] = f
	}
	return NewNamespace(EnvNamespace).Layer(funcs)
}
