// Package ttl generates the Turtle files of an LV2 bundle: manifest.ttl,
// which tells hosts where the binary is, and the plugin description with
// its ports.
package ttl

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"text/template"

	"github.com/joomcode/errorx"

	framework "github.com/giannisalinetti/lv2go/pkg/framework/plugin"
	"github.com/giannisalinetti/lv2go/pkg/framework/port"
	"github.com/giannisalinetti/lv2go/pkg/lv2"
)

// ManifestFile is the fixed name of the bundle manifest.
const ManifestFile = "manifest.ttl"

// Options tune the generated bundle.
type Options struct {
	// Extension of the shared library including the dot. Defaults to the
	// platform extension for the running GOOS.
	Extension string
}

// Bundle holds the generated files.
type Bundle struct {
	Manifest   []byte
	Plugin     []byte
	PluginFile string
	BinaryFile string
}

// LibraryExtension returns the shared library extension for goos.
func LibraryExtension(goos string) string {
	switch goos {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

type templateData struct {
	Info       framework.Info
	Class      string
	Minor      int
	Micro      int
	Ports      []port.Port
	PluginFile string
	BinaryFile string
}

var funcs = template.FuncMap{
	"str":     quote,
	"decimal": decimal,
	"last":    func(i int, ports []port.Port) bool { return i == len(ports)-1 },
}

var manifestTemplate = template.Must(template.New("manifest").Funcs(funcs).Parse(
	`@prefix lv2:  <` + lv2.CorePrefix + `> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<{{.Info.URI}}>
	a lv2:Plugin ;
	lv2:binary <{{.BinaryFile}}> ;
	rdfs:seeAlso <{{.PluginFile}}> .
`))

var pluginTemplate = template.Must(template.New("plugin").Funcs(funcs).Parse(
	`@prefix doap: <http://usefulinc.com/ns/doap#> .
@prefix foaf: <http://xmlns.com/foaf/0.1/> .
@prefix lv2:  <` + lv2.CorePrefix + `> .
@prefix rdfs: <http://www.w3.org/2000/01/rdf-schema#> .

<{{.Info.URI}}>
	a lv2:Plugin{{if ne .Class "lv2:Plugin"}} , {{.Class}}{{end}} ;
	doap:name {{str .Info.Name}} ;
{{- if .Info.License}}
	doap:license <{{.Info.License}}> ;
{{- end}}
{{- if .Info.Vendor}}
	doap:maintainer [
		foaf:name {{str .Info.Vendor}}
	] ;
{{- end}}
	lv2:minorVersion {{.Minor}} ;
	lv2:microVersion {{.Micro}} ;
	lv2:optionalFeature <` + lv2.HardRTCapable + `> ;
	lv2:port {{range $i, $p := .Ports}}[
		a {{$p.Type}} , {{$p.Direction}} ;
		lv2:index {{$p.Index}} ;
		lv2:symbol {{str $p.Symbol}} ;
		lv2:name {{str $p.Name}}
{{- if $p.HasRange}} ;
		lv2:default {{decimal $p.Default}} ;
		lv2:minimum {{decimal $p.Min}} ;
		lv2:maximum {{decimal $p.Max}}
{{- end}}
	]{{if last $i $.Ports}} .{{else}} , {{end}}{{end}}
`))

// Generate renders the bundle files for a plugin.
func Generate(info framework.Info, layout *port.Layout, opts Options) (*Bundle, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if layout == nil || layout.Count() == 0 {
		return nil, lv2.ErrInvalidInfo.New("plugin %s declares no ports", info.URI)
	}
	minor, micro, err := info.LV2Version()
	if err != nil {
		return nil, err
	}

	ext := opts.Extension
	if ext == "" {
		ext = LibraryExtension(runtime.GOOS)
	}

	data := templateData{
		Info:       info,
		Class:      info.ClassOrDefault(),
		Minor:      minor,
		Micro:      micro,
		Ports:      layout.Ports(),
		PluginFile: info.Binary + ".ttl",
		BinaryFile: info.Binary + ext,
	}

	var manifest, desc bytes.Buffer
	if err := manifestTemplate.Execute(&manifest, data); err != nil {
		return nil, errorx.Decorate(err, "render %s", ManifestFile)
	}
	if err := pluginTemplate.Execute(&desc, data); err != nil {
		return nil, errorx.Decorate(err, "render %s", data.PluginFile)
	}

	return &Bundle{
		Manifest:   manifest.Bytes(),
		Plugin:     desc.Bytes(),
		PluginFile: data.PluginFile,
		BinaryFile: data.BinaryFile,
	}, nil
}

// WriteDir writes the Turtle files into dir, creating it if needed. The
// shared library itself is not copied.
func (b *Bundle) WriteDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errorx.Decorate(err, "create bundle directory %s", dir)
	}
	if err := os.WriteFile(filepath.Join(dir, ManifestFile), b.Manifest, 0o644); err != nil {
		return errorx.Decorate(err, "write %s", ManifestFile)
	}
	if err := os.WriteFile(filepath.Join(dir, b.PluginFile), b.Plugin, 0o644); err != nil {
		return errorx.Decorate(err, "write %s", b.PluginFile)
	}
	return nil
}

var escaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)

// quote returns s as a Turtle string literal.
func quote(s string) string {
	return `"` + escaper.Replace(s) + `"`
}

// decimal formats v as a Turtle decimal, which requires a fraction part.
func decimal(v float32) string {
	s := strconv.FormatFloat(float64(v), 'f', -1, 32)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
