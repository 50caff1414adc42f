// Command lv2bundle writes manifest.ttl and the plugin description of the
// Simple Gain plugin into an LV2 bundle directory.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/giannisalinetti/lv2go/pkg/framework/debug"
	"github.com/giannisalinetti/lv2go/pkg/plugin"
	"github.com/giannisalinetti/lv2go/pkg/plugins/simplegain"
	"github.com/giannisalinetti/lv2go/pkg/ttl"
)

func main() {
	dir := flag.String("dir", "simplegain.lv2", "bundle directory")
	ext := flag.String("ext", "", "shared library extension (default: platform extension)")
	uri := flag.String("uri", simplegain.URI, "URI of the plugin to describe")
	flag.Parse()

	plugin.MustRegister(simplegain.New())

	p, err := plugin.Lookup(*uri)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	bundle, err := ttl.Generate(p.Info(), p.Ports(), ttl.Options{Extension: *ext})
	if err != nil {
		debug.Error("%+v", err)
		os.Exit(1)
	}
	if err := bundle.WriteDir(*dir); err != nil {
		debug.Error("%+v", err)
		os.Exit(1)
	}

	debug.Info("wrote %s: %s, %s (binary %s)", *dir, ttl.ManifestFile, bundle.PluginFile, bundle.BinaryFile)
}
