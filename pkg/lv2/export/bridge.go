// Package export links the LV2 C entry point into a plugin binary.
//
// Import it for its side effects from the main package of a plugin built
// with -buildmode=c-shared:
//
//	import _ "github.com/giannisalinetti/lv2go/pkg/lv2/export"
//
// The resulting shared library exports lv2_descriptor and serves every
// plugin registered with the plugin package.
package export

// #cgo CFLAGS: -I${SRCDIR}/../../../include -I${SRCDIR}/../../../bridge
// #cgo linux LDFLAGS: -lpthread
// #include "../../../bridge/lv2_bridge.c"
import "C"
