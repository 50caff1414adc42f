package lv2

import "github.com/joomcode/errorx"

var (
	// Errors is the namespace of all lv2go errors.
	Errors = errorx.NewNamespace("lv2")

	// ErrUnboundPort is returned when a required port has no buffer.
	ErrUnboundPort = Errors.NewType("unbound_port")
	// ErrUnknownPlugin is returned for a descriptor index or URI that is not registered.
	ErrUnknownPlugin = Errors.NewType("unknown_plugin", errorx.NotFound())
	// ErrInstantiate is returned when a descriptor fails to create an instance.
	ErrInstantiate = Errors.NewType("instantiate")
	// ErrInvalidInfo is returned for incomplete or malformed plugin metadata.
	ErrInvalidInfo = Errors.NewType("invalid_info")
)
