package modkit

import (
	"gatehouse/internal/modkit/module"
)

// Module is the common surface for API modules that can mount routes and expose ports
// aliased to the sibling package so constructors and the registry share one contract
type Module = module.Module

// Builder constructs a Module from shared deps and options
// modules typically expose New(deps Deps, opts ...Option) Module and may delegate to this pattern
type Builder func(Deps, ...Option) Module
