// Package modkit builds API modules from shared deps and functional options
package modkit

import "producescan/internal/modkit/module"

// Module is the common surface for API modules that can mount routes and expose ports
type Module = module.Module
