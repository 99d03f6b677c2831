package app

import (
	"io/fs"

	module "github.com/sufni/dashboard/internal/services/web/module"
)

// Config captures the composition inputs for the web root handler.
type Config struct {
	Modules []module.Module
	Static  fs.FS
}
