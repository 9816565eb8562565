package app

import (
	"github.com/specialistvlad/clovergrid/internal/registry"
	"github.com/specialistvlad/clovergrid/modules/exec"
	"github.com/specialistvlad/clovergrid/modules/print"
	"github.com/specialistvlad/clovergrid/modules/upload"
)

// coreModules is the definitive list of all task type modules that are
// compiled into the clovergrid binary.
var coreModules = []registry.Module{
	&exec.Module{},
	&print.Module{},
	&upload.Module{},
}
