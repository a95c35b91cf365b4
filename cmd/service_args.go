package cmd

import (
	"time"

	"github.com/isometry/folio/internal/config"
)

var svcEnvMapString = map[*string]boundEnvVar[string]{
	&config.Service.Addr: {
		Name:        "service-host-addr",
		Description: "The address to serve the site on",
		Short:       "H",
	},
	&config.Service.Port: {
		Name:        "service-host-port",
		Description: "The port to serve the site on",
		Short:       "p",
	},
}

var svcEnvMapBool = map[*bool]boundEnvVar[bool]{
	&config.Service.Concurrent: {
		Name:        "service-concurrent",
		Description: "Serve each connection on its own goroutine instead of one after the other",
	},
}

var svcEnvMapInt = map[*int]boundEnvVar[int]{
	&config.Service.ReadBufferSize: {
		Name:        "service-read-buffer-size",
		Description: "The maximum number of bytes read from each connection",
	},
}

var svcEnvMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Service.Timeout: {
		Name:        "service-io-timeout",
		Description: "The deadline for reading and answering a connection (0 disables it)",
		Short:       "t",
	},
}
