package utils

// Version is set by the build, e.g. -ldflags "-X ...utils.Version=v0.1.4".
var Version = "v0.1.0-dev"
