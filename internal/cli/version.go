package cli

// version is overridden at build time with -ldflags "-X ...cli.version=...".
var version = "0.1.0-dev"
