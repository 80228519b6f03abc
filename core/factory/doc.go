// Package factory builds pluggable modules, such as metrics sinks, from
// configuration. A module is described by a type string and a map of raw
// settings; the registered factory decodes the settings with the json tags
// of its own config struct.
package factory
