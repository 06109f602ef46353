// Package config loads loader configuration from HCL files: one loader
// block selecting the module source, fetch suffix, scanner call name and
// entry imports, plus any number of global blocks declaring the bare-name
// table.
package config
