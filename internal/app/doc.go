// Package app wires configuration, logging, transport, sandbox, and the
// loader session into a runnable application.
package app
