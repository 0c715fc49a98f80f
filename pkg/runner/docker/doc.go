// Package docker drives a Docker engine to execute a box: configure
// builds the workload image from the box's build context, run translates
// the task's parameter bindings into volume mounts and launches the
// container. Every invocation is recorded in the run ledger when one is
// attached.
package docker
