// Package mlbox models the on-disk layout of a box: a packaged,
// declaratively described ML workload. A box directory carries its own
// definition (mlbox.yaml), a build context for the container image,
// task definitions, per-invocation binding documents, and a workspace
// for inputs and outputs.
package mlbox
