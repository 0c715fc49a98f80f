// Package platform declares the concrete schema types behind mlbox
// platform configuration documents and computes the effective runner
// configuration by layering them: declared defaults, the box's own
// platform defaults, then the user's platform file, each folded in with
// the schema merge. Per-task overrides declared under tasks: apply last.
package platform
