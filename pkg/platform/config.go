package platform

import (
	"github.com/xyhuang/mlbox/pkg/schema"
)

// Document constants for platform configuration files.
const (
	// SchemaType tags a document as a platform configuration.
	SchemaType = "mlbox_platform"

	// SchemaVersion is the configuration document version this build reads.
	SchemaVersion = "0.1.0"

	// ExecTypeContainer is the only execution interface the docker runner
	// accepts.
	ExecTypeContainer = "container"

	// DefaultPlatformName is assumed when no layer names a platform.
	DefaultPlatformName = "docker"
)

var metaSpec = schema.NewSpec("meta",
	schema.PrimField("schema_type", schema.ScalarOf(SchemaType)),
	schema.PrimField("schema_version", schema.ScalarOf(SchemaVersion)),
)

// Meta carries the document tagging fields. It is embedded into Config,
// so schema_type and schema_version live at the document's top level.
type Meta struct{ schema.Standard }

// NewMeta returns an unresolved Meta.
func NewMeta() *Meta {
	m := &Meta{}
	m.Init(metaSpec)
	return m
}

var platformSpec = schema.NewSpec("platform",
	schema.PrimField("name", schema.Null()),
	schema.PrimField("version", schema.Null()),
)

// Platform names the execution platform a configuration targets.
type Platform struct{ schema.Standard }

// NewPlatform returns an unresolved Platform.
func NewPlatform() *Platform {
	p := &Platform{}
	p.Init(platformSpec)
	return p
}

// Name returns the platform name, or "" when unset.
func (p *Platform) Name() string { return p.Text("name") }

// Version returns the platform version constraint, or "" when unset.
func (p *Platform) Version() string { return p.Text("version") }

var envVarSpec = schema.NewSpec("env_var",
	schema.PrimField("name", schema.Null()),
	schema.PrimField("value", schema.Null()),
)

// EnvVar is one environment variable entry of a container configuration.
type EnvVar struct{ schema.Standard }

// NewEnvVar returns an unresolved EnvVar.
func NewEnvVar() *EnvVar {
	e := &EnvVar{}
	e.Init(envVarSpec)
	return e
}

// EnvList is the ordered collection of environment variables. Layer merges
// concatenate, so later layers append rather than replace.
type EnvList struct{ schema.ListOf }

// NewEnvList returns an empty, unresolved EnvList.
func NewEnvList() *EnvList {
	l := &EnvList{}
	l.Init("env_list", func() schema.Object { return NewEnvVar() })
	return l
}

// EnvEntry is a resolved name/value pair read out of an EnvList.
type EnvEntry struct {
	Name  string
	Value string
}

// Entries returns the list as name/value pairs in declaration order.
func (l *EnvList) Entries() []EnvEntry {
	return envEntries(&l.ListOf)
}

func envEntries(obj schema.Object) []EnvEntry {
	list, ok := obj.(interface{ List() *schema.ListOf })
	if !ok {
		return nil
	}
	entries := make([]EnvEntry, 0, list.List().Len())
	for _, item := range list.List().Items() {
		s := std(item)
		if s == nil {
			continue
		}
		entries = append(entries, EnvEntry{Name: s.Text("name"), Value: s.Text("value")})
	}
	return entries
}

var containerSpec = schema.NewSpec("container",
	schema.PrimField("image", schema.Null()),
	schema.PrimField("runtime", schema.Null()),
	schema.PrimField("command", schema.Null()),
	schema.ObjField("env", func() schema.Object { return NewEnvList() }),
)

// Container is the container section of an exec configuration.
type Container struct{ schema.Standard }

// NewContainer returns an unresolved Container.
func NewContainer() *Container {
	c := &Container{}
	c.Init(containerSpec)
	return c
}

// Image returns the image name, or "" when unset.
func (c *Container) Image() string { return c.Text("image") }

// Runtime returns the container runtime override, or "" for the default.
func (c *Container) Runtime() string { return c.Text("runtime") }

// Command returns the command override, or "" for the image default.
func (c *Container) Command() string { return c.Text("command") }

// Env returns the configured environment entries.
func (c *Container) Env() []EnvEntry {
	return envEntries(c.Object("env"))
}

var execSpec = schema.NewSpec("exec",
	schema.PrimField("type", schema.ScalarOf(ExecTypeContainer)),
	schema.ObjField("container", func() schema.Object { return NewContainer() }),
)

// Exec is the execution interface section of a platform configuration.
type Exec struct{ schema.Standard }

// NewExec returns an unresolved Exec.
func NewExec() *Exec {
	e := &Exec{}
	e.Init(execSpec)
	return e
}

// Type returns the execution interface type.
func (e *Exec) Type() string { return e.Text("type") }

// Container returns the container section.
func (e *Exec) Container() *Container {
	c, _ := e.Object("container").(*Container)
	return c
}

var overrideSpec = schema.NewSpec("task_override",
	schema.PrimField("params", schema.MapOf(map[string]any{})),
	schema.ObjField("env", func() schema.Object { return NewEnvList() }),
)

// TaskOverride is a per-task adjustment declared under tasks:. Its params
// merge into the effective params mapping; its env entries append to the
// container environment.
type TaskOverride struct{ schema.Standard }

// NewTaskOverride returns an unresolved TaskOverride.
func NewTaskOverride() *TaskOverride {
	o := &TaskOverride{}
	o.Init(overrideSpec)
	return o
}

// Overrides keys TaskOverride documents by task name.
type Overrides struct{ schema.DictOf }

// NewOverrides returns an empty, unresolved Overrides collection.
func NewOverrides() *Overrides {
	o := &Overrides{}
	o.Init("task_overrides", func() schema.Object { return NewTaskOverride() })
	return o
}

var configSpec = schema.NewSpec(SchemaType,
	schema.EmbeddedField("meta", func() schema.Object { return NewMeta() }),
	schema.ObjField("platform", func() schema.Object { return NewPlatform() }),
	schema.ObjField("exec", func() schema.Object { return NewExec() }),
	schema.PrimField("params", schema.MapOf(map[string]any{})),
	schema.ObjField("tasks", func() schema.Object { return NewOverrides() }),
)

// Config is the root platform configuration document.
type Config struct{ schema.Standard }

// NewConfig returns an unresolved Config.
func NewConfig() *Config {
	c := &Config{}
	c.Init(configSpec)
	return c
}

// SchemaType returns the document's schema_type tag, hoisted from the
// embedded Meta.
func (c *Config) SchemaType() string { return c.Text("schema_type") }

// SchemaVersion returns the document's schema_version tag.
func (c *Config) SchemaVersion() string { return c.Text("schema_version") }

// Platform returns the platform section.
func (c *Config) Platform() *Platform {
	p, _ := c.Object("platform").(*Platform)
	return p
}

// Exec returns the execution interface section.
func (c *Config) Exec() *Exec {
	e, _ := c.Object("exec").(*Exec)
	return e
}

// Params returns the free-form parameter mapping.
func (c *Config) Params() schema.Value { return c.Val("params") }

// Overrides returns the per-task override collection.
func (c *Config) Overrides() *Overrides {
	o, _ := c.Object("tasks").(*Overrides)
	return o
}

// std unwraps a schema object to its Standard core, surviving clones that
// lose the concrete wrapper type.
func std(obj schema.Object) *schema.Standard {
	if s, ok := obj.(interface{ Std() *schema.Standard }); ok {
		return s.Std()
	}
	return nil
}
