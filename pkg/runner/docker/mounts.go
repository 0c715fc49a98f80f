package docker

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// workspaceRef is the placeholder binding values may use for the box's
// workspace directory.
const workspaceRef = "$WORKSPACE"

// MountSet accumulates host-to-container path mappings for one container
// invocation. A host path mounted twice keeps its first container path.
type MountSet struct {
	byHost map[string]string
	hosts  []string
}

// NewMountSet returns an empty mount set.
func NewMountSet() *MountSet {
	return &MountSet{byHost: make(map[string]string)}
}

// Add returns the container path for a host path, registering a new
// /mlbox_io mount when the host path is not mounted yet.
func (m *MountSet) Add(hostPath string) string {
	if cpath, ok := m.byHost[hostPath]; ok {
		return cpath
	}
	cpath := fmt.Sprintf("/mlbox_io%d/%s", len(m.byHost), filepath.Base(hostPath))
	m.byHost[hostPath] = cpath
	m.hosts = append(m.hosts, hostPath)
	return cpath
}

// Mount is one host-to-container volume mapping.
type Mount struct {
	Host      string
	Container string
}

// Mounts returns the registered mappings in registration order.
func (m *MountSet) Mounts() []Mount {
	mounts := make([]Mount, 0, len(m.hosts))
	for _, host := range m.hosts {
		mounts = append(mounts, Mount{Host: host, Container: m.byHost[host]})
	}
	return mounts
}

// TranslateBindings resolves one binding group (input or output) into
// container task arguments, registering the mounts each parameter needs.
// paramTypes declares each parameter's path type (file or directory) from
// the task definition. Directory parameters are created on the host if
// absent; file parameters get their parent directory created and mounted,
// with the file name carried into the container path. Parameter names are
// processed in sorted order so the rendered command is reproducible.
func TranslateBindings(ms *MountSet, bindings, paramTypes map[string]string, workspace string) ([]string, error) {
	names := make([]string, 0, len(bindings))
	for name := range bindings {
		names = append(names, name)
	}
	sort.Strings(names)

	args := make([]string, 0, len(names))
	for _, name := range names {
		hostPath := strings.ReplaceAll(bindings[name], workspaceRef, workspace)

		pathType, ok := paramTypes[name]
		if !ok {
			return nil, fmt.Errorf("binding %q: task declares no such parameter", name)
		}

		switch pathType {
		case "directory":
			if err := os.MkdirAll(hostPath, 0o755); err != nil {
				return nil, fmt.Errorf("binding %q: %w", name, err)
			}
			args = append(args, fmt.Sprintf("--%s=%s", name, ms.Add(hostPath)))
		case "file":
			dir := filepath.Dir(hostPath)
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("binding %q: %w", name, err)
			}
			cdir := ms.Add(dir)
			args = append(args, fmt.Sprintf("--%s=%s/%s", name, cdir, filepath.Base(hostPath)))
		default:
			return nil, fmt.Errorf("binding %q: invalid path type %q", name, pathType)
		}
	}
	return args, nil
}
