package domain

import "strings"

// NodeStatus represents the lifecycle state of a build node during one
// resolution pass.
type NodeStatus string

const (
	// StatusPending indicates the node is waiting for its dependencies.
	StatusPending NodeStatus = "pending"
	// StatusBuilding indicates the node's build phases are executing.
	StatusBuilding NodeStatus = "building"
	// StatusBuilt indicates the node's artifact is available.
	StatusBuilt NodeStatus = "built"
	// StatusFailed indicates the node failed or was cascaded from a failure.
	StatusFailed NodeStatus = "failed"
	// StatusCached indicates the node was reused from the build record store.
	StatusCached NodeStatus = "cached"
)

// IsTerminal reports whether the status is a terminal state.
func (s NodeStatus) IsTerminal() bool {
	switch s {
	case StatusBuilt, StatusFailed, StatusCached:
		return true
	default:
		return false
	}
}

// BuildNode is the resolved unit actually scheduled: the recipe after
// override layering and editable injection, plus its resolution state.
// Nodes are transient; they exist only within one resolution pass and
// only their artifacts outlive it.
type BuildNode struct {
	Recipe   Recipe
	Status   NodeStatus
	Artifact *Artifact

	// Editable marks a node whose artifact is a live source directory;
	// such nodes have no build phase and no concurrency cost.
	Editable bool

	// Err holds the node's own failure. Cascaded distinguishes nodes that
	// were never built because a dependency failed from root causes.
	Err      error
	Cascaded bool
}

// Name returns the node's package name.
func (n *BuildNode) Name() InternedString {
	return n.Recipe.Name
}

// LogLevel represents the severity of a build log message, mirroring the
// standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// NormalizeNodeStatus converts a string to a NodeStatus, defaulting to
// pending if unknown. Useful at deserialization boundaries.
func NormalizeNodeStatus(s string) NodeStatus {
	switch strings.ToLower(s) {
	case string(StatusBuilding):
		return StatusBuilding
	case string(StatusBuilt):
		return StatusBuilt
	case string(StatusFailed):
		return StatusFailed
	case string(StatusCached):
		return StatusCached
	default:
		return StatusPending
	}
}
