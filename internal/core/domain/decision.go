package domain

// BuildDecision is the outcome of the skip/exists filter for one
// (recipe, matrix point) pair.
type BuildDecision int

const (
	// DecisionBuild means the point should be built.
	DecisionBuild BuildDecision = iota
	// DecisionBuildUpload means the point should be built and the resulting
	// artifact uploaded.
	DecisionBuildUpload
	// DecisionSkipRule means an explicit skip rule excluded the point.
	DecisionSkipRule
	// DecisionSkipLocal means the expected artifact already exists on disk.
	DecisionSkipLocal
	// DecisionSkipRemote means the artifact is already published remotely.
	DecisionSkipRemote
)

// String returns the decision's log form.
func (d BuildDecision) String() string {
	switch d {
	case DecisionBuild:
		return "build"
	case DecisionBuildUpload:
		return "build+upload"
	case DecisionSkipRule:
		return "skip (rule)"
	case DecisionSkipLocal:
		return "skip (local artifact exists)"
	case DecisionSkipRemote:
		return "skip (remote artifact exists)"
	}
	return "unknown"
}

// ShouldBuild reports whether the decision requires a build invocation.
func (d BuildDecision) ShouldBuild() bool {
	return d == DecisionBuild || d == DecisionBuildUpload
}

// PlannedBuild is one entry of the run plan: a recipe, a matrix point and
// the decision taken for the pair.
type PlannedBuild struct {
	Recipe   *Recipe
	Point    MatrixPoint
	Decision BuildDecision

	// OutputPath is the expected artifact path, populated for every
	// decision that required computing it.
	OutputPath string

	// Remote carries the published distribution's metadata when the
	// decision is DecisionSkipRemote, for audit logging.
	Remote *Distribution
}
