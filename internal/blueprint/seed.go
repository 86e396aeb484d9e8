package blueprint

// Default domain tags for the cognitive-ability blueprint.
const (
	TagPatternReasoning   = "pattern-reasoning"
	TagVerbalAnalogies    = "verbal-analogies"
	TagNumericalSequences = "numerical-sequences"
	TagSpatialRotation    = "spatial-rotation"
	TagWorkingMemory      = "working-memory"
	TagLogicalDeduction   = "logical-deduction"
)

// DefaultDomains returns the six-domain cognitive blueprint with equal target
// shares and a two-item minimum per domain.
func DefaultDomains() []Domain {
	const share = 1.0 / 6.0
	return []Domain{
		{Tag: TagPatternReasoning, Name: "Pattern Reasoning", TargetShare: share, MinItems: 2},
		{Tag: TagVerbalAnalogies, Name: "Verbal Analogies", TargetShare: share, MinItems: 2},
		{Tag: TagNumericalSequences, Name: "Numerical Sequences", TargetShare: share, MinItems: 2},
		{Tag: TagSpatialRotation, Name: "Spatial Rotation", TargetShare: share, MinItems: 2},
		{Tag: TagWorkingMemory, Name: "Working Memory", TargetShare: share, MinItems: 2},
		{Tag: TagLogicalDeduction, Name: "Logical Deduction", TargetShare: share, MinItems: 2},
	}
}

// MustDefault returns a Registry over DefaultDomains, panicking on validation
// failure. The default blueprint is covered by tests, so a panic here means a
// programming error.
func MustDefault() *Registry {
	r, err := New(DefaultDomains())
	if err != nil {
		panic(err)
	}
	return r
}
