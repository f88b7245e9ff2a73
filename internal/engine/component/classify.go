package component

// Classifier decides, per function, whether it is a component and whether
// its props parameter is destructured.
type Classifier struct {
	opts      Options
	detector  AnnotationDetector
	processed *ProcessedSet
	state     *State
}

func NewClassifier(opts Options, detector AnnotationDetector, processed *ProcessedSet, state *State) *Classifier {
	if processed == nil {
		processed = NewProcessedSet()
	}
	if state == nil {
		state = NewState()
	}
	return &Classifier{
		opts:      opts,
		detector:  detector,
		processed: processed,
		state:     state,
	}
}

// Classify never mutates the tree or the processed set. Errors come only
// from the annotation detector and are returned unchanged.
func (c *Classifier) Classify(fn Function) (Result, error) {
	if fn == nil || c.processed.Has(fn) {
		return NotComponent, nil
	}

	annotated := false
	if c.detector != nil {
		var err error
		annotated, err = c.detector.IsAnnotated(c.opts, fn, c.state)
		if err != nil {
			return NotComponent, err
		}
	}

	if !annotated && !IsUppercaseComponentName(c.opts, fn) {
		return NotComponent, nil
	}

	if !HasDestructuredFirstParam(fn) {
		return ComponentNoDestructuring, nil
	}
	return ComponentWithDestructuring, nil
}

func (c *Classifier) Options() Options         { return c.opts }
func (c *Classifier) State() *State            { return c.state }
func (c *Classifier) Processed() *ProcessedSet { return c.processed }
