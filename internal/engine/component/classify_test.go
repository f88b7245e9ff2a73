package component

import (
	"testing"

	"undestructure/internal/core/errors"
)

func TestClassify_NamingConvention(t *testing.T) {
	cases := []struct {
		name      string
		code      string
		uppercase bool
		want      Result
	}{
		{
			name:      "uppercase arrow ignored when naming fallback is off",
			code:      `const ArrowComp = ({ someProp }) => {}`,
			uppercase: false,
			want:      NotComponent,
		},
		{
			name:      "uppercase arrow",
			code:      `const ArrowComp = ({ someProp }) => {}`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "uppercase declaration",
			code:      `function FuncComp({ someProp }) {}`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "uppercase function expression",
			code:      `const ExprComp = function({ someProp }) {}`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "sharp s expands when upper-cased",
			code:      `const ßeta = ({ a }) => a`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "n preceded by apostrophe expands when upper-cased",
			code:      `const ŉode = ({ a }) => a`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "ff ligature expands when upper-cased",
			code:      `function ﬀect({ a }) { return a }`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "titlecase letter is not its own upper case",
			code:      `const ǅigraph = ({ a }) => a`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "camelCase arrow",
			code:      `const notAComp = ({ someProp }) => {}`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "parenthesized arrow without destructuring",
			code:      `const ArrowComp = (props => {});`,
			uppercase: true,
			want:      ComponentNoDestructuring,
		},
		{
			name:      "named expression uses the binding name",
			code:      `const Named = function inner({ a }) { return a }`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "named expression own name is not consulted",
			code:      `const lower = function Inner({ a }) { return a }`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "anonymous default export has no name",
			code:      `export default ({ a }) => a`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "destructured declarator has no binding name",
			code:      `const { Comp = ({ a }) => a } = registry`,
			uppercase: true,
			want:      NotComponent,
		},
		{
			name:      "underscore prefix upper-cases to itself",
			code:      `const _Private = ({ a }) => a`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "dollar prefix upper-cases to itself",
			code:      `const $el = (props) => props`,
			uppercase: true,
			want:      ComponentNoDestructuring,
		},
		{
			name:      "non-ASCII uppercase initial",
			code:      `const Étiquette = ({ a }) => a`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
		{
			name:      "generator declaration",
			code:      `function* Steps({ items }) { yield items }`,
			uppercase: true,
			want:      ComponentWithDestructuring,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.UppercaseFuncNames = tc.uppercase
			got, _ := classifyOne(t, "case.jsx", tc.code, opts)
			if got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.code, got, tc.want)
			}
		})
	}
}

func TestClassify_ParameterShapes(t *testing.T) {
	cases := []struct {
		name string
		code string
		want Result
	}{
		{"rest element", `const Comp = ({ a, b, c, ...other }) => a`, ComponentWithDestructuring},
		{"plain identifier", `const Comp = (props) => props.a`, ComponentNoDestructuring},
		{"object pattern with default", `const Comp = ({ a } = {}) => a`, ComponentWithDestructuring},
		{"identifier with default", `const Comp = (props = {}) => props.a`, ComponentNoDestructuring},
		{"array pattern", `const Comp = ([first]) => first`, ComponentNoDestructuring},
		{"array pattern with default", `const Comp = ([first] = []) => first`, ComponentNoDestructuring},
		{"no parameters", `function Comp() { return null }`, ComponentNoDestructuring},
		{"destructuring only in second parameter", `function Comp(props, { ref }) { return ref }`, ComponentNoDestructuring},
		{"comment before first parameter", `function Comp(/* props */ { a }) { return a }`, ComponentWithDestructuring},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := classifyOne(t, "case.jsx", tc.code, uppercaseOn())
			if got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.code, got, tc.want)
			}
		})
	}
}

func TestClassify_TypeScriptParameters(t *testing.T) {
	cases := []struct {
		name string
		code string
		want Result
	}{
		{"typed object pattern", `function Card({ title }: Props) { return title }`, ComponentWithDestructuring},
		{"typed object pattern with default", `function Card({ title }: Props = defaults) { return title }`, ComponentWithDestructuring},
		{"typed identifier", `const Card = (props: Props) => props.title`, ComponentNoDestructuring},
		{"typed array pattern", `const Card = ([title]: string[]) => title`, ComponentNoDestructuring},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, _ := classifyOne(t, "case.ts", tc.code, uppercaseOn())
			if got != tc.want {
				t.Errorf("Classify(%q) = %s, want %s", tc.code, got, tc.want)
			}
		})
	}
}

func TestClassify_ProcessedNodeIsNeverReclassified(t *testing.T) {
	pf := parse(t, "case.jsx", `function FuncComp({ someProp }) {}`)
	fn := only(t, pf)

	processed := NewProcessedSet()
	c := NewClassifier(uppercaseOn(), NewMacroDetector(pf.tree.Source), processed, NewState())

	first, err := c.Classify(fn)
	if err != nil {
		t.Fatal(err)
	}
	if first != ComponentWithDestructuring {
		t.Fatalf("expected first pass to require rewrite, got %s", first)
	}
	if processed.Len() != 0 {
		t.Fatal("classifier must not mark nodes itself")
	}

	processed.Mark(fn)
	for i := 0; i < 3; i++ {
		again, err := c.Classify(fn)
		if err != nil {
			t.Fatal(err)
		}
		if again != NotComponent {
			t.Fatalf("expected processed node to classify as %s, got %s", NotComponent, again)
		}
	}
}

func TestClassify_NilFunction(t *testing.T) {
	c := NewClassifier(uppercaseOn(), nil, nil, nil)
	got, err := c.Classify(nil)
	if err != nil {
		t.Fatal(err)
	}
	if got != NotComponent {
		t.Errorf("expected %s for nil function, got %s", NotComponent, got)
	}
}

func TestClassify_DetectorErrorPropagates(t *testing.T) {
	pf := parse(t, "case.jsx", `const Comp = ({ a }) => a`)
	fn := only(t, pf)

	opts := uppercaseOn()
	opts.Annotation = AnnotationOptions{}

	_, err := NewClassifier(opts, NewMacroDetector(pf.tree.Source), nil, nil).Classify(fn)
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected VALIDATION_ERROR from detector, got %v", err)
	}
}

type stubDetector struct {
	annotated bool
	calls     int
}

func (s *stubDetector) IsAnnotated(Options, Function, *State) (bool, error) {
	s.calls++
	return s.annotated, nil
}

func TestClassify_DetectorConsultedBeforeNaming(t *testing.T) {
	pf := parse(t, "case.jsx", `const lower = ({ a }) => a`)
	fn := only(t, pf)

	stub := &stubDetector{annotated: true}
	got, err := NewClassifier(DefaultOptions(), stub, nil, nil).Classify(fn)
	if err != nil {
		t.Fatal(err)
	}
	if got != ComponentWithDestructuring {
		t.Errorf("expected annotation to qualify a lowercase function, got %s", got)
	}
	if stub.calls != 1 {
		t.Errorf("expected detector to be called once, got %d", stub.calls)
	}
}

func TestResult_Text(t *testing.T) {
	for _, r := range []Result{NotComponent, ComponentNoDestructuring, ComponentWithDestructuring} {
		text, err := r.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Result
		if err := back.UnmarshalText(text); err != nil {
			t.Fatal(err)
		}
		if back != r {
			t.Errorf("expected %s, got %s", r, back)
		}
	}
	if NotComponent.IsComponent() || !ComponentNoDestructuring.IsComponent() {
		t.Error("IsComponent mismatch")
	}
	if ComponentNoDestructuring.NeedsRewrite() || !ComponentWithDestructuring.NeedsRewrite() {
		t.Error("NeedsRewrite mismatch")
	}
}
