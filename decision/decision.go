package decision

// Decision is a decision table: identity, evaluation defaults and the ordered
// inputs, outputs and rules. A Decision never changes after it is built and
// is safe for concurrent readers.
type Decision struct {
	id             string
	name           string
	hitPolicy      HitPolicy
	expressionType ExpressionType
	evaluationMode EvaluationMode
	inputs         []Input
	outputs        []Output
	rules          []Rule
}

func (d *Decision) ID() string   { return d.id }
func (d *Decision) Name() string { return d.name }

// HitPolicy returns the hit policy, empty when the engine default applies
func (d *Decision) HitPolicy() HitPolicy { return d.hitPolicy }

// ExpressionType returns the default expression type of the table
func (d *Decision) ExpressionType() ExpressionType { return d.expressionType }

// EvaluationMode returns the default evaluation mode of the table
func (d *Decision) EvaluationMode() EvaluationMode { return d.evaluationMode }

// Inputs returns a copy of the input columns in declaration order
func (d *Decision) Inputs() []Input {
	return append([]Input(nil), d.inputs...)
}

// Outputs returns a copy of the output columns in declaration order
func (d *Decision) Outputs() []Output {
	return append([]Output(nil), d.outputs...)
}

// Rules returns a copy of the rule rows in declaration order
func (d *Decision) Rules() []Rule {
	return append([]Rule(nil), d.rules...)
}

// DecisionBuilder assembles a Decision
type DecisionBuilder struct {
	buildOnce
	product Decision
}

// NewDecisionBuilder starts a new decision
func NewDecisionBuilder() *DecisionBuilder {
	return &DecisionBuilder{}
}

func (b *DecisionBuilder) ID(id string) *DecisionBuilder {
	b.product.id = id
	return b
}

func (b *DecisionBuilder) Name(name string) *DecisionBuilder {
	b.product.name = name
	return b
}

func (b *DecisionBuilder) HitPolicy(hitPolicy HitPolicy) *DecisionBuilder {
	b.product.hitPolicy = hitPolicy
	return b
}

func (b *DecisionBuilder) ExpressionType(expressionType ExpressionType) *DecisionBuilder {
	b.product.expressionType = expressionType
	return b
}

func (b *DecisionBuilder) EvaluationMode(mode EvaluationMode) *DecisionBuilder {
	b.product.evaluationMode = mode
	return b
}

func (b *DecisionBuilder) Input(input Input) *DecisionBuilder {
	b.product.inputs = append(b.product.inputs, input)
	return b
}

func (b *DecisionBuilder) Output(output Output) *DecisionBuilder {
	b.product.outputs = append(b.product.outputs, output)
	return b
}

func (b *DecisionBuilder) Rule(rule Rule) *DecisionBuilder {
	b.product.rules = append(b.product.rules, rule)
	return b
}

// Build validates the decision and returns it.
// Names of inputs, outputs and entries are not cross-checked.
func (b *DecisionBuilder) Build() (*Decision, error) {
	if err := b.check(); err != nil {
		return nil, err
	}
	if err := requireString("id", b.product.id); err != nil {
		return nil, err
	}
	if err := requireString("name", b.product.name); err != nil {
		return nil, err
	}
	if err := optionalEnum("hitPolicy", b.product.hitPolicy); err != nil {
		return nil, err
	}
	if err := optionalEnum("expressionType", b.product.expressionType); err != nil {
		return nil, err
	}
	if err := optionalEnum("evaluationMode", b.product.evaluationMode); err != nil {
		return nil, err
	}

	b.done()
	d := b.product
	d.inputs = append([]Input(nil), b.product.inputs...)
	d.outputs = append([]Output(nil), b.product.outputs...)
	d.rules = append([]Rule(nil), b.product.rules...)
	return &d, nil
}
