package decision

// Input is one input column of a decision table
type Input struct {
	name           string
	alias          string
	description    string
	valueType      ValueType
	evaluationMode EvaluationMode
	expression     Expression
	hasExpression  bool
}

func (i Input) Name() string    { return i.name }
func (i Input) Type() ValueType { return i.valueType }

// NameAlias returns the alternative name of the input, if any
func (i Input) NameAlias() (string, bool) { return optionalString(i.alias) }

func (i Input) Description() (string, bool) { return optionalString(i.description) }

// EvaluationMode returns the default evaluation mode for entries of this column.
// It is empty when neither the input nor its decision set one.
func (i Input) EvaluationMode() EvaluationMode { return i.evaluationMode }

// Expression returns the default expression of the input, if one was declared
func (i Input) Expression() (Expression, bool) { return i.expression, i.hasExpression }

// InputBuilder assembles an Input
type InputBuilder struct {
	buildOnce
	product Input
}

// NewInputBuilder creates an empty input builder
func NewInputBuilder() *InputBuilder {
	return &InputBuilder{}
}

func (b *InputBuilder) Name(name string) *InputBuilder {
	b.product.name = name
	return b
}

func (b *InputBuilder) Type(valueType ValueType) *InputBuilder {
	b.product.valueType = valueType
	return b
}

func (b *InputBuilder) NameAlias(alias string) *InputBuilder {
	b.product.alias = alias
	return b
}

func (b *InputBuilder) Description(description string) *InputBuilder {
	b.product.description = description
	return b
}

func (b *InputBuilder) EvaluationMode(mode EvaluationMode) *InputBuilder {
	b.product.evaluationMode = mode
	return b
}

// Expression sets the default expression of the input
func (b *InputBuilder) Expression(expression Expression) *InputBuilder {
	b.product.expression = expression
	b.product.hasExpression = true
	return b
}

// Build validates the input and returns it
func (b *InputBuilder) Build() (Input, error) {
	if err := b.check(); err != nil {
		return Input{}, err
	}
	if err := requireString("name", b.product.name); err != nil {
		return Input{}, err
	}
	if err := requireEnum("type", b.product.valueType); err != nil {
		return Input{}, err
	}
	if err := optionalEnum("evaluationMode", b.product.evaluationMode); err != nil {
		return Input{}, err
	}
	if b.product.hasExpression {
		if err := b.product.expression.validate("expression"); err != nil {
			return Input{}, err
		}
	}

	b.done()
	return b.product, nil
}

// Output is one output column of a decision table
type Output struct {
	name           string
	alias          string
	description    string
	valueType      ValueType
	evaluationMode EvaluationMode
}

func (o Output) Name() string    { return o.name }
func (o Output) Type() ValueType { return o.valueType }

func (o Output) NameAlias() (string, bool)   { return optionalString(o.alias) }
func (o Output) Description() (string, bool) { return optionalString(o.description) }

func (o Output) EvaluationMode() EvaluationMode { return o.evaluationMode }

// OutputBuilder assembles an Output
type OutputBuilder struct {
	buildOnce
	product Output
}

// NewOutputBuilder creates an empty output builder
func NewOutputBuilder() *OutputBuilder {
	return &OutputBuilder{}
}

func (b *OutputBuilder) Name(name string) *OutputBuilder {
	b.product.name = name
	return b
}

func (b *OutputBuilder) Type(valueType ValueType) *OutputBuilder {
	b.product.valueType = valueType
	return b
}

func (b *OutputBuilder) NameAlias(alias string) *OutputBuilder {
	b.product.alias = alias
	return b
}

func (b *OutputBuilder) Description(description string) *OutputBuilder {
	b.product.description = description
	return b
}

func (b *OutputBuilder) EvaluationMode(mode EvaluationMode) *OutputBuilder {
	b.product.evaluationMode = mode
	return b
}

// Build validates the output and returns it
func (b *OutputBuilder) Build() (Output, error) {
	if err := b.check(); err != nil {
		return Output{}, err
	}
	if err := requireString("name", b.product.name); err != nil {
		return Output{}, err
	}
	if err := requireEnum("type", b.product.valueType); err != nil {
		return Output{}, err
	}
	if err := optionalEnum("evaluationMode", b.product.evaluationMode); err != nil {
		return Output{}, err
	}

	b.done()
	return b.product, nil
}
