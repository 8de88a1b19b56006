package decision

// InputEntry is one input cell of a rule row
type InputEntry struct {
	name           string
	alias          string
	evaluationMode EvaluationMode
	expression     Expression
}

// Name returns the name of the input column this entry belongs to
func (e InputEntry) Name() string { return e.name }

func (e InputEntry) NameAlias() (string, bool) { return optionalString(e.alias) }

func (e InputEntry) EvaluationMode() EvaluationMode { return e.evaluationMode }

func (e InputEntry) Expression() Expression { return e.expression }

// InputEntryBuilder assembles an InputEntry
type InputEntryBuilder struct {
	buildOnce
	product       InputEntry
	hasExpression bool
}

// NewInputEntryBuilder starts a new input entry
func NewInputEntryBuilder() *InputEntryBuilder {
	return &InputEntryBuilder{}
}

func (b *InputEntryBuilder) Name(name string) *InputEntryBuilder {
	b.product.name = name
	return b
}

func (b *InputEntryBuilder) NameAlias(alias string) *InputEntryBuilder {
	b.product.alias = alias
	return b
}

func (b *InputEntryBuilder) EvaluationMode(mode EvaluationMode) *InputEntryBuilder {
	b.product.evaluationMode = mode
	return b
}

// Expression sets the expression of the entry
func (b *InputEntryBuilder) Expression(expression Expression) *InputEntryBuilder {
	b.product.expression = expression
	b.hasExpression = true
	return b
}

// LiteralValue sets a LITERAL expression holding value
func (b *InputEntryBuilder) LiteralValue(value any) *InputEntryBuilder {
	return b.Expression(LiteralExpression(value))
}

// Build validates the entry and returns it. An entry without an expression
// gets an empty one.
func (b *InputEntryBuilder) Build() (InputEntry, error) {
	if err := b.check(); err != nil {
		return InputEntry{}, err
	}
	if err := requireString("name", b.product.name); err != nil {
		return InputEntry{}, err
	}
	if err := optionalEnum("evaluationMode", b.product.evaluationMode); err != nil {
		return InputEntry{}, err
	}
	if !b.hasExpression {
		b.product.expression = Expression{}
	}
	if err := b.product.expression.validate("expression"); err != nil {
		return InputEntry{}, err
	}

	b.done()
	return b.product, nil
}

// OutputEntry is one output cell of a rule row
type OutputEntry struct {
	name       string
	alias      string
	expression Expression
}

// Name returns the name of the output column this entry belongs to
func (e OutputEntry) Name() string { return e.name }

func (e OutputEntry) NameAlias() (string, bool) { return optionalString(e.alias) }

func (e OutputEntry) Expression() Expression { return e.expression }

// OutputEntryBuilder assembles an OutputEntry
type OutputEntryBuilder struct {
	buildOnce
	product       OutputEntry
	hasExpression bool
}

// NewOutputEntryBuilder starts a new output entry
func NewOutputEntryBuilder() *OutputEntryBuilder {
	return &OutputEntryBuilder{}
}

func (b *OutputEntryBuilder) Name(name string) *OutputEntryBuilder {
	b.product.name = name
	return b
}

func (b *OutputEntryBuilder) NameAlias(alias string) *OutputEntryBuilder {
	b.product.alias = alias
	return b
}

// Expression sets the expression of the entry
func (b *OutputEntryBuilder) Expression(expression Expression) *OutputEntryBuilder {
	b.product.expression = expression
	b.hasExpression = true
	return b
}

// LiteralValue sets a LITERAL expression holding value
func (b *OutputEntryBuilder) LiteralValue(value any) *OutputEntryBuilder {
	return b.Expression(LiteralExpression(value))
}

// Build creates the output entry. The name is required.
func (b *OutputEntryBuilder) Build() (OutputEntry, error) {
	if err := b.check(); err != nil {
		return OutputEntry{}, err
	}
	if err := requireString("name", b.product.name); err != nil {
		return OutputEntry{}, err
	}
	if !b.hasExpression {
		b.product.expression = Expression{}
	}
	if err := b.product.expression.validate("expression"); err != nil {
		return OutputEntry{}, err
	}

	b.done()
	return b.product, nil
}
