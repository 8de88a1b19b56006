package decision

import "fmt"

// Rule is one row of a decision table. Entries keep the order they were added in.
type Rule struct {
	description   string
	inputEntries  []InputEntry
	outputEntries []OutputEntry
}

func (r Rule) Description() (string, bool) { return optionalString(r.description) }

// InputEntries returns a copy of the input cells of the row
func (r Rule) InputEntries() []InputEntry {
	return append([]InputEntry(nil), r.inputEntries...)
}

// OutputEntries returns a copy of the output cells of the row
func (r Rule) OutputEntries() []OutputEntry {
	return append([]OutputEntry(nil), r.outputEntries...)
}

// RuleBuilder assembles a Rule
type RuleBuilder struct {
	buildOnce
	product Rule
}

// NewRuleBuilder starts a new rule
func NewRuleBuilder() *RuleBuilder {
	return &RuleBuilder{}
}

func (b *RuleBuilder) Description(description string) *RuleBuilder {
	b.product.description = description
	return b
}

// InputEntry appends an input cell. Entries with the same name are all kept.
func (b *RuleBuilder) InputEntry(entry InputEntry) *RuleBuilder {
	b.product.inputEntries = append(b.product.inputEntries, entry)
	return b
}

// OutputEntry appends an output cell. Entries with the same name are all kept.
func (b *RuleBuilder) OutputEntry(entry OutputEntry) *RuleBuilder {
	b.product.outputEntries = append(b.product.outputEntries, entry)
	return b
}

// Build validates the rule and returns it.
// A rule needs at least one input entry and one output entry.
func (b *RuleBuilder) Build() (Rule, error) {
	if err := b.check(); err != nil {
		return Rule{}, err
	}
	if len(b.product.inputEntries) == 0 {
		return Rule{}, fmt.Errorf("input entries: at least one entry is required: %w", ErrMissingField)
	}
	if len(b.product.outputEntries) == 0 {
		return Rule{}, fmt.Errorf("output entries: at least one entry is required: %w", ErrMissingField)
	}

	b.done()
	return Rule{
		description:   b.product.description,
		inputEntries:  append([]InputEntry(nil), b.product.inputEntries...),
		outputEntries: append([]OutputEntry(nil), b.product.outputEntries...),
	}, nil
}
