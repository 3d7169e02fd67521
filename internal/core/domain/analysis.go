package domain

// Analysis is a structured plain-language report over a whole document,
// covering what it says, what it costs, and what to watch out for.
type Analysis struct {
	// Summary is the document explained in a few plain-language points.
	Summary []string

	// KeyTerms are the defined or load-bearing terms a reader should know.
	KeyTerms []string

	// Obligations splits the duties the document imposes by party.
	Obligations Obligations

	// CostsAndPayments lists fees, deposits, and payment terms.
	CostsAndPayments []string

	// Risks are clauses that may work against the reader.
	Risks []Risk

	// RedFlags are unusual or one-sided provisions worth a second look.
	RedFlags []string

	// QuestionsToAsk are questions to raise before signing.
	QuestionsToAsk []string

	// NegotiationSuggestions are practical changes the reader could request.
	NegotiationSuggestions []string

	// DecisionAssist weighs the document overall.
	DecisionAssist DecisionAssist
}

// Obligations groups duties by who carries them.
type Obligations struct {
	// You are the reader's obligations.
	You []string

	// OtherParty are the counterparty's obligations.
	OtherParty []string
}

// Risk is one potentially problematic clause.
type Risk struct {
	// Title names the risk.
	Title string

	// WhyItMatters explains the practical consequence for the reader.
	WhyItMatters string

	// Mitigations are steps that could reduce the risk.
	Mitigations []string
}

// DecisionAssist is a balanced take on whether to proceed.
type DecisionAssist struct {
	// Pros are points in favour of the document as written.
	Pros []string

	// Cons are points against.
	Cons []string

	// OverallTake is a one-paragraph verdict in careful wording.
	OverallTake string
}
