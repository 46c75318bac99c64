package remote

import "strings"

// normalizeRule maps a set of message substrings to a reason code. Rules are
// checked in order; the first rule whose substrings all occur in the lowered
// message wins.
type normalizeRule struct {
	substrings []string
	code       ReasonCode
}

// normalizeRules covers the free-text diagnostics observed across service API
// versions. Order matters: the more specific rules come first.
var normalizeRules = []normalizeRule{
	{[]string{"dimension", "exceed"}, ReasonDimensionsExceeded},
	{[]string{"dimension", "maximum"}, ReasonDimensionsExceeded},
	{[]string{"analyzer", "not recognized"}, ReasonAnalyzerUnknown},
	{[]string{"tokenizer", "not recognized"}, ReasonAnalyzerUnknown},
	{[]string{"unknown analyzer"}, ReasonAnalyzerUnknown},
	{[]string{"semantic", "not supported"}, ReasonSemanticNotSupported},
	{[]string{"semantic", "not available"}, ReasonSemanticNotSupported},
	{[]string{"property", "not recognized"}, ReasonPropertyUnknown},
	{[]string{"unknown property"}, ReasonPropertyUnknown},
	{[]string{"not a valid attribute"}, ReasonAttributeNotValid},
	{[]string{"attribute", "not valid"}, ReasonAttributeNotValid},
	{[]string{"cannot be filterable"}, ReasonAttributeNotValid},
	{[]string{"cannot be sortable"}, ReasonAttributeNotValid},
	{[]string{"cannot be facetable"}, ReasonAttributeNotValid},
	{[]string{"invalid field"}, ReasonFieldInvalid},
	{[]string{"field", "not valid"}, ReasonFieldInvalid},
}

// codeAliases maps structured codes some API versions already return to the
// stable ReasonCode set.
var codeAliases = map[string]ReasonCode{
	"InvalidAttribute":         ReasonAttributeNotValid,
	"VectorDimensionsExceeded": ReasonDimensionsExceeded,
	"UnknownAnalyzer":          ReasonAnalyzerUnknown,
	"SemanticNotSupported":     ReasonSemanticNotSupported,
	"UnknownProperty":          ReasonPropertyUnknown,
	"InvalidField":             ReasonFieldInvalid,
}

// NormalizeDiagnostic converts one service diagnostic into a structured
// Rejection. When the service already returned a recognized structured code,
// that wins; otherwise the free-text message is matched against the known
// substring rules. Anything unmatched is tagged ReasonUnclassified, never
// guessed.
func NormalizeDiagnostic(elementPath, code, message string) Rejection {
	rej := Rejection{ElementPath: elementPath, Message: message, ReasonCode: ReasonUnclassified}

	if mapped, ok := codeAliases[code]; ok {
		rej.ReasonCode = mapped
		return rej
	}

	lowered := strings.ToLower(message)
	for _, rule := range normalizeRules {
		matched := true
		for _, sub := range rule.substrings {
			if !strings.Contains(lowered, sub) {
				matched = false
				break
			}
		}
		if matched {
			rej.ReasonCode = rule.code
			return rej
		}
	}
	return rej
}
